package store

import (
	"context"

	"wxgate.app/wxgate/core/db"
)

type wechatUserStore struct {
	q db.Querier
}

// Touch records that a contact was seen, creating the row on first contact.
func (s *wechatUserStore) Touch(ctx context.Context, wxid string) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO wechat_users (wxid)
		 VALUES ($1)
		 ON CONFLICT (wxid) DO UPDATE SET updated_at = now()`,
		wxid,
	)
	return err
}
