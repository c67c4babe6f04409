package store

import (
	"context"

	"wxgate.app/wxgate/core/db"
	"wxgate.app/wxgate/internal/model"
)

type wechatMessageStore struct {
	q db.Querier
}

// Create inserts an inbound message under its bridge-assigned id. A
// redelivered id leaves the stored row untouched and returns ErrConflict.
func (s *wechatMessageStore) Create(ctx context.Context, msg *model.WechatMessage) error {
	tag, err := s.q.Exec(ctx,
		`INSERT INTO wechat_messages
		   (id, is_self, is_group, kind, ts, roomid, content, sender, sign, thumb, extra, xml)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO NOTHING`,
		msg.ID, msg.IsSelf, msg.IsGroup, int(msg.Kind), msg.TS,
		msg.RoomID, msg.Content, msg.Sender, msg.Sign, msg.Thumb, msg.Extra, msg.XML,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}
