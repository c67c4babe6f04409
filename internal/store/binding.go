package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"wxgate.app/wxgate/core/db"
	"wxgate.app/wxgate/internal/model"
)

type bindingStore struct {
	q db.Querier
}

func (s *bindingStore) GetByRoom(ctx context.Context, roomID string) (*model.ConversationBinding, error) {
	var b model.ConversationBinding
	err := s.q.QueryRow(ctx,
		`SELECT roomid, chat_id FROM room_conversations WHERE roomid = $1`, roomID,
	).Scan(&b.RoomID, &b.ChatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *bindingStore) Create(ctx context.Context, binding *model.ConversationBinding) error {
	tag, err := s.q.Exec(ctx,
		`INSERT INTO room_conversations (roomid, chat_id)
		 VALUES ($1, $2)
		 ON CONFLICT (roomid) DO NOTHING`,
		binding.RoomID, binding.ChatID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}
