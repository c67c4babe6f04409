package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"wxgate.app/wxgate/core/db"
	"wxgate.app/wxgate/internal/model"
)

type verificationCodeStore struct {
	q db.Querier
}

func (s *verificationCodeStore) Create(ctx context.Context, code *model.VerificationCode) error {
	return s.q.QueryRow(ctx,
		`INSERT INTO verification_codes (id, email, code, is_used)
		 VALUES ($1, $2, $3, false)
		 RETURNING created_at`,
		code.ID, code.Email, code.Code,
	).Scan(&code.CreatedAt)
}

func (s *verificationCodeStore) GetActive(ctx context.Context, email, code string) (*model.VerificationCode, error) {
	var vc model.VerificationCode
	err := s.q.QueryRow(ctx,
		`SELECT id, email, code, is_used, created_at
		 FROM verification_codes
		 WHERE email = $1 AND code = $2 AND is_used = false
		   AND created_at > now() - interval '5 minutes'
		 ORDER BY created_at DESC
		 LIMIT 1`,
		email, code,
	).Scan(&vc.ID, &vc.Email, &vc.Code, &vc.IsUsed, &vc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vc, nil
}

func (s *verificationCodeStore) MarkUsed(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE verification_codes SET is_used = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
