package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wxgate.app/wxgate/core/db"
	"wxgate.app/wxgate/internal/model"
)

type userStore struct {
	q db.Querier
}

const userColumns = `id, username, email, password, nickname, role, level, is_banned, created_at, updated_at`

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx,
		`INSERT INTO users (id, username, email, password, nickname, role, level, is_banned)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.Password,
		user.Nickname, user.Role, user.Level, user.IsBanned,
	)
	created, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx,
		`UPDATE users
		 SET username = $2, email = $3, password = $4, nickname = $5,
		     role = $6, level = $7, is_banned = $8, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.Password,
		user.Nickname, user.Role, user.Level, user.IsBanned,
	)
	updated, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *updated
	return nil
}

func (s *userStore) Search(ctx context.Context, keyword string, page, perPage int32) (int64, []model.User, error) {
	pattern := "%" + keyword + "%"

	var total int64
	if err := s.q.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE ($1 = '%%' OR username ILIKE $1)`, pattern,
	).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("counting users: %w", err)
	}

	rows, err := s.q.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE ($1 = '%%' OR username ILIKE $1)
		 ORDER BY id
		 OFFSET $2 LIMIT $3`,
		pattern, (page-1)*perPage, perPage,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Password, &u.Nickname,
			&u.Role, &u.Level, &u.IsBanned, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return 0, nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, users, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Nickname,
		&u.Role, &u.Level, &u.IsBanned, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
