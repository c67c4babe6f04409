package store

import (
	"context"
	"errors"

	"wxgate.app/wxgate/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert lost to a concurrent writer on a
// uniqueness constraint.
var ErrConflict = errors.New("conflict")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Search(ctx context.Context, keyword string, page, perPage int32) (int64, []model.User, error)
}

// VerificationCodeStore defines the contract for one-time code data access
type VerificationCodeStore interface {
	Create(ctx context.Context, code *model.VerificationCode) error
	// GetActive returns the newest unused code for the email/code pair that is
	// still within its validity window.
	GetActive(ctx context.Context, email, code string) (*model.VerificationCode, error)
	MarkUsed(ctx context.Context, id int64) error
}

// WechatMessageStore persists the append-only inbound message log
type WechatMessageStore interface {
	// Create inserts a message under its bridge-assigned id; a redelivered id
	// returns ErrConflict without touching the stored row.
	Create(ctx context.Context, msg *model.WechatMessage) error
}

// WechatUserStore defines the contract for bridge contact data access
type WechatUserStore interface {
	Touch(ctx context.Context, wxid string) error
}

// BindingStore owns the room→conversation binding table
type BindingStore interface {
	GetByRoom(ctx context.Context, roomID string) (*model.ConversationBinding, error)
	// Create inserts the binding; it returns ErrConflict when a binding for
	// the room already exists (the caller re-reads the winner).
	Create(ctx context.Context, binding *model.ConversationBinding) error
}
