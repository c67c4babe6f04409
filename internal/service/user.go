package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"wxgate.app/wxgate/common/id"
	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/store"
)

var (
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWrongPassword is returned when the supplied password does not match.
	ErrWrongPassword = errors.New("password incorrect")

	// ErrSamePassword is returned when the new password equals the old one.
	ErrSamePassword = errors.New("new password must differ from the old one")
)

// CreateUserParams carries the fields needed to create an account.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	Nickname string
	Role     model.Role
	Level    int
}

// UserService owns account lifecycle and admin operations.
type UserService interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	Search(ctx context.Context, keyword string, page, perPage int32) (int64, []model.User, error)
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) (*model.User, error)
	Ban(ctx context.Context, id int64) (*model.User, error)
	// SeedAdmin ensures the built-in admin account exists. It is a no-op when
	// the account is already present or no admin password is configured.
	SeedAdmin(ctx context.Context, password string) error
}

type userService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) Search(ctx context.Context, keyword string, page, perPage int32) (int64, []model.User, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	total, users, err := s.users.Search(ctx, keyword, page, perPage)
	if err != nil {
		return 0, nil, fmt.Errorf("searching users: %w", err)
	}
	return total, users, nil
}

func (s *userService) Create(ctx context.Context, params CreateUserParams) (*model.User, error) {
	if _, err := s.users.GetByUsername(ctx, params.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := params.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		ID:       id.New(),
		Username: params.Username,
		Email:    params.Email,
		Password: string(hash),
		Nickname: params.Nickname,
		Role:     role,
		Level:    params.Level,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return nil, ErrWrongPassword
	}
	if oldPassword == newPassword {
		return nil, ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user.Password = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *userService) Ban(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsBanned = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	slog.InfoContext(ctx, "user banned", "user_id", user.ID)
	return user, nil
}

func (s *userService) SeedAdmin(ctx context.Context, password string) error {
	if password == "" {
		return nil
	}

	if _, err := s.users.GetByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking admin account: %w", err)
	}

	_, err := s.Create(ctx, CreateUserParams{
		Username: "admin",
		Email:    "admin@admin.com",
		Password: password,
		Nickname: "admin",
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}
	return nil
}
