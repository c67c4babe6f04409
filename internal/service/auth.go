package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"wxgate.app/wxgate/common/token"
	"wxgate.app/wxgate/core/config"
	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/store"
)

var (
	// ErrWrongCredentials is returned when the password check fails at login.
	ErrWrongCredentials = errors.New("incorrect username or password")

	// ErrUserBanned is returned when a banned account attempts to log in.
	ErrUserBanned = errors.New("user is banned")

	// ErrGoogleExchange is returned when the Google authorization code cannot
	// be exchanged or the profile cannot be fetched.
	ErrGoogleExchange = errors.New("google authorization failed")
)

// RegisterParams carries the self-service registration fields.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Nickname string
	Code     string
}

// AuthService authenticates users and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*token.Token, error)
	LoginWithCode(ctx context.Context, email, code string) (*token.Token, error)
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	// GoogleAuthURL builds the consent-screen redirect URL for the given state.
	GoogleAuthURL(state string) string
	LoginWithGoogle(ctx context.Context, code string) (*token.Token, error)
}

type authService struct {
	users             store.UserStore
	accounts          UserService
	codes             VerificationCodeService
	tokens            *token.Manager
	google            oauth2.Config
	googleUserinfoURL string
}

func NewAuthService(users store.UserStore, accounts UserService, codes VerificationCodeService, tokens *token.Manager, google config.GoogleConfig) AuthService {
	return &authService{
		users:    users,
		accounts: accounts,
		codes:    codes,
		tokens:   tokens,
		google: oauth2.Config{
			ClientID:     google.ClientID,
			ClientSecret: google.ClientSecret,
			RedirectURL:  google.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  google.AuthURI,
				TokenURL: google.TokenURI,
			},
		},
		googleUserinfoURL: google.UserinfoURL,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*token.Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrWrongCredentials
	}
	return s.issue(ctx, user)
}

func (s *authService) LoginWithCode(ctx context.Context, email, code string) (*token.Token, error) {
	if err := s.codes.Consume(ctx, email, code); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return s.issue(ctx, user)
}

func (s *authService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if err := s.codes.Consume(ctx, params.Email, params.Code); err != nil {
		return nil, err
	}

	return s.accounts.Create(ctx, CreateUserParams{
		Username: params.Username,
		Email:    params.Email,
		Password: params.Password,
		Nickname: params.Nickname,
		Role:     model.RoleUser,
	})
}

func (s *authService) GoogleAuthURL(state string) string {
	return s.google.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *authService) LoginWithGoogle(ctx context.Context, code string) (*token.Token, error) {
	oauthToken, err := s.google.Exchange(ctx, code)
	if err != nil {
		slog.WarnContext(ctx, "google code exchange failed", "error", err)
		return nil, ErrGoogleExchange
	}

	profile, err := s.fetchGoogleProfile(ctx, oauthToken)
	if err != nil {
		slog.WarnContext(ctx, "google profile fetch failed", "error", err)
		return nil, ErrGoogleExchange
	}

	user, err := s.users.GetByEmail(ctx, profile.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("getting user: %w", err)
		}
		user, err = s.provisionGoogleUser(ctx, profile)
		if err != nil {
			return nil, err
		}
	}
	return s.issue(ctx, user)
}

type googleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *authService) fetchGoogleProfile(ctx context.Context, t *oauth2.Token) (*googleProfile, error) {
	resp, err := s.google.Client(ctx, t).Get(s.googleUserinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, errors.New("userinfo response missing email")
	}
	return &profile, nil
}

// provisionGoogleUser creates a local account for a first-time Google login.
// The account gets an unguessable random password; the user can only sign in
// through Google until they set one.
func (s *authService) provisionGoogleUser(ctx context.Context, profile *googleProfile) (*model.User, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating password: %w", err)
	}

	nickname := profile.Name
	if nickname == "" {
		nickname = profile.Email
	}

	user, err := s.accounts.Create(ctx, CreateUserParams{
		Username: profile.Email,
		Email:    profile.Email,
		Password: hex.EncodeToString(buf),
		Nickname: nickname,
		Role:     model.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "provisioned google account", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *authService) issue(ctx context.Context, user *model.User) (*token.Token, error) {
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	t, err := s.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID, "username", user.Username)
	return t, nil
}
