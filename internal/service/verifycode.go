package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"wxgate.app/wxgate/common/id"
	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/store"
)

var (
	// ErrCodeRecentlySent is returned when a code was requested for the same
	// email within the resend window.
	ErrCodeRecentlySent = errors.New("verification code recently sent")

	// ErrInvalidCode is returned when no active code matches the email/code pair.
	ErrInvalidCode = errors.New("invalid verification code")
)

// CodeSender delivers a verification code to an email address.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// ResendLimiter gates how often a single email may request a new code.
type ResendLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// VerificationCodeService issues and consumes one-time email codes.
type VerificationCodeService interface {
	SendCode(ctx context.Context, email string) error
	// Consume validates the code and marks it used so it cannot be replayed.
	Consume(ctx context.Context, email, code string) error
}

type verificationCodeService struct {
	codes   store.VerificationCodeStore
	sender  CodeSender
	limiter ResendLimiter
}

func NewVerificationCodeService(codes store.VerificationCodeStore, sender CodeSender, limiter ResendLimiter) VerificationCodeService {
	return &verificationCodeService{codes: codes, sender: sender, limiter: limiter}
}

func (s *verificationCodeService) SendCode(ctx context.Context, email string) error {
	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		return fmt.Errorf("checking resend limit: %w", err)
	}
	if !allowed {
		return ErrCodeRecentlySent
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if err := s.codes.Create(ctx, &model.VerificationCode{ID: id.New(), Email: email, Code: code}); err != nil {
		return fmt.Errorf("storing verification code: %w", err)
	}

	if err := s.sender.SendVerificationCode(ctx, email, code); err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}

	slog.InfoContext(ctx, "verification code sent", "email", email)
	return nil
}

func (s *verificationCodeService) Consume(ctx context.Context, email, code string) error {
	active, err := s.codes.GetActive(ctx, email, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("looking up verification code: %w", err)
	}

	if err := s.codes.MarkUsed(ctx, active.ID); err != nil {
		return fmt.Errorf("marking code used: %w", err)
	}
	return nil
}

// generateCode produces a 4-digit numeric code, zero-padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
