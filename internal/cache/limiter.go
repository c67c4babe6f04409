// Package cache holds redis-backed helpers shared across services.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResendLimiter throttles verification-code email per recipient: one send
// per window, enforced with a SET NX key.
type ResendLimiter struct {
	client *redis.Client
	window time.Duration
}

func NewResendLimiter(client *redis.Client, window time.Duration) *ResendLimiter {
	return &ResendLimiter{client: client, window: window}
}

// Allow reports whether a code may be sent to the email now. The first call
// in a window claims the slot; subsequent calls within the window are denied.
func (l *ResendLimiter) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := l.client.SetNX(ctx, "verify_code:"+email, 1, l.window).Result()
	if err != nil {
		return false, fmt.Errorf("checking resend limit: %w", err)
	}
	return ok, nil
}
