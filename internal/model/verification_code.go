package model

import "time"

// VerificationCode is one emailed one-time code. Codes are valid for five
// minutes from creation and are consumed on first successful use.
type VerificationCode struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}
