package dto

import (
	"time"

	"wxgate.app/wxgate/common/token"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=1,max=255"`
}

type LoginWithCodeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Code  string `json:"code" binding:"required,len=4"`
}

type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	Nickname string `json:"nickname" binding:"omitempty,max=255"`
	Code     string `json:"code" binding:"required,len=4"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpireAt    time.Time `json:"expire_at"`
}

func ToTokenResponse(t *token.Token) *TokenResponse {
	return &TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpireAt:    t.ExpireAt,
	}
}
