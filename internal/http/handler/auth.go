package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wxgate.app/wxgate/internal/http/dto"
	"wxgate.app/wxgate/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	codeService service.VerificationCodeService
}

func NewAuthHandler(authService service.AuthService, codeService service.VerificationCodeService) *AuthHandler {
	return &AuthHandler{authService: authService, codeService: codeService}
}

// GoogleRedirect sends the browser to Google's consent screen.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	state := c.Query("state")
	c.Redirect(http.StatusTemporaryRedirect, h.authService.GoogleAuthURL(state))
}

// GoogleCallback exchanges the authorization code for a local access token.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	t, err := h.authService.LoginWithGoogle(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoogleExchange):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "google authorization failed"})
		case errors.Is(err, service.ErrUserBanned):
			c.JSON(http.StatusForbidden, gin.H{"error": "user is banned"})
		default:
			slog.ErrorContext(ctx, "google login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenResponse(t))
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrWrongCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		case errors.Is(err, service.ErrUserBanned):
			c.JSON(http.StatusForbidden, gin.H{"error": "user is banned"})
		default:
			slog.ErrorContext(ctx, "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenResponse(t))
}

func (h *AuthHandler) LoginWithCode(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginWithCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.authService.LoginWithCode(ctx, req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid verification code"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrUserBanned):
			c.JSON(http.StatusForbidden, gin.H{"error": "user is banned"})
		default:
			slog.ErrorContext(ctx, "code login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenResponse(t))
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(ctx, service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		Code:     req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid verification code"})
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "username already registered"})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			slog.ErrorContext(ctx, "registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *AuthHandler) SendCode(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.codeService.SendCode(ctx, req.Email); err != nil {
		if errors.Is(err, service.ErrCodeRecentlySent) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "verification code recently sent, try again later"})
			return
		}
		slog.ErrorContext(ctx, "sending verification code failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}
