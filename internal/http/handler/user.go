package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wxgate.app/wxgate/internal/http/dto"
	"wxgate.app/wxgate/internal/http/middleware"
	"wxgate.app/wxgate/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToUserResponse(middleware.CurrentUser(c)))
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.userService.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "password incorrect"})
		case errors.Is(err, service.ErrSamePassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "new password must differ from the old one"})
		default:
			slog.ErrorContext(ctx, "password change failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "getting user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 32)
	perPage, _ := strconv.ParseInt(c.DefaultQuery("per_page", "20"), 10, 32)

	total, users, err := h.userService.Search(ctx, c.Query("keyword"), int32(page), int32(perPage))
	if err != nil {
		slog.ErrorContext(ctx, "listing users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(total, users))
}

func (h *UserHandler) Ban(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.Ban(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "banning user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ban user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
