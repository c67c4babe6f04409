package router

import (
	"github.com/gin-gonic/gin"

	"wxgate.app/wxgate/internal/http/handler"
	"wxgate.app/wxgate/internal/http/middleware"
	"wxgate.app/wxgate/internal/model"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler, requireAuth gin.HandlerFunc) {
	rg.Use(requireAuth)

	rg.GET("/me", h.Me)
	rg.PUT("/me/password", h.ChangePassword)

	admin := rg.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.GET("", h.List)
	admin.GET("/:id", h.GetByID)
	admin.POST("/:id/ban", h.Ban)
}
