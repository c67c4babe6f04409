package router

import (
	"github.com/gin-gonic/gin"

	"wxgate.app/wxgate/common/token"
	"wxgate.app/wxgate/internal/http/handler"
	"wxgate.app/wxgate/internal/http/handler/webhook"
	"wxgate.app/wxgate/internal/http/middleware"
	"wxgate.app/wxgate/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services, tokens *token.Manager) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authHandler := handler.NewAuthHandler(services.Auth(), services.VerificationCodes())
	userHandler := handler.NewUserHandler(services.Users())
	wechatHandler := webhook.NewWechatWebhookHandler(services.Wechat())

	requireAuth := middleware.RequireAuth(tokens, services.Users())

	v1 := router.Group("/v1")
	{
		AuthRouter(v1, authHandler)
		UserRouter(v1.Group("/users"), userHandler, requireAuth)
		WechatRouter(v1.Group("/wechat"), wechatHandler)
	}
}
