package router

import (
	"github.com/gin-gonic/gin"

	"wxgate.app/wxgate/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.GET("/auth/google", h.GoogleRedirect)
	rg.GET("/login/google", h.GoogleCallback)
	rg.POST("/login/token", h.Login)
	rg.POST("/login/token-with-code", h.LoginWithCode)
	rg.POST("/verify-code", h.SendCode)
	rg.POST("/register", h.Register)
}
