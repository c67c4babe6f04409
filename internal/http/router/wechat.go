package router

import (
	"github.com/gin-gonic/gin"

	"wxgate.app/wxgate/internal/http/handler/webhook"
)

func WechatRouter(rg *gin.RouterGroup, h *webhook.WechatWebhookHandler) {
	rg.POST("/webhook", h.HandleEvent)
}
