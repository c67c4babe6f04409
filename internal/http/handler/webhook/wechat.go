package webhook

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wxgate.app/wxgate/internal/http/dto"
	"wxgate.app/wxgate/internal/service"
)

type WechatWebhookHandler struct {
	wechatService service.WechatService
}

func NewWechatWebhookHandler(wechatService service.WechatService) *WechatWebhookHandler {
	return &WechatWebhookHandler{wechatService: wechatService}
}

// HandleEvent ingests one bridge callback. The bridge retries on non-2xx and
// would re-deliver the same message, so routing failures are logged and acked.
func (h *WechatWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.WechatWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	msg := req.ToMessage()
	if err := h.wechatService.SaveMessage(ctx, msg); err != nil {
		if errors.Is(err, service.ErrDuplicateMessage) {
			slog.InfoContext(ctx, "message already ingested, acking redelivery", "message_id", msg.ID)
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
			return
		}
		slog.ErrorContext(ctx, "storing inbound message failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	if err := h.wechatService.Route(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "routing message failed", "error", err, "message_id", msg.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
