package webhook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wxgate.app/wxgate/internal/http/handler/webhook"
	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/service"
)

type mockWechatService struct {
	saveMessageFn func(ctx context.Context, msg *model.WechatMessage) error
	routeFn       func(ctx context.Context, msg *model.WechatMessage) error
}

func (m *mockWechatService) SaveMessage(ctx context.Context, msg *model.WechatMessage) error {
	if m.saveMessageFn != nil {
		return m.saveMessageFn(ctx, msg)
	}
	return nil
}

func (m *mockWechatService) Route(ctx context.Context, msg *model.WechatMessage) error {
	if m.routeFn != nil {
		return m.routeFn(ctx, msg)
	}
	return nil
}

var _ = Describe("WechatWebhookHandler", func() {
	var (
		router *gin.Engine
		svc    *mockWechatService
	)

	payload := map[string]any{
		"id":       424242,
		"is_self":  false,
		"is_group": true,
		"type":     1,
		"ts":       1700000000,
		"roomid":   "room-1@chatroom",
		"content":  "@helper hi",
		"sender":   "alice-wxid",
	}

	post := func(body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/wechat/webhook", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockWechatService{}
		h := webhook.NewWechatWebhookHandler(svc)
		router.POST("/wechat/webhook", h.HandleEvent)
	})

	It("stores and routes the message, then acks", func() {
		var saved, routed *model.WechatMessage
		svc.saveMessageFn = func(_ context.Context, m *model.WechatMessage) error {
			saved = m
			return nil
		}
		svc.routeFn = func(_ context.Context, m *model.WechatMessage) error {
			routed = m
			return nil
		}

		body, _ := json.Marshal(payload)
		w := post(body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(saved).NotTo(BeNil())
		Expect(saved.ID).To(Equal(int64(424242)))
		Expect(saved.Kind).To(Equal(model.KindText))
		Expect(saved.RoomID).To(Equal("room-1@chatroom"))
		Expect(routed).To(BeIdenticalTo(saved))
	})

	It("acks a redelivered message without routing it again", func() {
		svc.saveMessageFn = func(_ context.Context, _ *model.WechatMessage) error {
			return service.ErrDuplicateMessage
		}
		var routedCount int
		svc.routeFn = func(_ context.Context, _ *model.WechatMessage) error {
			routedCount++
			return nil
		}

		body, _ := json.Marshal(payload)
		w := post(body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(routedCount).To(BeZero())
	})

	It("acks even when routing fails so the bridge does not redeliver", func() {
		svc.routeFn = func(_ context.Context, _ *model.WechatMessage) error {
			return errors.New("backend unavailable")
		}

		body, _ := json.Marshal(payload)
		w := post(body)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("returns 500 when the message cannot be stored", func() {
		svc.saveMessageFn = func(_ context.Context, _ *model.WechatMessage) error {
			return errors.New("insert failed")
		}
		var routedCount int
		svc.routeFn = func(_ context.Context, _ *model.WechatMessage) error {
			routedCount++
			return nil
		}

		body, _ := json.Marshal(payload)
		w := post(body)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(routedCount).To(BeZero())
	})

	It("returns 400 on a malformed payload", func() {
		w := post([]byte(`{`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
