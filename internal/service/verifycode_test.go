package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wxgate.app/wxgate/common/id"
	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/service"
	"wxgate.app/wxgate/internal/store"
)

var _ = Describe("VerificationCodeService", func() {
	var (
		svc     service.VerificationCodeService
		codes   *mockVerificationCodeStore
		sender  *mockCodeSender
		limiter *mockResendLimiter
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())

		codes = &mockVerificationCodeStore{}
		sender = &mockCodeSender{}
		limiter = &mockResendLimiter{}
		svc = service.NewVerificationCodeService(codes, sender, limiter)
	})

	Describe("SendCode", func() {
		It("stores a 4-digit code and emails it", func() {
			var stored *model.VerificationCode
			codes.createFn = func(_ context.Context, c *model.VerificationCode) error {
				stored = c
				return nil
			}
			var mailedTo, mailedCode string
			sender.sendFn = func(_ context.Context, to, code string) error {
				mailedTo, mailedCode = to, code
				return nil
			}

			Expect(svc.SendCode(ctx, "alice@example.com")).To(Succeed())

			Expect(stored).NotTo(BeNil())
			Expect(stored.ID).NotTo(BeZero())
			Expect(stored.Email).To(Equal("alice@example.com"))
			Expect(stored.Code).To(HaveLen(4))
			Expect(mailedTo).To(Equal("alice@example.com"))
			Expect(mailedCode).To(Equal(stored.Code))
		})

		It("refuses when a code was sent recently", func() {
			limiter.allowFn = func(_ context.Context, _ string) (bool, error) {
				return false, nil
			}
			codes.createFn = func(_ context.Context, _ *model.VerificationCode) error {
				Fail("no code should be stored")
				return nil
			}

			err := svc.SendCode(ctx, "alice@example.com")
			Expect(err).To(MatchError(service.ErrCodeRecentlySent))
		})

		It("fails when the email cannot be sent", func() {
			sender.sendFn = func(_ context.Context, _, _ string) error {
				return errors.New("smtp unavailable")
			}

			Expect(svc.SendCode(ctx, "alice@example.com")).NotTo(Succeed())
		})
	})

	Describe("Consume", func() {
		It("marks a matching code used", func() {
			codes.getActiveFn = func(_ context.Context, email, code string) (*model.VerificationCode, error) {
				return &model.VerificationCode{ID: 42, Email: email, Code: code}, nil
			}
			var marked int64
			codes.markUsedFn = func(_ context.Context, codeID int64) error {
				marked = codeID
				return nil
			}

			Expect(svc.Consume(ctx, "alice@example.com", "1234")).To(Succeed())
			Expect(marked).To(Equal(int64(42)))
		})

		It("rejects an unknown or expired code", func() {
			codes.getActiveFn = func(_ context.Context, _, _ string) (*model.VerificationCode, error) {
				return nil, store.ErrNotFound
			}

			err := svc.Consume(ctx, "alice@example.com", "0000")
			Expect(err).To(MatchError(service.ErrInvalidCode))
		})
	})
})
