package service

import (
	"wxgate.app/wxgate/common/token"
	"wxgate.app/wxgate/core/config"
	"wxgate.app/wxgate/internal/store"
)

// Dependencies carries everything the service layer is built from.
type Dependencies struct {
	Stores        *store.Stores
	Tokens        *token.Manager
	Google        config.GoogleConfig
	Bridge        BridgeClient
	Conversations ConversationClient
	Mailer        CodeSender
	Limiter       ResendLimiter
}

// Services wires the service layer together. Handlers reach services only
// through this factory.
type Services struct {
	deps Dependencies
}

func NewServices(deps Dependencies) *Services {
	return &Services{deps: deps}
}

func (s *Services) Users() UserService {
	return NewUserService(s.deps.Stores.Users())
}

func (s *Services) VerificationCodes() VerificationCodeService {
	return NewVerificationCodeService(s.deps.Stores.VerificationCodes(), s.deps.Mailer, s.deps.Limiter)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.deps.Stores.Users(),
		s.Users(),
		s.VerificationCodes(),
		s.deps.Tokens,
		s.deps.Google,
	)
}

func (s *Services) Wechat() WechatService {
	return NewWechatService(
		s.deps.Stores.WechatMessages(),
		s.deps.Stores.Bindings(),
		s.deps.Stores.WechatUsers(),
		s.deps.Bridge,
		s.deps.Conversations,
	)
}
