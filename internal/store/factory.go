package store

import (
	"wxgate.app/wxgate/core/db"
)

type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Users() UserStore {
	return &userStore{q: s.q}
}

func (s *Stores) VerificationCodes() VerificationCodeStore {
	return &verificationCodeStore{q: s.q}
}

func (s *Stores) WechatMessages() WechatMessageStore {
	return &wechatMessageStore{q: s.q}
}

func (s *Stores) WechatUsers() WechatUserStore {
	return &wechatUserStore{q: s.q}
}

func (s *Stores) Bindings() BindingStore {
	return &bindingStore{q: s.q}
}
