package service_test

import (
	"context"

	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/wcf"
)

type mockUserStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	createFn        func(ctx context.Context, user *model.User) error
	updateFn        func(ctx context.Context, user *model.User) error
	searchFn        func(ctx context.Context, keyword string, page, perPage int32) (int64, []model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Search(ctx context.Context, keyword string, page, perPage int32) (int64, []model.User, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, keyword, page, perPage)
	}
	return 0, nil, nil
}

type mockVerificationCodeStore struct {
	createFn    func(ctx context.Context, code *model.VerificationCode) error
	getActiveFn func(ctx context.Context, email, code string) (*model.VerificationCode, error)
	markUsedFn  func(ctx context.Context, id int64) error
}

func (m *mockVerificationCodeStore) Create(ctx context.Context, code *model.VerificationCode) error {
	if m.createFn != nil {
		return m.createFn(ctx, code)
	}
	return nil
}

func (m *mockVerificationCodeStore) GetActive(ctx context.Context, email, code string) (*model.VerificationCode, error) {
	if m.getActiveFn != nil {
		return m.getActiveFn(ctx, email, code)
	}
	return nil, nil
}

func (m *mockVerificationCodeStore) MarkUsed(ctx context.Context, id int64) error {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, id)
	}
	return nil
}

type mockWechatMessageStore struct {
	createFn func(ctx context.Context, msg *model.WechatMessage) error
}

func (m *mockWechatMessageStore) Create(ctx context.Context, msg *model.WechatMessage) error {
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	return nil
}

type mockWechatUserStore struct {
	touchFn func(ctx context.Context, wxid string) error
}

func (m *mockWechatUserStore) Touch(ctx context.Context, wxid string) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, wxid)
	}
	return nil
}

type mockBindingStore struct {
	getByRoomFn func(ctx context.Context, roomID string) (*model.ConversationBinding, error)
	createFn    func(ctx context.Context, binding *model.ConversationBinding) error
}

func (m *mockBindingStore) GetByRoom(ctx context.Context, roomID string) (*model.ConversationBinding, error) {
	if m.getByRoomFn != nil {
		return m.getByRoomFn(ctx, roomID)
	}
	return nil, nil
}

func (m *mockBindingStore) Create(ctx context.Context, binding *model.ConversationBinding) error {
	if m.createFn != nil {
		return m.createFn(ctx, binding)
	}
	return nil
}

type mockBridgeClient struct {
	getUserInfoFn func(ctx context.Context) (wcf.UserInfo, error)
	sendTextFn    func(ctx context.Context, msg, receiver, aters string) error
}

func (m *mockBridgeClient) GetUserInfo(ctx context.Context) (wcf.UserInfo, error) {
	if m.getUserInfoFn != nil {
		return m.getUserInfoFn(ctx)
	}
	return wcf.UserInfo{}, nil
}

func (m *mockBridgeClient) SendText(ctx context.Context, msg, receiver, aters string) error {
	if m.sendTextFn != nil {
		return m.sendTextFn(ctx, msg, receiver, aters)
	}
	return nil
}

type mockConversationClient struct {
	openConversationFn func(ctx context.Context) (string, error)
	sendTurnFn         func(ctx context.Context, chatID, message string) (string, error)
}

func (m *mockConversationClient) OpenConversation(ctx context.Context) (string, error) {
	if m.openConversationFn != nil {
		return m.openConversationFn(ctx)
	}
	return "", nil
}

func (m *mockConversationClient) SendTurn(ctx context.Context, chatID, message string) (string, error) {
	if m.sendTurnFn != nil {
		return m.sendTurnFn(ctx, chatID, message)
	}
	return "", nil
}

type mockCodeSender struct {
	sendFn func(ctx context.Context, to, code string) error
}

func (m *mockCodeSender) SendVerificationCode(ctx context.Context, to, code string) error {
	if m.sendFn != nil {
		return m.sendFn(ctx, to, code)
	}
	return nil
}

type mockResendLimiter struct {
	allowFn func(ctx context.Context, email string) (bool, error)
}

func (m *mockResendLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if m.allowFn != nil {
		return m.allowFn(ctx, email)
	}
	return true, nil
}
