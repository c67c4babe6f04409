package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wxgate.app/wxgate/common/logger"
	"wxgate.app/wxgate/internal/model"
	"wxgate.app/wxgate/internal/store"
	"wxgate.app/wxgate/internal/wcf"
)

const (
	// keywordTrigger short-circuits the AI path for connectivity checks.
	keywordTrigger = "testreply"
	keywordReply   = "test reply"
)

// ErrDuplicateMessage is returned when the bridge redelivers a message id
// that was already ingested.
var ErrDuplicateMessage = errors.New("message already ingested")

// BridgeClient is the outbound surface of the WeChat bridge.
type BridgeClient interface {
	GetUserInfo(ctx context.Context) (wcf.UserInfo, error)
	SendText(ctx context.Context, msg, receiver, aters string) error
}

// ConversationClient is the AI chat backend surface.
type ConversationClient interface {
	OpenConversation(ctx context.Context) (string, error)
	SendTurn(ctx context.Context, chatID, message string) (string, error)
}

// WechatService ingests bridge events and routes them to the AI backend.
type WechatService interface {
	// SaveMessage persists the inbound event under its bridge-assigned id
	// before any routing decision is made. A redelivered id returns
	// ErrDuplicateMessage.
	SaveMessage(ctx context.Context, msg *model.WechatMessage) error
	Route(ctx context.Context, msg *model.WechatMessage) error
}

type messageHandler func(ctx context.Context, msg *model.WechatMessage) error

type wechatService struct {
	messages store.WechatMessageStore
	bindings store.BindingStore
	contacts store.WechatUserStore
	bridge   BridgeClient
	ai       ConversationClient

	handlers map[model.MessageKind]messageHandler
}

func NewWechatService(messages store.WechatMessageStore, bindings store.BindingStore, contacts store.WechatUserStore, bridge BridgeClient, ai ConversationClient) WechatService {
	s := &wechatService{
		messages: messages,
		bindings: bindings,
		contacts: contacts,
		bridge:   bridge,
		ai:       ai,
	}
	s.handlers = map[model.MessageKind]messageHandler{
		model.KindText: s.handleText,
	}
	return s
}

func (s *wechatService) SaveMessage(ctx context.Context, msg *model.WechatMessage) error {
	if err := s.messages.Create(ctx, msg); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrDuplicateMessage
		}
		return fmt.Errorf("storing message: %w", err)
	}

	if msg.Sender != "" {
		if err := s.contacts.Touch(ctx, msg.Sender); err != nil {
			// The contact table is bookkeeping; never fail ingestion over it.
			slog.WarnContext(ctx, "recording contact failed", "error", err)
		}
	}
	return nil
}

func (s *wechatService) Route(ctx context.Context, msg *model.WechatMessage) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:   logger.Ptr(msg.ID),
		RoomID:      logger.Ptr(msg.RoomID),
		Sender:      logger.Ptr(msg.Sender),
		MessageKind: logger.Ptr(int(msg.Kind)),
	})

	handler, ok := s.handlers[msg.Kind]
	if !ok {
		slog.WarnContext(ctx, "no handler for message kind, dropping")
		return nil
	}
	return handler(ctx, msg)
}

func (s *wechatService) handleText(ctx context.Context, msg *model.WechatMessage) error {
	if strings.Contains(msg.Content, keywordTrigger) {
		if err := s.bridge.SendText(ctx, keywordReply, msg.RoomID, msg.Sender); err != nil {
			return fmt.Errorf("sending keyword reply: %w", err)
		}
		slog.InfoContext(ctx, "keyword reply sent")
	}

	if !msg.IsGroup {
		return nil
	}

	mentioned, err := s.addressesBot(ctx, msg.Content)
	if err != nil {
		return err
	}
	if !mentioned {
		slog.DebugContext(ctx, "group message does not address the bot, ignoring")
		return nil
	}

	chatID, err := s.resolveConversation(ctx, msg.RoomID)
	if err != nil {
		return err
	}

	// The turn carries the content verbatim, mention prefix included.
	answer, err := s.ai.SendTurn(ctx, chatID, msg.Content)
	if err != nil {
		return fmt.Errorf("sending turn: %w", err)
	}

	if err := s.bridge.SendText(ctx, answer, msg.RoomID, msg.Sender); err != nil {
		return fmt.Errorf("sending answer: %w", err)
	}

	slog.InfoContext(ctx, "answer relayed", "chat_id", chatID, "question", logger.Truncate(msg.Content, 120))
	return nil
}

// addressesBot reports whether the content opens with an @-mention of the
// bot's own account.
func (s *wechatService) addressesBot(ctx context.Context, content string) (bool, error) {
	info, err := s.bridge.GetUserInfo(ctx)
	if err != nil {
		return false, fmt.Errorf("getting bot identity: %w", err)
	}
	return strings.HasPrefix(content, "@"+info.Name), nil
}

// resolveConversation returns the conversation bound to the room, opening and
// binding a new one on first contact. When two deliveries race on the first
// message, the insert loser re-reads and adopts the winner's conversation.
func (s *wechatService) resolveConversation(ctx context.Context, roomID string) (string, error) {
	binding, err := s.bindings.GetByRoom(ctx, roomID)
	if err == nil {
		return binding.ChatID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("looking up binding: %w", err)
	}

	chatID, err := s.ai.OpenConversation(ctx)
	if err != nil {
		return "", fmt.Errorf("opening conversation: %w", err)
	}

	err = s.bindings.Create(ctx, &model.ConversationBinding{RoomID: roomID, ChatID: chatID})
	if errors.Is(err, store.ErrConflict) {
		winner, err := s.bindings.GetByRoom(ctx, roomID)
		if err != nil {
			return "", fmt.Errorf("re-reading binding after conflict: %w", err)
		}
		slog.InfoContext(ctx, "lost binding race, adopting existing conversation",
			"chat_id", winner.ChatID, "orphaned_chat_id", chatID)
		return winner.ChatID, nil
	}
	if err != nil {
		return "", fmt.Errorf("storing binding: %w", err)
	}

	slog.InfoContext(ctx, "bound room to new conversation", "chat_id", chatID)
	return chatID, nil
}
