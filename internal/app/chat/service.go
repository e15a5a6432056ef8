package chat

import (
	"context"
	"strings"
	"time"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/observability"
)

// Service owns the per-client conversation log and drives completion turns
// through the gateway.
type Service struct {
	llm      domain.LLMClient
	clients  domain.ClientStore
	messages domain.MessageStore
	now      func() time.Time
}

func NewService(
	llm domain.LLMClient,
	clients domain.ClientStore,
	messages domain.MessageStore,
) *Service {
	return &Service{
		llm:      llm,
		clients:  clients,
		messages: messages,
		now:      time.Now,
	}
}

// Timeline returns the client and its conversation log. Opening the chat for
// a new-idea client with an empty log seeds the fixed welcome message, so
// the first render always shows exactly one assistant message.
func (s *Service) Timeline(ctx context.Context, id domain.ClientID) (*domain.Client, []*domain.Message, error) {
	client, err := s.clients.GetClient(id)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messages.GetMessagesByClient(id)
	if err != nil {
		return nil, nil, err
	}

	if domain.StageOf(client) == domain.StageNewIdea && len(msgs) == 0 {
		welcome, err := s.appendMessage(client, domain.RoleAssistant, WelcomeMessage)
		if err != nil {
			return nil, nil, err
		}
		msgs = append(msgs, welcome)
	}

	return client, msgs, nil
}

// SeedBrief replaces the client's log with a single assistant message.
// Called by the session selector at audit-type selection time.
func (s *Service) SeedBrief(ctx context.Context, client *domain.Client, brief string) (*domain.Message, error) {
	now := s.now()
	msg := &domain.Message{
		ID:        domain.MessageID(generateID(now)),
		ClientID:  client.ID,
		Role:      domain.RoleAssistant,
		Content:   brief,
		CreatedAt: now,
	}
	if err := s.messages.ReplaceMessages(client.ID, []*domain.Message{msg}); err != nil {
		return nil, err
	}
	if err := s.touch(client); err != nil {
		return nil, err
	}
	return msg, nil
}

type SendMessageInput struct {
	ClientID domain.ClientID
	Text     string
	Image    *domain.ImageData
}

type SendMessageOutput struct {
	UserMessage      *domain.Message
	AssistantMessage *domain.Message
}

// SendMessage runs one user turn: pick the context from the pre-append log,
// persist the user message, call the gateway, persist the reply.
//
// On gateway failure the user message stays appended and no assistant
// message is written; the error is surfaced as a GatewayError.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	client, err := s.clients.GetClient(in.ClientID)
	if err != nil {
		return nil, err
	}

	if !domain.StageOf(client).InChat() {
		return nil, domain.ErrInvalidStage
	}

	if strings.TrimSpace(in.Text) == "" && in.Image == nil {
		return nil, &domain.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	log := observability.LoggerFromContext(ctx).With(
		"client_id", client.ID,
		"stage", domain.StageOf(client),
	)
	log.Info("sending message")

	history, err := s.messages.GetMessagesByClient(client.ID)
	if err != nil {
		return nil, err
	}

	convContext := SelectContext(client, history)

	userMsg, err := s.appendMessage(client, domain.RoleUser, in.Text)
	if err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	replyText, err := s.llm.Complete(ctx, in.Text, convContext, in.Image)
	if err != nil {
		log.Error("completion failed", "error", err)
		return nil, &domain.GatewayError{Err: err}
	}

	assistantMsg, err := s.appendMessage(client, domain.RoleAssistant, replyText)
	if err != nil {
		log.Error("failed to append assistant message", "error", err)
		return nil, err
	}

	log.Info("send message completed")

	return &SendMessageOutput{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// appendMessage persists one message and refreshes the owning client's
// updatedAt.
func (s *Service) appendMessage(client *domain.Client, role domain.Role, content string) (*domain.Message, error) {
	now := s.now()
	msg := &domain.Message{
		ID:        domain.MessageID(generateID(now)),
		ClientID:  client.ID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}
	if err := s.messages.AppendMessage(msg); err != nil {
		return nil, err
	}
	if err := s.touch(client); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) touch(client *domain.Client) error {
	client.UpdatedAt = s.now()
	return s.clients.UpdateClient(client)
}

// WithClock replaces the service clock. Ids and timestamps both derive
// from it.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// generateID yields sortable, creation-ordered ids.
func generateID(t time.Time) string {
	return t.Format("20060102150405.000000000")
}
