package memory

import (
	"sync"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

// MessageStore is an in-memory implementation of domain.MessageStore.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[domain.ClientID][]*domain.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[domain.ClientID][]*domain.Message),
	}
}

func (s *MessageStore) AppendMessage(msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *msg
	s.messages[msg.ClientID] = append(s.messages[msg.ClientID], &cp)
	return nil
}

func (s *MessageStore) GetMessagesByClient(id domain.ClientID) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.messages[id]
	if !ok {
		return nil, nil
	}

	out := make([]*domain.Message, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MessageStore) ReplaceMessages(id domain.ClientID, msgs []*domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make([]*domain.Message, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		replaced = append(replaced, &cp)
	}
	s.messages[id] = replaced
	return nil
}
