package memory

import (
	"sync"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

// ClientStore is an in-memory implementation of domain.ClientStore. Clients
// are kept most recently created first, matching the persisted backends.
type ClientStore struct {
	mu      sync.RWMutex
	order   []domain.ClientID
	byID    map[domain.ClientID]*domain.Client
	current *domain.Client
}

func NewClientStore() *ClientStore {
	return &ClientStore{
		byID: make(map[domain.ClientID]*domain.Client),
	}
}

func (s *ClientStore) CreateClient(c *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[c.ID]; exists {
		return domain.ErrClientExists
	}

	cp := *c
	s.byID[c.ID] = &cp
	s.order = append([]domain.ClientID{c.ID}, s.order...)
	return nil
}

func (s *ClientStore) UpdateClient(c *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[c.ID]; !exists {
		return domain.ErrClientNotFound
	}

	cp := *c
	s.byID[c.ID] = &cp
	if s.current != nil && s.current.ID == c.ID {
		cur := cp
		s.current = &cur
	}
	return nil
}

func (s *ClientStore) GetClient(id domain.ClientID) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *ClientStore) ListClients() ([]*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Client, 0, len(s.order))
	for _, id := range s.order {
		if c, ok := s.byID[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *ClientStore) SetCurrentClient(c *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.current = &cp
	return nil
}

func (s *ClientStore) CurrentClient() (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, domain.ErrNoCurrentClient
	}
	cp := *s.current
	return &cp, nil
}
