package registry

import (
	"context"
	"strings"
	"time"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/observability"
)

// Service owns the client collection and the single current-selection slot.
// All callers create, patch and select through here; nobody re-reads and
// re-writes the collection on their own.
type Service struct {
	clients  domain.ClientStore
	messages domain.MessageStore
	now      func() time.Time
}

func NewService(clients domain.ClientStore, messages domain.MessageStore) *Service {
	return &Service{
		clients:  clients,
		messages: messages,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name    string
	Company string
}

// Create registers a new client, selects it, and materializes its empty
// conversation log. The engagement type defaults to new_idea; the select-type
// step overwrites it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	now := s.now()
	client := &domain.Client{
		ID:        domain.ClientID(generateID(now)),
		Name:      name,
		Company:   strings.TrimSpace(in.Company),
		Type:      domain.EngagementNewIdea,
		CreatedAt: now,
		UpdatedAt: now,
	}

	log := observability.LoggerFromContext(ctx).With("client_id", client.ID, "name", client.Name)
	log.Info("creating client")

	if err := s.clients.CreateClient(client); err != nil {
		log.Error("failed to create client", "error", err)
		return nil, err
	}
	if err := s.clients.SetCurrentClient(client); err != nil {
		return nil, err
	}
	if err := s.messages.ReplaceMessages(client.ID, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// List returns clients in stored order (most recently created first),
// filtered by a case-insensitive substring match on name or company. The
// view is recomputed from the store on every call.
func (s *Service) List(ctx context.Context, query string) ([]*domain.Client, error) {
	all, err := s.clients.ListClients()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	out := make([]*domain.Client, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Company), query) {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdatePatch carries the fields to merge into a client record. Nil fields
// are left untouched. ClearAuditType wipes auditType regardless of
// AuditType's value.
type UpdatePatch struct {
	Name           *string
	Company        *string
	Type           *domain.EngagementType
	AuditType      *domain.AuditType
	ClearAuditType bool
}

// Update merges the patch into the matching record and refreshes updatedAt.
// An unknown id is an error, not a silent no-op.
func (s *Service) Update(ctx context.Context, id domain.ClientID, patch UpdatePatch) (*domain.Client, error) {
	client, err := s.clients.GetClient(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		client.Name = name
	}
	if patch.Company != nil {
		client.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Type != nil {
		client.Type = *patch.Type
	}
	if patch.AuditType != nil {
		client.AuditType = *patch.AuditType
	}
	if patch.ClearAuditType {
		client.AuditType = ""
	}

	client.UpdatedAt = s.now()

	if err := s.clients.UpdateClient(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Select makes a client the current selection and ensures its conversation
// log exists.
func (s *Service) Select(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	client, err := s.clients.GetClient(id)
	if err != nil {
		return nil, err
	}

	if err := s.clients.SetCurrentClient(client); err != nil {
		return nil, err
	}

	msgs, err := s.messages.GetMessagesByClient(id)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		if err := s.messages.ReplaceMessages(id, nil); err != nil {
			return nil, err
		}
	}

	observability.LoggerFromContext(ctx).Info("client selected", "client_id", id)

	return client, nil
}

// Get returns a client by id.
func (s *Service) Get(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	return s.clients.GetClient(id)
}

// Current returns the active selection, or ErrNoCurrentClient.
func (s *Service) Current(ctx context.Context) (*domain.Client, error) {
	return s.clients.CurrentClient()
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
