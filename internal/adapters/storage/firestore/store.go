package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

// Store persists clients and conversations in Firestore. One document per
// client under "clients", messages in a per-client subcollection, and the
// current selection in a singleton "state/current" document.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) clientsCol() *firestore.CollectionRef {
	return s.client.Collection("clients")
}

func (s *Store) clientDoc(id domain.ClientID) *firestore.DocumentRef {
	return s.clientsCol().Doc(string(id))
}

func (s *Store) messagesCol(clientID domain.ClientID) *firestore.CollectionRef {
	return s.clientDoc(clientID).Collection("messages")
}

func (s *Store) currentDoc() *firestore.DocumentRef {
	return s.client.Collection("state").Doc("current")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type clientDoc struct {
	Name      string    `firestore:"name"`
	Company   string    `firestore:"company"`
	Type      string    `firestore:"type"`
	AuditType string    `firestore:"audit_type"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type currentClientDoc struct {
	clientDoc
	ClientID string `firestore:"client_id"`
}

type messageDoc struct {
	ClientID  string    `firestore:"client_id"`
	Role      string    `firestore:"role"`
	Content   string    `firestore:"content"`
	CreatedAt time.Time `firestore:"created_at"`
}

func toClientDoc(c *domain.Client) clientDoc {
	return clientDoc{
		Name:      c.Name,
		Company:   c.Company,
		Type:      string(c.Type),
		AuditType: string(c.AuditType),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromClientDoc(id domain.ClientID, doc clientDoc) *domain.Client {
	return &domain.Client{
		ID:        id,
		Name:      doc.Name,
		Company:   doc.Company,
		Type:      domain.EngagementType(doc.Type),
		AuditType: domain.AuditType(doc.AuditType),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ─────────────────────────────────────────
// ClientStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateClient(c *domain.Client) error {
	ctx := context.Background()

	_, err := s.clientDoc(c.ID).Create(ctx, toClientDoc(c))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.ErrClientExists
		}
		return fmt.Errorf("firestore CreateClient: %w", err)
	}
	return nil
}

func (s *Store) UpdateClient(c *domain.Client) error {
	ctx := context.Background()

	snap, err := s.clientDoc(c.ID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrClientNotFound
		}
		return fmt.Errorf("firestore UpdateClient: %w", err)
	}

	if _, err := snap.Ref.Set(ctx, toClientDoc(c)); err != nil {
		return fmt.Errorf("firestore UpdateClient: %w", err)
	}

	cur, err := s.CurrentClient()
	if err == nil && cur.ID == c.ID {
		return s.SetCurrentClient(c)
	}
	return nil
}

func (s *Store) GetClient(id domain.ClientID) (*domain.Client, error) {
	ctx := context.Background()

	snap, err := s.clientDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("firestore GetClient: %w", err)
	}

	var doc clientDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetClient decode: %w", err)
	}

	return fromClientDoc(id, doc), nil
}

func (s *Store) ListClients() ([]*domain.Client, error) {
	ctx := context.Background()

	iter := s.clientsCol().OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Client
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListClients: %w", err)
		}

		var doc clientDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode clientDoc: %w", err)
		}
		out = append(out, fromClientDoc(domain.ClientID(snap.Ref.ID), doc))
	}
	return out, nil
}

func (s *Store) SetCurrentClient(c *domain.Client) error {
	ctx := context.Background()

	doc := currentClientDoc{
		clientDoc: toClientDoc(c),
		ClientID:  string(c.ID),
	}
	if _, err := s.currentDoc().Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore SetCurrentClient: %w", err)
	}
	return nil
}

func (s *Store) CurrentClient() (*domain.Client, error) {
	ctx := context.Background()

	snap, err := s.currentDoc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNoCurrentClient
		}
		return nil, fmt.Errorf("firestore CurrentClient: %w", err)
	}

	var doc currentClientDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore CurrentClient decode: %w", err)
	}
	return fromClientDoc(domain.ClientID(doc.ClientID), doc.clientDoc), nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(msg *domain.Message) error {
	ctx := context.Background()

	doc := messageDoc{
		ClientID:  string(msg.ClientID),
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}

	_, err := s.messagesCol(msg.ClientID).Doc(string(msg.ID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) GetMessagesByClient(id domain.ClientID) ([]*domain.Message, error) {
	ctx := context.Background()

	// Message ids are creation-ordered, so document id order is log order.
	iter := s.messagesCol(id).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []*domain.Message{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetMessagesByClient: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.Message{
			ID:        domain.MessageID(snap.Ref.ID),
			ClientID:  id,
			Role:      domain.Role(doc.Role),
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) ReplaceMessages(id domain.ClientID, msgs []*domain.Message) error {
	ctx := context.Background()

	iter := s.messagesCol(id).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return fmt.Errorf("firestore ReplaceMessages: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("firestore ReplaceMessages delete: %w", err)
		}
	}

	for _, m := range msgs {
		if err := s.AppendMessage(m); err != nil {
			return err
		}
	}
	return nil
}
