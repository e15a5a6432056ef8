package bolt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

var (
	bucketClients       = []byte("clients")
	bucketConversations = []byte("conversations")
	bucketState         = []byte("state")

	keyCurrentClient = []byte("currentClient")
)

// Store is a single-file bbolt implementation of domain.ClientStore and
// domain.MessageStore. Layout mirrors the original browser-local storage:
// one JSON client per id key, one JSON message array per client, and the
// current selection under state/currentClient. Client ids sort in creation
// order, so listing iterates the bucket newest-first.
type Store struct {
	db *bolt.DB
}

// NewStore opens (creating if needed) the DB file and its buckets.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketClients, bucketConversations, bucketState} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ─────────────────────────────────────────
// ClientStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateClient(c *domain.Client) error {
	enc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode client: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		clients := tx.Bucket(bucketClients)
		if clients.Get([]byte(c.ID)) != nil {
			return domain.ErrClientExists
		}
		return clients.Put([]byte(c.ID), enc)
	})
}

func (s *Store) UpdateClient(c *domain.Client) error {
	enc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode client: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		clients := tx.Bucket(bucketClients)
		if clients.Get([]byte(c.ID)) == nil {
			return domain.ErrClientNotFound
		}
		if err := clients.Put([]byte(c.ID), enc); err != nil {
			return err
		}

		// Keep the persisted selection in sync with the record.
		state := tx.Bucket(bucketState)
		if raw := state.Get(keyCurrentClient); raw != nil {
			var cur domain.Client
			if err := json.Unmarshal(raw, &cur); err == nil && cur.ID == c.ID {
				return state.Put(keyCurrentClient, enc)
			}
		}
		return nil
	})
}

func (s *Store) GetClient(id domain.ClientID) (*domain.Client, error) {
	var out *domain.Client
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketClients).Get([]byte(id))
		if raw == nil {
			return domain.ErrClientNotFound
		}
		var c domain.Client
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("decode client %s: %w", id, err)
		}
		out = &c
		return nil
	})
	return out, err
}

func (s *Store) ListClients() ([]*domain.Client, error) {
	var out []*domain.Client
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketClients).Cursor()
		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var c domain.Client
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("decode client %s: %w", k, err)
			}
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (s *Store) SetCurrentClient(c *domain.Client) error {
	enc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode client: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(keyCurrentClient, enc)
	})
}

func (s *Store) CurrentClient() (*domain.Client, error) {
	var out *domain.Client
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketState).Get(keyCurrentClient)
		if raw == nil {
			return domain.ErrNoCurrentClient
		}
		var c domain.Client
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("decode current client: %w", err)
		}
		out = &c
		return nil
	})
	return out, err
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

// AppendMessage reads, extends and rewrites the client's message array
// inside one write transaction, so interleaved appends cannot lose updates.
func (s *Store) AppendMessage(msg *domain.Message) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		key := []byte(msg.ClientID)

		var msgs []*domain.Message
		if raw := b.Get(key); raw != nil {
			if err := json.Unmarshal(raw, &msgs); err != nil {
				return fmt.Errorf("decode conversation %s: %w", msg.ClientID, err)
			}
		}

		msgs = append(msgs, msg)
		enc, err := json.Marshal(msgs)
		if err != nil {
			return fmt.Errorf("encode conversation %s: %w", msg.ClientID, err)
		}
		return b.Put(key, enc)
	})
}

func (s *Store) GetMessagesByClient(id domain.ClientID) ([]*domain.Message, error) {
	var out []*domain.Message
	materialized := false
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketConversations).Get([]byte(id))
		if raw == nil {
			return nil
		}
		materialized = true
		return json.Unmarshal(raw, &out)
	})
	if err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	if materialized && out == nil {
		out = []*domain.Message{}
	}
	return out, nil
}

func (s *Store) ReplaceMessages(id domain.ClientID, msgs []*domain.Message) error {
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	enc, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", id, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketConversations).Put([]byte(id), enc)
	})
}
