package bolt_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bolt "github.com/toyhtowdomasydyt/sales-gemini-chat/internal/adapters/storage/bolt"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

func newStore(t *testing.T) *bolt.Store {
	t.Helper()

	s, err := bolt.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestClientRoundTrip(t *testing.T) {
	s := newStore(t)

	now := time.Now().Truncate(time.Millisecond)
	client := &domain.Client{
		ID:        "20250101120000.000000001",
		Name:      "Acme",
		Company:   "Acme Corp",
		Type:      domain.EngagementImprovement,
		AuditType: domain.AuditUX,
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, s.CreateClient(client))

	got, err := s.GetClient(client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.Name, got.Name)
	assert.Equal(t, client.Type, got.Type)
	assert.Equal(t, client.AuditType, got.AuditType)
	assert.True(t, got.CreatedAt.Equal(client.CreatedAt))

	_, err = s.GetClient("missing")
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestListClientsNewestFirst(t *testing.T) {
	s := newStore(t)

	// ids are creation-ordered, so key order is creation order
	ids := []domain.ClientID{
		"20250101120000.000000001",
		"20250101120000.000000002",
		"20250101120000.000000003",
	}
	for i, id := range ids {
		require.NoError(t, s.CreateClient(&domain.Client{ID: id, Name: fmt.Sprintf("Client %d", i)}))
	}

	list, err := s.ListClients()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[0], list[2].ID)
}

func TestCreateClientRejectsDuplicateID(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.CreateClient(&domain.Client{ID: "c1", Name: "Acme"}))

	err := s.CreateClient(&domain.Client{ID: "c1", Name: "Imposter"})
	assert.ErrorIs(t, err, domain.ErrClientExists)

	got, err := s.GetClient("c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestUpdateClientRefreshesSelection(t *testing.T) {
	s := newStore(t)

	client := &domain.Client{ID: "c1", Name: "Acme"}
	require.NoError(t, s.CreateClient(client))
	require.NoError(t, s.SetCurrentClient(client))

	client.Name = "Acme Renamed"
	require.NoError(t, s.UpdateClient(client))

	cur, err := s.CurrentClient()
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", cur.Name)

	err = s.UpdateClient(&domain.Client{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestCurrentClientUnset(t *testing.T) {
	s := newStore(t)

	_, err := s.CurrentClient()
	assert.ErrorIs(t, err, domain.ErrNoCurrentClient)
}

func TestMessagesAppendOrderAndReplace(t *testing.T) {
	s := newStore(t)

	const n = 7
	for i := 0; i < n; i++ {
		err := s.AppendMessage(&domain.Message{
			ID:       domain.MessageID(fmt.Sprintf("m%02d", i)),
			ClientID: "c1",
			Role:     domain.RoleUser,
			Content:  fmt.Sprintf("msg %d", i),
		})
		require.NoError(t, err)
	}

	msgs, err := s.GetMessagesByClient("c1")
	require.NoError(t, err)
	require.Len(t, msgs, n)
	for i, m := range msgs {
		assert.Equal(t, fmt.Sprintf("msg %d", i), m.Content)
	}

	seed := &domain.Message{ID: "seed", ClientID: "c1", Role: domain.RoleAssistant, Content: "brief"}
	require.NoError(t, s.ReplaceMessages("c1", []*domain.Message{seed}))

	msgs, err = s.GetMessagesByClient("c1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "brief", msgs[0].Content)
}

func TestMessagesConcurrentAppends(t *testing.T) {
	s := newStore(t)

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				err := s.AppendMessage(&domain.Message{
					ID:       domain.MessageID(fmt.Sprintf("w%d-m%02d", w, i)),
					ClientID: "c1",
					Role:     domain.RoleUser,
					Content:  fmt.Sprintf("writer %d msg %d", w, i),
				})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	msgs, err := s.GetMessagesByClient("c1")
	require.NoError(t, err)
	assert.Len(t, msgs, writers*perWriter)
}

func TestMessagesMissingVersusEmpty(t *testing.T) {
	s := newStore(t)

	msgs, err := s.GetMessagesByClient("nobody")
	require.NoError(t, err)
	assert.Nil(t, msgs)

	require.NoError(t, s.ReplaceMessages("c1", nil))
	msgs, err = s.GetMessagesByClient("c1")
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := bolt.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.CreateClient(&domain.Client{ID: "c1", Name: "Acme"}))
	require.NoError(t, s.Close())

	s, err = bolt.NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetClient("c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}
