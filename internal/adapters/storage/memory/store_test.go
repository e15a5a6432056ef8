package memory_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/adapters/storage/memory"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

func TestClientStoreListOrder(t *testing.T) {
	s := memory.NewClientStore()

	for i := 0; i < 3; i++ {
		err := s.CreateClient(&domain.Client{
			ID:   domain.ClientID(fmt.Sprintf("c%d", i)),
			Name: fmt.Sprintf("Client %d", i),
		})
		require.NoError(t, err)
	}

	list, err := s.ListClients()
	require.NoError(t, err)
	require.Len(t, list, 3)

	// most recently created first
	assert.Equal(t, domain.ClientID("c2"), list[0].ID)
	assert.Equal(t, domain.ClientID("c0"), list[2].ID)
}

func TestClientStoreUpdate(t *testing.T) {
	s := memory.NewClientStore()

	client := &domain.Client{ID: "c1", Name: "Acme"}
	require.NoError(t, s.CreateClient(client))
	require.NoError(t, s.SetCurrentClient(client))

	client.Name = "Acme Renamed"
	require.NoError(t, s.UpdateClient(client))

	got, err := s.GetClient("c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", got.Name)

	// selection is refreshed along with the record
	cur, err := s.CurrentClient()
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", cur.Name)

	err = s.UpdateClient(&domain.Client{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestClientStoreRejectsDuplicateID(t *testing.T) {
	s := memory.NewClientStore()

	require.NoError(t, s.CreateClient(&domain.Client{ID: "c1", Name: "Acme"}))

	err := s.CreateClient(&domain.Client{ID: "c1", Name: "Imposter"})
	assert.ErrorIs(t, err, domain.ErrClientExists)

	// The first record survives and the list carries no duplicate entry.
	list, err := s.ListClients()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Name)
}

func TestClientStoreCurrentUnset(t *testing.T) {
	s := memory.NewClientStore()

	_, err := s.CurrentClient()
	assert.ErrorIs(t, err, domain.ErrNoCurrentClient)
}

func TestMessageStoreAppendOrder(t *testing.T) {
	s := memory.NewMessageStore()

	const n = 10
	for i := 0; i < n; i++ {
		err := s.AppendMessage(&domain.Message{
			ID:        domain.MessageID(fmt.Sprintf("m%02d", i)),
			ClientID:  "c1",
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("msg %d", i),
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	msgs, err := s.GetMessagesByClient("c1")
	require.NoError(t, err)
	require.Len(t, msgs, n)
	for i, m := range msgs {
		assert.Equal(t, fmt.Sprintf("msg %d", i), m.Content)
	}
}

func TestMessageStoreConcurrentAppends(t *testing.T) {
	s := memory.NewMessageStore()

	const writers = 8
	const perWriter = 50

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

func TestMessageStoreReplace(t *testing.T) {
	s := memory.NewMessageStore()

	require.NoError(t, s.AppendMessage(&domain.Message{ID: "m1", ClientID: "c1", Content: "old"}))

	seed := &domain.Message{ID: "m2", ClientID: "c1", Role: domain.RoleAssistant, Content: "brief"}
	require.NoError(t, s.ReplaceMessages("c1", []*domain.Message{seed}))

	msgs, err := s.GetMessagesByClient("c1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "brief", msgs[0].Content)
}

func TestMessageStoreMissingLogIsNil(t *testing.T) {
	s := memory.NewMessageStore()

	msgs, err := s.GetMessagesByClient("nobody")
	require.NoError(t, err)
	assert.Nil(t, msgs)

	// materialized-but-empty is distinct from missing
	require.NoError(t, s.ReplaceMessages("c1", nil))
	msgs, err = s.GetMessagesByClient("c1")
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}
