package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepedge/concierge/pkg/domain"
)

// RunSessionStoreContract verifies that a SessionStore implementation adheres
// to the interface contract. Adapter test suites call it against their own
// backend (in-memory map, miniredis, ...).
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession()
		sess.Step = domain.StepBrand
		sess.Preferences.Category = "laptop"
		sess.Cart = []domain.Product{{ID: 4, Name: "Dell XPS 13", Price: 1299.99}}

		err := store.Save(ctx, sessionID, sess)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.StepBrand, loaded.Step)
		assert.Equal(t, "laptop", loaded.Preferences.Category)
		require.Len(t, loaded.Cart, 1)
		assert.Equal(t, "Dell XPS 13", loaded.Cart[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Load Isolation", func(t *testing.T) {
		sess := domain.NewSession()
		sess.PushShortlist([]domain.Product{{ID: 1, Name: "iPhone 14"}})
		require.NoError(t, store.Save(ctx, sessionID, sess))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Shortlist[0].Name = "mutated"
		loaded.PushShortlist([]domain.Product{{ID: 2}})

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, again.History, 1)
		assert.Equal(t, "iPhone 14", again.Shortlist[0].Name)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession()))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession())
		_ = store.Save(ctx, id2, domain.NewSession())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
