package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepedge/concierge/pkg/adapters/memory"
	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/ports"
	"github.com/stepedge/concierge/pkg/session"
)

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := session.NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "IDs must not repeat")
		seen[id] = true
	}
}

func TestTurn_CreatesSessionOnFirstUse(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	err := mgr.Turn(ctx, "fresh", func(ctx context.Context, sess *domain.Session) error {
		assert.Equal(t, domain.StepCategory, sess.Step)
		sess.Preferences.Category = "laptop"
		return nil
	})
	require.NoError(t, err)

	sess, err := mgr.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "laptop", sess.Preferences.Category)
}

func TestTurn_ErrorSkipsSave(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	boom := errors.New("boom")
	err := mgr.Turn(ctx, "s1", func(ctx context.Context, sess *domain.Session) error {
		sess.Preferences.Category = "laptop"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = mgr.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "A failed turn must not persist anything")
}

func TestTurn_SerializesPerSession(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	// Each turn reads the cart length and appends one item. Without
	// serialization the read-modify-write cycles would collide.
	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.Turn(ctx, "contended", func(ctx context.Context, sess *domain.Session) error {
				sess.Cart = append(sess.Cart, domain.Product{ID: len(sess.Cart) + 1})
				return nil
			})
		}()
	}
	wg.Wait()

	sess, err := mgr.Load(ctx, "contended")
	require.NoError(t, err)
	assert.Len(t, sess.Cart, workers)
	assert.Equal(t, workers, sess.Cart[workers-1].ID)
}

func TestTurn_IndependentSessionsDoNotBlock(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = mgr.Turn(ctx, "slow", func(ctx context.Context, sess *domain.Session) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	done := make(chan struct{})
	go func() {
		_ = mgr.Turn(ctx, "fast", func(ctx context.Context, sess *domain.Session) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("A turn for another session must not wait on an unrelated lock")
	}
	close(release)
}

// countingLocker records lock and unlock calls.
type countingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
}

func (c *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	c.mu.Lock()
	c.locks++
	c.mu.Unlock()
	return func(ctx context.Context) error {
		c.mu.Lock()
		c.unlocks++
		c.mu.Unlock()
		return nil
	}, nil
}

func TestWithLock_UsesDistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker))
	ctx := context.Background()

	err := mgr.Turn(ctx, "s1", func(ctx context.Context, sess *domain.Session) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 1, locker.locks)
	assert.Equal(t, 1, locker.unlocks, "The distributed lock must be released after the turn")
}

func TestManager_DeleteAndList(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "a", domain.NewSession()))
	require.NoError(t, mgr.Save(ctx, "b", domain.NewSession()))

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, mgr.Delete(ctx, "a"))
	ids, err = mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}
