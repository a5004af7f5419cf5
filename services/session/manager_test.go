package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"servicehub/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func stores(t *testing.T) map[string]SessionStore {
	redisStore, _ := newRedisStore(t)
	return map[string]SessionStore{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}
}

func TestCreateStartsLocked(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			m := NewManager(store, clockwork.NewFakeClock())
			state, err := m.Create(context.Background(), "user-1")
			require.NoError(t, err)
			assert.NotEmpty(t, state.ID)
			assert.Equal(t, "user-1", state.UserID)
			assert.Equal(t, models.PremiumLocked, state.Premium)
			assert.False(t, state.HasFilter())

			got, err := m.Get(context.Background(), state.ID)
			require.NoError(t, err)
			assert.Equal(t, state.ID, got.ID)
		})
	}
}

func TestSearchAndCategoryAreMutuallyExclusive(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(store, clockwork.NewFakeClock())
			state, err := m.Create(ctx, "user-1")
			require.NoError(t, err)

			state, err = m.Update(ctx, state.ID, func(s *models.SessionState) error {
				s.Search("plumb")
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, "plumb", state.Query)

			state, err = m.Update(ctx, state.ID, func(s *models.SessionState) error {
				s.SelectCategory("security")
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, "security", state.CategoryID)
			assert.Empty(t, state.Query)

			state, err = m.Update(ctx, state.ID, func(s *models.SessionState) error {
				s.Search("clean")
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, "clean", state.Query)
			assert.Empty(t, state.CategoryID)
		})
	}
}

func TestUpdateErrorDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), clockwork.NewFakeClock())
	state, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = m.Update(ctx, state.ID, func(s *models.SessionState) error {
		s.Search("lost")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := m.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Query)
}

func TestUpdateUnknownSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), clockwork.NewFakeClock())
	_, err := m.Update(context.Background(), "missing", func(*models.SessionState) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcurrentUpdatesAreSerialised(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), clockwork.NewFakeClock())
	state, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Update(ctx, state.ID, func(s *models.SessionState) error {
				s.Query += "x"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Len(t, got.Query, 50)
}

func TestEndRunsHooksAndForgetsSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), clockwork.NewFakeClock())
	state, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	var ended []string
	m.OnEnd(func(id string) { ended = append(ended, id) })

	require.NoError(t, m.End(ctx, state.ID))
	assert.Equal(t, []string{state.ID}, ended)

	_, err = m.Get(ctx, state.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreAppliesTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	state := models.NewSessionState("abc", "user-1", time.Now())
	require.NoError(t, store.Save(ctx, state))

	assert.Equal(t, time.Hour, mr.TTL(sessionKey("abc")))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreSlidingTTL(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewExpiringMemoryStore(clock, time.Hour)
	require.NoError(t, store.Save(ctx, models.NewSessionState("abc", "user-1", clock.Now())))

	clock.Advance(59 * time.Minute)
	state, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, *state))

	clock.Advance(59 * time.Minute)
	_, err = store.Get(ctx, "abc")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSweepEndsExpiredSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		m := NewManager(NewExpiringMemoryStore(clock, time.Hour), clock)
		stale, err := m.Create(ctx, "user-1")
		require.NoError(t, err)
		clock.Advance(30 * time.Minute)
		fresh, err := m.Create(ctx, "user-2")
		require.NoError(t, err)

		var ended []string
		m.OnEnd(func(id string) { ended = append(ended, id) })

		clock.Advance(45 * time.Minute)
		assert.Equal(t, 1, m.Sweep(ctx))
		assert.Equal(t, []string{stale.ID}, ended)

		_, err = m.Get(ctx, fresh.ID)
		require.NoError(t, err)
		assert.Zero(t, m.Sweep(ctx), "a swept session is not ended twice")
	})

	t.Run("redis", func(t *testing.T) {
		store, mr := newRedisStore(t)
		m := NewManager(store, clockwork.NewFakeClock())
		state, err := m.Create(ctx, "user-1")
		require.NoError(t, err)

		var ended []string
		m.OnEnd(func(id string) { ended = append(ended, id) })

		assert.Zero(t, m.Sweep(ctx))
		mr.FastForward(2 * time.Hour)
		assert.Equal(t, 1, m.Sweep(ctx))
		assert.Equal(t, []string{state.ID}, ended)
	})
}

func TestSweeperRunsOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := clockwork.NewFakeClock()
	m := NewManager(NewExpiringMemoryStore(clock, time.Minute), clock)
	_, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	ended := make(chan string, 1)
	m.OnEnd(func(id string) { ended <- id })
	m.StartSweeper(ctx, 30*time.Second)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(2 * time.Minute)
	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("expired session was not swept")
	}
}
