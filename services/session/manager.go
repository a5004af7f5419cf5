package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// EndHook runs after a session has been removed, so owners of per-session timers can stop them.
type EndHook func(sessionID string)

// Manager is the only writer of session state. Updates to one session are serialised so
// every reader observes a consistent value.
type Manager struct {
	store SessionStore
	clock clockwork.Clock

	locks sync.Map // session id -> *sync.Mutex

	hooksMu sync.Mutex
	onEnd   []EndHook
}

func NewManager(store SessionStore, clock clockwork.Clock) *Manager {
	return &Manager{store: store, clock: clock}
}

func (m *Manager) lock(id string) *sync.Mutex {
	l, _ := m.locks.LoadOrStore(id, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// OnEnd registers a hook run by End.
func (m *Manager) OnEnd(hook EndHook) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.onEnd = append(m.onEnd, hook)
}

// Create starts a Locked session for userID.
func (m *Manager) Create(ctx context.Context, userID string) (models.SessionState, error) {
	state := models.NewSessionState(uuid.NewString(), userID, m.clock.Now())
	if err := m.store.Save(ctx, state); err != nil {
		return models.SessionState{}, err
	}
	m.lock(state.ID)
	return state, nil
}

// Get returns a snapshot of the session.
func (m *Manager) Get(ctx context.Context, id string) (models.SessionState, error) {
	state, err := m.store.Get(ctx, id)
	if err != nil {
		return models.SessionState{}, err
	}
	return *state, nil
}

// Update applies fn to the session and saves the result. If fn returns an error nothing is saved.
func (m *Manager) Update(ctx context.Context, id string, fn func(*models.SessionState) error) (models.SessionState, error) {
	l := m.lock(id)
	l.Lock()
	defer l.Unlock()

	state, err := m.store.Get(ctx, id)
	if err != nil {
		return models.SessionState{}, err
	}
	if err := fn(state); err != nil {
		return *state, err
	}
	state.UpdatedAt = m.clock.Now()
	if err := m.store.Save(ctx, *state); err != nil {
		return models.SessionState{}, err
	}
	return *state, nil
}

// End deletes the session and runs the end hooks.
func (m *Manager) End(ctx context.Context, id string) error {
	l := m.lock(id)
	l.Lock()
	err := m.store.Delete(ctx, id)
	l.Unlock()
	m.locks.Delete(id)
	if err != nil {
		return err
	}
	m.runEndHooks(id)
	return nil
}

func (m *Manager) runEndHooks(id string) {
	m.hooksMu.Lock()
	hooks := append([]EndHook(nil), m.onEnd...)
	m.hooksMu.Unlock()
	for _, hook := range hooks {
		hook(id)
	}
}

// Sweep ends every session this manager has seen that the store no longer holds, so sessions
// that expired without a logout still release their timers. It returns how many were ended.
func (m *Manager) Sweep(ctx context.Context) int {
	var ids []string
	m.locks.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})

	swept := 0
	for _, id := range ids {
		_, err := m.store.Get(ctx, id)
		if errors.Is(err, ErrSessionNotFound) {
			m.locks.Delete(id)
			m.runEndHooks(id)
			swept++
			continue
		}
		if err != nil {
			utils.GetLogger().Warn("session sweep failed", zap.String("sessionID", id), zap.Error(err))
		}
	}
	if swept > 0 {
		utils.GetLogger().Debug("expired sessions swept", zap.Int("count", swept))
	}
	return swept
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = utils.DefaultSessionSweepInterval
	}
	go func() {
		ticker := m.clock.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				m.Sweep(ctx)
			}
		}
	}()
}
