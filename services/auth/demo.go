package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"servicehub/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DemoProvider signs anyone in by email and keeps users in memory.
type DemoProvider struct {
	clock clockwork.Clock

	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
}

func NewDemoProvider(clock clockwork.Clock) *DemoProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DemoProvider{
		clock:   clock,
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (p *DemoProvider) Login(ctx context.Context, cred Credential) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(cred.Email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return nil, fmt.Errorf("%w: email %q", ErrInvalidCredential, cred.Email)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.byEmail[email]; ok {
		u := p.users[id]
		return &u, nil
	}

	name := strings.TrimSpace(cred.DisplayName)
	if name == "" {
		name = email[:at]
	}
	u := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: name,
		CreatedAt:   p.clock.Now(),
	}
	p.users[u.ID] = u
	p.byEmail[email] = u.ID
	return &u, nil
}

func (p *DemoProvider) Subscribe(ctx context.Context, token string) <-chan models.AuthState {
	return subscribe(ctx, token, p.lookup)
}

func (p *DemoProvider) lookup(_ context.Context, uid string) (*models.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.users[uid]
	if !ok {
		return nil, ErrUnknownUser
	}
	return &u, nil
}
