package auth

import (
	"context"
	"errors"

	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUnknownUser       = errors.New("unknown user")
)

// Credential is what a client presents to sign in. The demo provider reads Email and
// DisplayName; the firebase provider reads IDToken.
type Credential struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

// Provider resolves users. Login checks a credential; Subscribe reports the auth state
// behind a servicehub session token, first as loading and then resolved.
type Provider interface {
	Login(ctx context.Context, cred Credential) (*models.User, error)
	Subscribe(ctx context.Context, token string) <-chan models.AuthState
}

type userLookup func(ctx context.Context, uid string) (*models.User, error)

// subscribe emits a loading state, then the user behind token (or none), then closes.
func subscribe(ctx context.Context, token string, lookup userLookup) <-chan models.AuthState {
	ch := make(chan models.AuthState, 2)
	ch <- models.AuthState{IsLoading: true}
	go func() {
		defer close(ch)
		var state models.AuthState
		claims, err := utils.ExtractClaims(token)
		if err != nil {
			ch <- state
			return
		}
		user, err := lookup(ctx, claims.Subject)
		if err != nil {
			utils.GetLogger().Debug("auth lookup failed", zap.String("uid", claims.Subject), zap.Error(err))
		} else {
			state.User = user
		}
		ch <- state
	}()
	return ch
}

// Resolve drains a subscription and returns its final state.
func Resolve(ctx context.Context, states <-chan models.AuthState) models.AuthState {
	last := models.AuthState{IsLoading: true}
	for {
		select {
		case st, ok := <-states:
			if !ok {
				return last
			}
			last = st
		case <-ctx.Done():
			return last
		}
	}
}
