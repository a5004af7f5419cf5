package premium

import (
	"context"
	"sync"

	"servicehub/models"
	"servicehub/services/session"
	"servicehub/utils"

	"go.uber.org/zap"
)

// UpgradeHook runs after a session has moved to Unlocked.
type UpgradeHook func(sessionID string)

// PremiumService applies gate transitions through the session manager.
type PremiumService struct {
	Sessions *session.Manager

	mu        sync.Mutex
	onUpgrade []UpgradeHook
}

func NewPremiumService(sessions *session.Manager) *PremiumService {
	return &PremiumService{Sessions: sessions}
}

// OnUpgrade registers a hook run once per session when it unlocks.
func (s *PremiumService) OnUpgrade(hook UpgradeHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpgrade = append(s.onUpgrade, hook)
}

// Upgrade unlocks the session. The simulated payment always succeeds.
func (s *PremiumService) Upgrade(ctx context.Context, sessionID string) (models.SessionState, error) {
	changed := false
	state, err := s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		changed = Upgrade(st)
		return nil
	})
	if err != nil {
		return state, err
	}
	if changed {
		utils.GetLogger().Info("session upgraded to premium", zap.String("sessionID", sessionID), zap.String("userID", state.UserID))
		s.mu.Lock()
		hooks := append([]UpgradeHook(nil), s.onUpgrade...)
		s.mu.Unlock()
		for _, hook := range hooks {
			hook(sessionID)
		}
	}
	return state, nil
}

// Require checks a premium-only action, opening the dialog when the session is Locked.
func (s *PremiumService) Require(ctx context.Context, sessionID string) (bool, models.SessionState, error) {
	allowed := false
	state, err := s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		allowed = Require(st)
		return nil
	})
	return allowed, state, err
}

func (s *PremiumService) OpenGate(ctx context.Context, sessionID string) (models.SessionState, error) {
	return s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		OpenGate(st)
		return nil
	})
}

func (s *PremiumService) CloseGate(ctx context.Context, sessionID string) (models.SessionState, error) {
	return s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		CloseGate(st)
		return nil
	})
}
