package ads

import (
	"context"
	"errors"
	"sync"
	"time"

	"servicehub/models"
	"servicehub/services/session"
	"servicehub/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Banner is the static banner creative.
type Banner struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	CallToAction string `json:"callToAction"`
}

// DefaultBanner and VideoCreative mirror the demo creatives.
var (
	DefaultBanner = Banner{
		Title:        "Grow Your Business Online",
		Body:         "Create a professional website in minutes with our AI-powered platform",
		CallToAction: "Learn More",
	}
	VideoCreative = Banner{
		Title:        "Premium Business Tools",
		Body:         "Streamline your workflow with our professional suite",
		CallToAction: "Try Free for 30 Days",
	}
)

// Options configure video ad timing.
type Options struct {
	SkipAfter time.Duration
	Duration  time.Duration
	Tick      time.Duration
}

// AdService tracks banner dismissal in session state and runs video ads per session.
type AdService struct {
	Sessions *session.Manager
	Trigger  *Trigger
	Clock    clockwork.Clock
	Options  Options

	mu      sync.Mutex
	offers  map[string]clockwork.Timer // pending offer timers
	players map[string]*player
}

func NewAdService(sessions *session.Manager, trigger *Trigger, clock clockwork.Clock, opts Options) *AdService {
	return &AdService{
		Sessions: sessions,
		Trigger:  trigger,
		Clock:    clock,
		Options:  opts,
		offers:   make(map[string]clockwork.Timer),
		players:  make(map[string]*player),
	}
}

// BannerVisible reports whether the banner should render for state.
func BannerVisible(state models.SessionState) bool {
	return !state.BannerDismissed && !state.IsPremium()
}

// DismissBanner hides the banner for the rest of the session.
func (s *AdService) DismissBanner(ctx context.Context, sessionID string) (models.SessionState, error) {
	return s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		st.BannerDismissed = true
		return nil
	})
}

// Arm rolls the once-per-session video ad for a non-premium session and, on a win,
// schedules it to start after the trigger delay. It reports whether an ad was scheduled.
// The offer is registered while the session is locked, so an upgrade that follows always
// finds it to cancel.
func (s *AdService) Arm(ctx context.Context, sessionID string) (bool, error) {
	won := false
	_, err := s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		if st.IsPremium() || st.VideoAdRolled {
			return nil
		}
		st.VideoAdRolled = true
		if won = s.Trigger.Roll(); won {
			s.schedule(sessionID)
		}
		return nil
	})
	if err != nil {
		if won {
			s.Cancel(sessionID)
		}
		return false, err
	}
	if won {
		utils.GetLogger().Debug("video ad scheduled", zap.String("sessionID", sessionID), zap.Duration("delay", s.Trigger.Delay))
	}
	return won, nil
}

func (s *AdService) schedule(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[sessionID] = s.Clock.AfterFunc(s.Trigger.Delay, func() {
		s.play(sessionID)
	})
}

func (s *AdService) play(sessionID string) {
	st, err := s.Sessions.Get(context.Background(), sessionID)
	if err != nil || st.IsPremium() {
		s.mu.Lock()
		delete(s.offers, sessionID)
		s.mu.Unlock()
		if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			utils.GetLogger().Warn("video ad dropped", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.offers[sessionID]; !pending {
		return
	}
	delete(s.offers, sessionID)
	ad := NewVideoAd(s.Options.SkipAfter, s.Options.Duration)
	s.players[sessionID] = startPlayer(s.Clock, ad, s.Options.Tick)
}

// Pending reports whether a video ad is scheduled but not yet showing.
func (s *AdService) Pending(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.offers[sessionID]
	return ok
}

// Video returns the session's video ad, if one has started and not been dismissed.
// A finished ad is reported once and then forgotten.
func (s *AdService) Video(sessionID string) (VideoAdState, bool) {
	s.mu.Lock()
	p, ok := s.players[sessionID]
	s.mu.Unlock()
	if !ok {
		return VideoAdState{}, false
	}
	st := p.state()
	if st.Phase == VideoClosed {
		s.evict(sessionID, p)
	}
	return st, true
}

// Skip ends a skippable video ad.
func (s *AdService) Skip(sessionID string) (VideoAdState, error) {
	s.mu.Lock()
	p, ok := s.players[sessionID]
	s.mu.Unlock()
	if !ok {
		return VideoAdState{}, ErrNoVideoAd
	}
	if err := p.skip(); err != nil {
		return p.state(), err
	}
	s.evict(sessionID, p)
	return p.state(), nil
}

// evict removes p unless the session has since started another ad.
func (s *AdService) evict(sessionID string, p *player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.players[sessionID] == p {
		delete(s.players, sessionID)
	}
}

// Active is the number of pending offers and tracked players.
func (s *AdService) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.offers) + len(s.players)
}

// Close ends the video ad in any phase and removes it from the session.
func (s *AdService) Close(sessionID string) (VideoAdState, error) {
	s.mu.Lock()
	p, ok := s.players[sessionID]
	delete(s.players, sessionID)
	s.mu.Unlock()
	if !ok {
		return VideoAdState{}, ErrNoVideoAd
	}
	p.close(ClosedByUser)
	return p.state(), nil
}

// Cancel drops a pending offer and any running ad. Used on upgrade and when a session ends.
func (s *AdService) Cancel(sessionID string) {
	s.mu.Lock()
	if t, ok := s.offers[sessionID]; ok {
		t.Stop()
		delete(s.offers, sessionID)
	}
	p, ok := s.players[sessionID]
	delete(s.players, sessionID)
	s.mu.Unlock()
	if ok {
		p.close(ClosedCancelled)
	}
}

// Shutdown cancels every offer and ad.
func (s *AdService) Shutdown() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.offers)+len(s.players))
	for id := range s.offers {
		ids = append(ids, id)
	}
	for id := range s.players {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.Cancel(id)
	}
}
