package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"servicehub/models"
	"servicehub/services/catalog"
	"servicehub/services/premium"
	"servicehub/services/session"
	"servicehub/services/storage"
	"servicehub/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultReplyDelay is how long a provider takes to answer.
const DefaultReplyDelay = time.Second

// GateResult reports a premium-only action. When GateOpened is true nothing was performed.
type GateResult struct {
	GateOpened bool                `json:"gateOpened"`
	Recording  bool                `json:"recording"`
	Message    *models.ChatMessage `json:"message,omitempty"`
}

// ChatService owns the open chat panel of each session.
type ChatService struct {
	Catalog    catalog.CatalogService
	Sessions   *session.Manager
	Premium    *premium.PremiumService
	Storage    storage.StorageService
	Replier    Replier
	Clock      clockwork.Clock
	ReplyDelay time.Duration

	mu     sync.Mutex
	panels map[string]*Panel // session id -> open panel
}

func NewChatService(
	catalogSvc catalog.CatalogService,
	sessions *session.Manager,
	premiumSvc *premium.PremiumService,
	store storage.StorageService,
	replier Replier,
	clock clockwork.Clock,
	replyDelay time.Duration,
) *ChatService {
	if replier == nil {
		replier = CannedReplier{}
	}
	if replyDelay <= 0 {
		replyDelay = DefaultReplyDelay
	}
	return &ChatService{
		Catalog:    catalogSvc,
		Sessions:   sessions,
		Premium:    premiumSvc,
		Storage:    store,
		Replier:    replier,
		Clock:      clock,
		ReplyDelay: replyDelay,
		panels:     make(map[string]*Panel),
	}
}

// Open starts a conversation with providerID, replacing any panel the session already had open.
func (s *ChatService) Open(ctx context.Context, sessionID, providerID string) (Snapshot, error) {
	provider, err := s.Catalog.Provider(ctx, providerID)
	if err != nil {
		return Snapshot{}, err
	}
	if _, err := s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		st.SelectedProviderID = provider.ID
		return nil
	}); err != nil {
		return Snapshot{}, err
	}

	panel := newPanel(*provider, s.Clock, s.Replier, s.ReplyDelay)

	s.mu.Lock()
	previous := s.panels[sessionID]
	s.panels[sessionID] = panel
	s.mu.Unlock()
	if previous != nil {
		previous.Close()
	}

	utils.GetLogger().Debug("chat opened", zap.String("sessionID", sessionID), zap.String("providerID", provider.ID))
	return panel.Snapshot(), nil
}

func (s *ChatService) panel(sessionID string) (*Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.panels[sessionID]
	if !ok {
		return nil, ErrPanelClosed
	}
	return p, nil
}

// Current returns the open panel's state.
func (s *ChatService) Current(sessionID string) (Snapshot, error) {
	p, err := s.panel(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return p.Snapshot(), nil
}

// Send appends a text message; the provider's reply arrives after ReplyDelay.
func (s *ChatService) Send(ctx context.Context, sessionID, content string) (models.ChatMessage, error) {
	p, err := s.panel(sessionID)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return p.Send(content)
}

// Attach uploads a file and appends it as an image message. Locked sessions get the
// premium gate opened instead and nothing is uploaded.
func (s *ChatService) Attach(ctx context.Context, sessionID, filename string, content io.Reader) (GateResult, error) {
	p, err := s.panel(sessionID)
	if err != nil {
		return GateResult{}, err
	}
	allowed, _, err := s.Premium.Require(ctx, sessionID)
	if err != nil {
		return GateResult{}, err
	}
	if !allowed {
		return GateResult{GateOpened: true}, nil
	}

	url, err := s.Storage.UploadAttachment(ctx, filename, content)
	if err != nil {
		return GateResult{}, newChatError("attachmentUpload", "failed to store attachment", err)
	}
	msg, err := p.AddAttachment(filename, url)
	if err != nil {
		return GateResult{}, err
	}
	return GateResult{Message: &msg}, nil
}

// ToggleVoice starts or stops a voice recording, or opens the premium gate while Locked.
func (s *ChatService) ToggleVoice(ctx context.Context, sessionID string) (GateResult, error) {
	p, err := s.panel(sessionID)
	if err != nil {
		return GateResult{}, err
	}
	allowed, _, err := s.Premium.Require(ctx, sessionID)
	if err != nil {
		return GateResult{}, err
	}
	if !allowed {
		return GateResult{GateOpened: true}, nil
	}

	recording, msg, err := p.ToggleRecording()
	if err != nil {
		return GateResult{}, err
	}
	return GateResult{Recording: recording, Message: msg}, nil
}

// Close discards the session's panel and cancels its pending replies.
func (s *ChatService) Close(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	p, ok := s.panels[sessionID]
	delete(s.panels, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrPanelClosed
	}
	p.Close()

	if _, err := s.Sessions.Update(ctx, sessionID, func(st *models.SessionState) error {
		st.SelectedProviderID = ""
		return nil
	}); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		return fmt.Errorf("failed to clear selected provider: %w", err)
	}
	return nil
}

// Forget drops a panel without touching session state. Used when a session ends.
func (s *ChatService) Forget(sessionID string) {
	s.mu.Lock()
	p, ok := s.panels[sessionID]
	delete(s.panels, sessionID)
	s.mu.Unlock()
	if ok {
		p.Close()
	}
}

// Shutdown closes every open panel.
func (s *ChatService) Shutdown() {
	s.mu.Lock()
	panels := s.panels
	s.panels = make(map[string]*Panel)
	s.mu.Unlock()
	for _, p := range panels {
		p.Close()
	}
}
