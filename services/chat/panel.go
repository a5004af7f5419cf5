package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const replyTimeout = 10 * time.Second

// Greeting is the message a provider opens every chat with.
func Greeting(provider models.ServiceProvider) string {
	name := provider.Title
	if fields := strings.Fields(provider.Title); len(fields) > 0 {
		name = fields[0]
	}
	return fmt.Sprintf("Hi! I'm %s. How can I help you today?", name)
}

// Snapshot is a copy of a panel's visible state.
type Snapshot struct {
	Provider  models.ServiceProvider `json:"provider"`
	Messages  []models.ChatMessage   `json:"messages"`
	Recording bool                   `json:"recording"`
	OpenedAt  time.Time              `json:"openedAt"`
}

// Panel is one open conversation with a provider. Messages live only as long as the panel.
type Panel struct {
	provider   models.ServiceProvider
	clock      clockwork.Clock
	replier    Replier
	replyDelay time.Duration
	openedAt   time.Time

	mu        sync.Mutex
	messages  []models.ChatMessage
	recording bool
	pending   map[uint64]clockwork.Timer
	ready     map[uint64]string // generated replies waiting for an earlier one
	nextReply uint64
	nextShown uint64
	closed    bool
}

func newPanel(provider models.ServiceProvider, clock clockwork.Clock, replier Replier, replyDelay time.Duration) *Panel {
	p := &Panel{
		provider:   provider,
		clock:      clock,
		replier:    replier,
		replyDelay: replyDelay,
		openedAt:   clock.Now(),
		pending:    make(map[uint64]clockwork.Timer),
		ready:      make(map[uint64]string),
	}
	p.messages = append(p.messages, p.fromProvider(Greeting(provider), models.MessageTypeText))
	return p
}

func (p *Panel) fromProvider(content string, typ models.MessageType) models.ChatMessage {
	return models.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   p.provider.UserID,
		ReceiverID: models.CurrentUserID,
		Content:    content,
		Type:       typ,
		Timestamp:  p.clock.Now(),
	}
}

func (p *Panel) fromUser(content string, typ models.MessageType, attachmentURL string) models.ChatMessage {
	return models.ChatMessage{
		ID:            uuid.NewString(),
		SenderID:      models.CurrentUserID,
		ReceiverID:    p.provider.UserID,
		Content:       content,
		Type:          typ,
		Timestamp:     p.clock.Now(),
		AttachmentURL: attachmentURL,
	}
}

// Send appends the user's text message and schedules exactly one provider reply.
func (p *Panel) Send(content string) (models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return models.ChatMessage{}, ErrPanelClosed
	}
	msg := p.fromUser(content, models.MessageTypeText, "")
	p.messages = append(p.messages, msg)
	p.scheduleReply(content)
	return msg, nil
}

// scheduleReply must be called with p.mu held.
func (p *Panel) scheduleReply(content string) {
	id := p.nextReply
	p.nextReply++
	p.pending[id] = p.clock.AfterFunc(p.replyDelay, func() {
		p.deliverReply(id, content)
	})
}

func (p *Panel) deliverReply(id uint64, content string) {
	p.mu.Lock()
	_, live := p.pending[id]
	p.mu.Unlock()
	if !live {
		return
	}

	text := p.replyText(content)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, live := p.pending[id]; !live || p.closed {
		return
	}
	// Replies are shown in the order their messages were sent.
	p.ready[id] = text
	for {
		next, ok := p.ready[p.nextShown]
		if !ok {
			return
		}
		delete(p.ready, p.nextShown)
		delete(p.pending, p.nextShown)
		p.nextShown++
		p.messages = append(p.messages, p.fromProvider(next, models.MessageTypeText))
	}
}

func (p *Panel) replyText(content string) string {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()
	text, err := p.replier.Reply(ctx, p.provider, content)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			utils.GetLogger().Warn("reply generation failed, using canned reply", zap.String("providerID", p.provider.ID), zap.Error(err))
		}
		return CannedReply
	}
	return text
}

// AddAttachment appends an image message pointing at an uploaded file.
func (p *Panel) AddAttachment(filename, url string) (models.ChatMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return models.ChatMessage{}, ErrPanelClosed
	}
	msg := p.fromUser(filename, models.MessageTypeImage, url)
	p.messages = append(p.messages, msg)
	return msg, nil
}

// ToggleRecording starts or stops a voice recording. Stopping appends a voice message.
func (p *Panel) ToggleRecording() (bool, *models.ChatMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false, nil, ErrPanelClosed
	}
	p.recording = !p.recording
	if p.recording {
		return true, nil, nil
	}
	msg := p.fromUser("Voice message", models.MessageTypeVoice, "")
	p.messages = append(p.messages, msg)
	return false, &msg, nil
}

// Snapshot copies the panel's state.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Provider:  p.provider,
		Messages:  append([]models.ChatMessage(nil), p.messages...),
		Recording: p.recording,
		OpenedAt:  p.openedAt,
	}
}

// PendingReplies is the number of scheduled replies that have not fired.
func (p *Panel) PendingReplies() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Close cancels pending replies and discards the conversation.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, timer := range p.pending {
		timer.Stop()
	}
	p.pending = nil
	p.ready = nil
	p.messages = nil
	p.recording = false
}
