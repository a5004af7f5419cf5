package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	catalogRepo "servicehub/database/repository/catalog"
	"servicehub/models"
	"servicehub/services/catalog"
	"servicehub/services/premium"
	"servicehub/services/session"
	"servicehub/services/storage"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	clock    *clockwork.FakeClock
	sessions *session.Manager
	premium  *premium.PremiumService
	store    *storage.MemoryStorageService
	chat     *ChatService
	state    models.SessionState
}

func newFixture(t *testing.T, replier Replier) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClock()
	sessions := session.NewManager(session.NewMemoryStore(), clock)
	premiumSvc := premium.NewPremiumService(sessions)
	store := storage.NewMemoryStorageService()
	catalogSvc := catalog.NewCatalogService(catalogRepo.NewSeededMemoryCatalogRepo())
	chatSvc := NewChatService(catalogSvc, sessions, premiumSvc, store, replier, clock, time.Second)
	t.Cleanup(chatSvc.Shutdown)

	state, err := sessions.Create(context.Background(), "user-1")
	require.NoError(t, err)
	return &fixture{clock: clock, sessions: sessions, premium: premiumSvc, store: store, chat: chatSvc, state: state}
}

func messageCount(f *fixture) func() int {
	return func() int {
		snap, err := f.chat.Current(f.state.ID)
		if err != nil {
			return -1
		}
		return len(snap.Messages)
	}
}

func TestOpenSeedsGreeting(t *testing.T) {
	f := newFixture(t, nil)
	snap, err := f.chat.Open(context.Background(), f.state.ID, "3")
	require.NoError(t, err)

	require.Len(t, snap.Messages, 1)
	greeting := snap.Messages[0]
	assert.Equal(t, "Hi! I'm Licensed. How can I help you today?", greeting.Content)
	assert.Equal(t, "user3", greeting.SenderID)
	assert.Equal(t, models.CurrentUserID, greeting.ReceiverID)
	assert.Equal(t, models.MessageTypeText, greeting.Type)

	st, err := f.sessions.Get(context.Background(), f.state.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", st.SelectedProviderID)
}

func TestOpenUnknownProvider(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.chat.Open(context.Background(), f.state.ID, "404")
	assert.True(t, errors.Is(err, catalog.ErrProviderNotFound))
}

func TestSendHelloGetsExactlyOneDelayedReply(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)

	msg, err := f.chat.Send(ctx, f.state.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.True(t, msg.FromCurrentUser())

	snap, err := f.chat.Current(f.state.ID)
	require.NoError(t, err)
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "hello", snap.Messages[1].Content)

	f.clock.Advance(999 * time.Millisecond)
	assert.Never(t, func() bool { return messageCount(f)() != 2 }, 50*time.Millisecond, 5*time.Millisecond)

	f.clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return messageCount(f)() == 3 }, time.Second, 5*time.Millisecond)

	f.clock.Advance(10 * time.Second)
	assert.Never(t, func() bool { return messageCount(f)() != 3 }, 50*time.Millisecond, 5*time.Millisecond)

	snap, err = f.chat.Current(f.state.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", snap.Messages[1].Content)
	reply := snap.Messages[2]
	assert.Equal(t, CannedReply, reply.Content)
	assert.Equal(t, "user1", reply.SenderID)
	assert.False(t, reply.FromCurrentUser())
}

func TestSendRejectsBlankMessages(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)

	_, err = f.chat.Send(ctx, f.state.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, 1, messageCount(f)())
}

func TestSendWithoutPanel(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.chat.Send(context.Background(), f.state.ID, "hello")
	assert.ErrorIs(t, err, ErrPanelClosed)
}

func TestCloseCancelsPendingReply(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "2")
	require.NoError(t, err)
	_, err = f.chat.Send(ctx, f.state.ID, "are you free tomorrow?")
	require.NoError(t, err)

	f.chat.mu.Lock()
	panel := f.chat.panels[f.state.ID]
	f.chat.mu.Unlock()
	assert.Equal(t, 1, panel.PendingReplies())

	require.NoError(t, f.chat.Close(ctx, f.state.ID))
	assert.Equal(t, 0, panel.PendingReplies())

	f.clock.Advance(2 * time.Second)
	_, err = f.chat.Current(f.state.ID)
	assert.ErrorIs(t, err, ErrPanelClosed)
	assert.Empty(t, panel.Snapshot().Messages)

	st, err := f.sessions.Get(ctx, f.state.ID)
	require.NoError(t, err)
	assert.Empty(t, st.SelectedProviderID)
}

func TestOpeningAnotherProviderReplacesPanel(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)
	_, err = f.chat.Send(ctx, f.state.ID, "hello")
	require.NoError(t, err)

	snap, err := f.chat.Open(ctx, f.state.ID, "2")
	require.NoError(t, err)
	assert.Equal(t, "2", snap.Provider.ID)

	f.clock.Advance(time.Second)
	assert.Never(t, func() bool { return messageCount(f)() != 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestAttachmentWhileLockedOpensGate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)

	res, err := f.chat.Attach(ctx, f.state.ID, "photo.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, res.GateOpened)
	assert.Nil(t, res.Message)
	assert.Equal(t, 1, messageCount(f)())

	st, err := f.sessions.Get(ctx, f.state.ID)
	require.NoError(t, err)
	assert.True(t, st.PremiumGateOpen)
}

func TestAttachmentWhileUnlockedUploads(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.premium.Upgrade(ctx, f.state.ID)
	require.NoError(t, err)
	_, err = f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)

	res, err := f.chat.Attach(ctx, f.state.ID, "photo.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.False(t, res.GateOpened)
	require.NotNil(t, res.Message)
	assert.Equal(t, models.MessageTypeImage, res.Message.Type)

	data, ok := f.store.Object(strings.TrimPrefix(res.Message.AttachmentURL, "memory://"))
	require.True(t, ok)
	assert.Equal(t, "img", string(data))

	st, err := f.sessions.Get(ctx, f.state.ID)
	require.NoError(t, err)
	assert.False(t, st.PremiumGateOpen)
}

func TestVoiceToggle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)

	res, err := f.chat.ToggleVoice(ctx, f.state.ID)
	require.NoError(t, err)
	assert.True(t, res.GateOpened)
	assert.False(t, res.Recording)

	_, err = f.premium.Upgrade(ctx, f.state.ID)
	require.NoError(t, err)

	res, err = f.chat.ToggleVoice(ctx, f.state.ID)
	require.NoError(t, err)
	assert.False(t, res.GateOpened)
	assert.True(t, res.Recording)
	assert.Nil(t, res.Message)

	res, err = f.chat.ToggleVoice(ctx, f.state.ID)
	require.NoError(t, err)
	assert.False(t, res.Recording)
	require.NotNil(t, res.Message)
	assert.Equal(t, models.MessageTypeVoice, res.Message.Type)
}

type failingReplier struct{}

func (failingReplier) Reply(context.Context, models.ServiceProvider, string) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestReplierFailureFallsBackToCannedReply(t *testing.T) {
	f := newFixture(t, failingReplier{})
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)
	_, err = f.chat.Send(ctx, f.state.ID, "hello")
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	require.Eventually(t, func() bool { return messageCount(f)() == 3 }, time.Second, 5*time.Millisecond)
	snap, err := f.chat.Current(f.state.ID)
	require.NoError(t, err)
	assert.Equal(t, CannedReply, snap.Messages[2].Content)
}

// slowFirstReplier holds the reply to "first" until release is closed.
type slowFirstReplier struct {
	release chan struct{}
	called  chan string
}

func (r *slowFirstReplier) Reply(ctx context.Context, provider models.ServiceProvider, message string) (string, error) {
	r.called <- message
	if message == "first" {
		select {
		case <-r.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "re: " + message, nil
}

func TestRepliesKeepSendOrder(t *testing.T) {
	replier := &slowFirstReplier{release: make(chan struct{}), called: make(chan string, 2)}
	f := newFixture(t, replier)
	ctx := context.Background()
	_, err := f.chat.Open(ctx, f.state.ID, "1")
	require.NoError(t, err)
	_, err = f.chat.Send(ctx, f.state.ID, "first")
	require.NoError(t, err)
	_, err = f.chat.Send(ctx, f.state.ID, "second")
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case <-replier.called:
		case <-time.After(time.Second):
			t.Fatal("reply generation did not start")
		}
	}

	// "second" is generated but waits behind "first".
	assert.Never(t, func() bool { return messageCount(f)() != 3 }, 50*time.Millisecond, 5*time.Millisecond)

	close(replier.release)
	require.Eventually(t, func() bool { return messageCount(f)() == 5 }, time.Second, 5*time.Millisecond)

	snap, err := f.chat.Current(f.state.ID)
	require.NoError(t, err)
	var contents []string
	for _, m := range snap.Messages[1:] {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"first", "second", "re: first", "re: second"}, contents)

	p, err := f.chat.panel(f.state.ID)
	require.NoError(t, err)
	assert.Zero(t, p.PendingReplies())
}

func TestGreetingUsesFirstWordOfTitle(t *testing.T) {
	assert.Equal(t, "Hi! I'm Expert. How can I help you today?", Greeting(models.ServiceProvider{Title: "Expert House Cleaner"}))
	assert.Equal(t, "Hi! I'm . How can I help you today?", Greeting(models.ServiceProvider{}))
}
