package routes

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalogRepo "servicehub/database/repository/catalog"
	"servicehub/handlers"
	"servicehub/services/ads"
	"servicehub/services/auth"
	"servicehub/services/catalog"
	"servicehub/services/chat"
	"servicehub/services/premium"
	"servicehub/services/session"
	"servicehub/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router *gin.Engine
	clock  *clockwork.FakeClock
	token  string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	repo := catalogRepo.NewSeededMemoryCatalogRepo()
	clock := clockwork.NewFakeClock()
	sessions := session.NewManager(session.NewMemoryStore(), clock)
	catalogSvc := catalog.NewCatalogService(repo)
	premiumSvc := premium.NewPremiumService(sessions)
	chatSvc := chat.NewChatService(catalogSvc, sessions, premiumSvc, storage.NewMemoryStorageService(), nil, clock, time.Second)
	adSvc := ads.NewAdService(sessions, ads.NewTrigger(0, ads.DefaultOfferDelay, rand.New(rand.NewSource(1))), clock, ads.Options{})
	t.Cleanup(chatSvc.Shutdown)
	t.Cleanup(adSvc.Shutdown)

	svcs := handlers.Services{
		Auth:     auth.NewDemoProvider(clock),
		Catalog:  catalogSvc,
		Sessions: sessions,
		Premium:  premiumSvc,
		Chat:     chatSvc,
		Ads:      adSvc,
		TokenTTL: time.Hour,
	}
	svcs.WireLifecycle()

	r := gin.New()
	RegisterRoutes(r, handlers.NewHandlerBundle(svcs), 0)
	return &testApp{router: r, clock: clock}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.send(t, req)
}

func (a *testApp) send(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	w, body := a.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "asha@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	a.token = body["token"].(string)
	require.NotEmpty(t, a.token)
}

func (a *testApp) attach(t *testing.T) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "leak.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/chats/current/attachments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.send(t, req)
}

func providerList(t *testing.T, body map[string]interface{}) []map[string]interface{} {
	t.Helper()
	raw, ok := body["providers"].([]interface{})
	require.True(t, ok, "providers missing: %v", body)
	out := make([]map[string]interface{}, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.(map[string]interface{}))
	}
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w, body := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/home", "/api/providers", "/api/premium", "/api/chats/current", "/api/ads/banner"} {
		w, _ := app.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAuthState(t *testing.T) {
	app := newTestApp(t)
	_, body := app.do(t, http.MethodGet, "/api/auth/state", nil)
	assert.Equal(t, false, body["authenticated"])
	assert.Equal(t, "Welcome to ServiceHub", body["title"])

	app.login(t)
	_, body = app.do(t, http.MethodGet, "/api/auth/state", nil)
	assert.Equal(t, true, body["authenticated"])

	w, _ := app.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = app.do(t, http.MethodGet, "/api/home", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadEmail(t *testing.T) {
	app := newTestApp(t)
	w, _ := app.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCardsMaskedUntilUpgrade(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	_, body := app.do(t, http.MethodGet, "/api/providers", nil)
	cards := providerList(t, body)
	require.Len(t, cards, 3)
	for _, card := range cards {
		assert.Equal(t, true, card["locked"])
		assert.NotContains(t, card, "rating")
		assert.NotContains(t, card, "experience")
		assert.Equal(t, "Premium feature", card["ratingLabel"])
	}

	w, body := app.do(t, http.MethodPost, "/api/premium/upgrade", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, premium.UpgradeConfirmation, body["message"])
	assert.Equal(t, true, body["premium"])

	_, body = app.do(t, http.MethodGet, "/api/providers/1", nil)
	assert.Equal(t, false, body["locked"])
	assert.Equal(t, 4.8, body["rating"])
	assert.Equal(t, float64(8), body["experience"])
	assert.Equal(t, "4.8 (127 reviews)", body["ratingLabel"])

	// Upgrading again stays unlocked.
	_, body = app.do(t, http.MethodPost, "/api/premium/upgrade", nil)
	assert.Equal(t, "unlocked", body["state"])

	_, body = app.do(t, http.MethodGet, "/api/ads/banner", nil)
	assert.Equal(t, false, body["visible"])
}

func TestBrowseFiltersAreExclusive(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	_, body := app.do(t, http.MethodGet, "/api/home", nil)
	assert.Equal(t, "Featured Providers", body["heading"])
	assert.Equal(t, true, body["showCategories"])

	_, body = app.do(t, http.MethodPost, "/api/browse/search", map[string]string{"query": "plumb"})
	cards := providerList(t, body)
	require.Len(t, cards, 1)
	assert.Equal(t, "Licensed Plumber", cards[0]["title"])

	_, body = app.do(t, http.MethodPost, "/api/browse/category", map[string]string{"categoryId": "security"})
	cards = providerList(t, body)
	require.Len(t, cards, 1)
	assert.Equal(t, "Professional Security Guard", cards[0]["title"])
	filters := body["activeFilters"].([]interface{})
	require.Len(t, filters, 1)
	assert.Equal(t, "category", filters[0].(map[string]interface{})["kind"])

	_, body = app.do(t, http.MethodDelete, "/api/browse/filters", nil)
	assert.Len(t, providerList(t, body), 3)

	w, _ := app.do(t, http.MethodPost, "/api/browse/category", map[string]string{"categoryId": "gardening"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatFlow(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w, _ := app.do(t, http.MethodGet, "/api/chats/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := app.do(t, http.MethodPost, "/api/chats", map[string]string{"providerId": "3"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Away", body["header"].(map[string]interface{})["status"])
	assert.Len(t, body["messages"], 1)

	w, body = app.do(t, http.MethodPost, "/api/chats/current/messages", map[string]string{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hello", body["content"])

	w, _ = app.do(t, http.MethodPost, "/api/chats/current/messages", map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	app.clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		_, body := app.do(t, http.MethodGet, "/api/chats/current", nil)
		msgs, _ := body["messages"].([]interface{})
		return len(msgs) == 3
	}, time.Second, 5*time.Millisecond)

	_, body = app.do(t, http.MethodGet, "/api/chats/current", nil)
	msgs := body["messages"].([]interface{})
	assert.Equal(t, "hello", msgs[1].(map[string]interface{})["content"])
	assert.Equal(t, chat.CannedReply, msgs[2].(map[string]interface{})["content"])

	w, _ = app.do(t, http.MethodDelete, "/api/chats/current", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = app.do(t, http.MethodGet, "/api/chats/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttachmentGate(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	_, _ = app.do(t, http.MethodPost, "/api/chats", map[string]string{"providerId": "2"})

	w, body := app.attach(t)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["gateOpened"])
	assert.NotContains(t, body, "message")

	_, body = app.do(t, http.MethodGet, "/api/premium", nil)
	assert.Equal(t, true, body["gate"].(map[string]interface{})["open"])

	_, body = app.do(t, http.MethodGet, "/api/chats/current", nil)
	assert.Len(t, body["messages"], 1)

	_, _ = app.do(t, http.MethodPost, "/api/premium/upgrade", nil)
	_, body = app.do(t, http.MethodGet, "/api/premium", nil)
	assert.Equal(t, false, body["gate"].(map[string]interface{})["open"])

	w, body = app.attach(t)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["gateOpened"])
	msg := body["message"].(map[string]interface{})
	assert.Equal(t, "image", msg["type"])
	assert.Contains(t, msg["attachmentUrl"], "memory://chat-attachments/")

	_, body = app.do(t, http.MethodPost, "/api/chats/current/voice", nil)
	assert.Equal(t, true, body["recording"])
	_, body = app.do(t, http.MethodPost, "/api/chats/current/voice", nil)
	assert.Equal(t, false, body["recording"])
	assert.Equal(t, "voice", body["message"].(map[string]interface{})["type"])
}

func TestVideoAdEndpointsWithoutAd(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	_, body := app.do(t, http.MethodGet, "/api/ads/video", nil)
	assert.Equal(t, false, body["visible"])
	assert.Equal(t, false, body["pending"])

	w, _ := app.do(t, http.MethodPost, "/api/ads/video/skip", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, body = app.do(t, http.MethodDelete, "/api/ads/banner", nil)
	assert.Equal(t, false, body["visible"])
}

func TestSessionEndClosesChat(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	_, _ = app.do(t, http.MethodPost, "/api/chats", map[string]string{"providerId": "1"})
	_, _ = app.do(t, http.MethodPost, "/api/chats/current/messages", map[string]string{"content": "hi"})

	w, _ := app.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// A fresh session starts with no panel open.
	app.token = ""
	app.login(t)
	w, _ = app.do(t, http.MethodGet, "/api/chats/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
