package internal

import (
	"artfolio/internal/controllers"
	"artfolio/internal/models"
	"artfolio/internal/services"
	"artfolio/internal/storage"
	"artfolio/internal/structures"
	"artfolio/internal/testutil"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) (*http.ServeMux, routeURLs) {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	conf := &structures.Config{Storage: structures.StorageConfig{Driver: "memory", QueueSize: 64}}
	p, closeFn := storage.NewPersister(conf, storage.NewMemoryGateway(), logger, metrics)
	t.Cleanup(closeFn)

	identity := services.NewIdentityService(p, logger)
	graph := services.NewSocialGraphService(p, logger)
	prefs := services.NewPreferenceService(p, logger)
	catalog := services.NewCatalogService(p, logger)
	conversations := services.NewConversationService(p, logger, metrics, identity, services.NewCounterpartyResolver(identity, catalog))
	require.NoError(t, conversations.Load(context.Background()))
	session := services.NewSessionService(identity, graph, prefs, logger)

	router := InitRoutes(
		controllers.NewSessionController(logger, session),
		controllers.NewConversationController(logger, conversations),
		controllers.NewSocialController(logger, graph),
		controllers.NewPreferenceController(logger, prefs),
		controllers.NewArtworkController(logger, catalog, testutil.NewMockCache()),
	)

	mux := http.NewServeMux()
	urls := routeURLs{}
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
		urls = append(urls, r.Url)
	}
	return mux, urls
}

type routeURLs []string

func do(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	_, urls := newTestMux(t)

	for _, u := range []string{
		"/session/login", "/session/register", "/session/logout", "/session",
		"/threads", "/thread", "/messages", "/share", "/thread/read", "/threads/dedupe", "/threads/reset",
		"/follow", "/unfollow", "/following", "/followers", "/followers/count", "/following/count",
		"/like", "/unlike", "/save", "/unsave", "/liked", "/saved",
		"/artworks", "/artwork",
	} {
		assert.Contains(t, urls, u)
	}
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux, _ := newTestMux(t)

	assert.Equal(t, http.StatusMethodNotAllowed, do(mux, http.MethodPost, "/threads", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(mux, http.MethodGet, "/follow?id=x", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(mux, http.MethodDelete, "/artworks", "").Code)
}

func TestInitRoutes_EndToEnd(t *testing.T) {
	mux, _ := newTestMux(t)

	rr := do(mux, http.MethodPost, "/session/register", `{"username":"ann","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))

	rr = do(mux, http.MethodPost, "/artworks", `{"title":"Dusk","artistId":"77","artistName":"Noor"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var art models.Artwork
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &art))

	require.Equal(t, http.StatusOK, do(mux, http.MethodPost, "/follow?id=77", "").Code)
	rr = do(mux, http.MethodGet, "/followers/count?id=77", "")
	assert.JSONEq(t, `{"id":"77","count":1}`, rr.Body.String())

	require.Equal(t, http.StatusOK, do(mux, http.MethodPost, "/like", toJSON(t, art)).Code)
	rr = do(mux, http.MethodGet, "/liked", "")
	assert.Contains(t, rr.Body.String(), string(art.ID))

	rr = do(mux, http.MethodPost, "/messages?counterparty=77", `{"content":"love your work"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var th models.MessageThread
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &th))
	require.Len(t, th.Messages, 1)
	assert.Equal(t, me.ID, th.Messages[0].SenderID)
	assert.False(t, th.Unread)

	require.Equal(t, http.StatusNoContent, do(mux, http.MethodPost, "/session/logout", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodGet, "/session", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodPost, "/follow?id=77", "").Code)
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
