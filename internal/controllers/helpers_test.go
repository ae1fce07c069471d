package controllers

import (
	"artfolio/internal/models"
	"artfolio/internal/services"
	"artfolio/internal/storage"
	"artfolio/internal/structures"
	"artfolio/internal/testutil"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	logger        *testutil.MockLogger
	persister     *storage.Persister
	identity      services.IdentityServiceInterface
	graph         services.SocialGraphServiceInterface
	prefs         services.PreferenceServiceInterface
	catalog       services.CatalogServiceInterface
	conversations services.ConversationServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	conf := &structures.Config{Storage: structures.StorageConfig{Driver: "memory", QueueSize: 64}}
	p, closeFn := storage.NewPersister(conf, storage.NewMemoryGateway(), logger, metrics)
	t.Cleanup(closeFn)

	f := &fixture{logger: logger, persister: p}
	f.identity = services.NewIdentityService(p, logger)
	f.graph = services.NewSocialGraphService(p, logger)
	f.prefs = services.NewPreferenceService(p, logger)
	f.catalog = services.NewCatalogService(p, logger)
	f.conversations = services.NewConversationService(p, logger, metrics, f.identity, services.NewCounterpartyResolver(f.identity, f.catalog))

	ctx := context.Background()
	require.NoError(t, f.catalog.Load(ctx))
	require.NoError(t, f.conversations.Load(ctx))
	return f
}

func (f *fixture) bind(t *testing.T, userID models.ID) {
	t.Helper()
	require.NoError(t, f.graph.Bind(context.Background(), userID))
	require.NoError(t, f.prefs.Bind(context.Background(), userID))
}

func (f *fixture) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.persister.Flush(ctx))
}

func call(handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
