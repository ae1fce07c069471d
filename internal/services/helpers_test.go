package services

import (
	"artfolio/internal/models"
	"artfolio/internal/storage"
	"artfolio/internal/structures"
	"artfolio/internal/testutil"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	gateway   *testutil.FlakyGateway
	persister *storage.Persister
	logger    *testutil.MockLogger
	metrics   *testutil.MockMetrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		gateway: testutil.NewFlakyGateway(),
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
	}
	conf := &structures.Config{Storage: structures.StorageConfig{Driver: "memory", QueueSize: 64}}
	p, closeFn := storage.NewPersister(conf, env.gateway, env.logger, env.metrics)
	t.Cleanup(closeFn)
	env.persister = p
	return env
}

// flush waits until every scheduled write reached the gateway.
func (e *testEnv) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.persister.Flush(ctx))
}

// stored decodes the durable value of key, bypassing pending writes.
func (e *testEnv) stored(t *testing.T, key string, out any) bool {
	t.Helper()
	e.flush(t)
	ok, err := storage.GetJSON(context.Background(), e.gateway.KeyValueGateway, key, out)
	require.NoError(t, err)
	return ok
}

func (e *testEnv) seed(t *testing.T, key string, v any) {
	t.Helper()
	m, err := storage.PutJSON(key, v)
	require.NoError(t, err)
	require.NoError(t, e.gateway.KeyValueGateway.Apply(context.Background(), []storage.Mutation{m}))
}

func (e *testEnv) identity() *IdentityService {
	return newIdentityService(e.persister, e.logger, bcrypt.MinCost)
}

func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func sequentialIDs(prefix string) func() models.ID {
	n := 0
	return func() models.ID {
		n++
		return models.ID(fmt.Sprintf("%s%d", prefix, n))
	}
}
