package storage

import (
	"artfolio/internal/providers"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// local mocks to avoid import cycle with testutil

type storageTestLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *storageTestLogger) Errorf(_ providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}
func (m *storageTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *storageTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *storageTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *storageTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *storageTestLogger) Close()                                                  {}

func (m *storageTestLogger) errorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}

type storageTestMetrics struct {
	mu       sync.Mutex
	writes   int
	failures int
}

func (m *storageTestMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *storageTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *storageTestMetrics) IncCacheHits(_ string)                            {}
func (m *storageTestMetrics) IncCacheMisses(_ string)                          {}
func (m *storageTestMetrics) SetThreadsTotal(_ int)                            {}
func (m *storageTestMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
}
func (m *storageTestMetrics) IncPersistenceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

type identityCompressor struct{}

func (identityCompressor) Compress(v []byte) ([]byte, error)   { return append([]byte(nil), v...), nil }
func (identityCompressor) Decompress(v []byte) ([]byte, error) { return append([]byte(nil), v...), nil }
func (identityCompressor) Close()                              {}

var errBoom = errors.New("boom")

// gatedGateway blocks every Apply until release is closed and can fail
// chosen keys.
type gatedGateway struct {
	*MemoryGateway
	release chan struct{}
	mu      sync.Mutex
	fail    map[string]bool
	order   []string
}

func newGatedGateway() *gatedGateway {
	return &gatedGateway{
		MemoryGateway: NewMemoryGateway(),
		release:       make(chan struct{}),
		fail:          make(map[string]bool),
	}
}

func (g *gatedGateway) setFail(key string, fail bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail[key] = fail
}

func (g *gatedGateway) applied() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.order...)
}

func (g *gatedGateway) Apply(ctx context.Context, muts []Mutation) error {
	<-g.release
	g.mu.Lock()
	failed := false
	for _, m := range muts {
		g.order = append(g.order, m.Key)
		if g.fail[m.Key] {
			failed = true
		}
	}
	g.mu.Unlock()
	if failed {
		return errBoom
	}
	return g.MemoryGateway.Apply(ctx, muts)
}

type countingCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newCountingCache() *countingCache { return &countingCache{data: make(map[string][]byte)} }

func (c *countingCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok
}
func (c *countingCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}
func (c *countingCache) Del(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// pausedReadGateway holds the first Get after its inner read until resume
// is closed, signalling on reading once the value is in hand.
type pausedReadGateway struct {
	*MemoryGateway
	once    sync.Once
	reading chan struct{}
	resume  chan struct{}
}

func newPausedReadGateway() *pausedReadGateway {
	return &pausedReadGateway{
		MemoryGateway: NewMemoryGateway(),
		reading:       make(chan struct{}),
		resume:        make(chan struct{}),
	}
}

func (g *pausedReadGateway) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := g.MemoryGateway.Get(ctx, key)
	g.once.Do(func() {
		close(g.reading)
		<-g.resume
	})
	return v, ok, err
}
