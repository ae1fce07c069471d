package testutil

import (
	"artfolio/internal/providers"
	"artfolio/internal/storage"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the formatted entries logged at level.
func (m *MockLogger) Messages(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, fmt.Sprintf(e.Format, e.Args...))
		}
	}
	return out
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                  sync.Mutex
	PersistenceCalls    int
	PersistenceFailures int
	Threads             int
	CacheHits           int
	CacheMisses         int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) IncPersistenceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceFailures++
}
func (m *MockMetrics) SetThreadsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Threads = count
}

func (m *MockMetrics) Failures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PersistenceFailures
}

func (m *MockMetrics) ThreadsTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Threads
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

var ErrInjected = errors.New("injected storage failure")

// FlakyGateway wraps a gateway and fails Apply for keys listed in FailKeys
// and Get for keys listed in FailReads. Applies are recorded in order.
type FlakyGateway struct {
	storage.KeyValueGateway

	mu        sync.Mutex
	FailKeys  map[string]bool
	FailReads map[string]bool
	Applied   [][]string
	Delay     time.Duration
}

func NewFlakyGateway() *FlakyGateway {
	return &FlakyGateway{
		KeyValueGateway: storage.NewMemoryGateway(),
		FailKeys:        make(map[string]bool),
		FailReads:       make(map[string]bool),
	}
}

func (g *FlakyGateway) FailRead(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.FailReads[key] = true
}

func (g *FlakyGateway) Get(ctx context.Context, key string) ([]byte, bool, error) {
	g.mu.Lock()
	fail := g.FailReads[key]
	g.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return g.KeyValueGateway.Get(ctx, key)
}

func (g *FlakyGateway) Fail(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.FailKeys[key] = true
}

// Recover stops failing Apply for key.
func (g *FlakyGateway) Recover(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.FailKeys, key)
}

func (g *FlakyGateway) Apply(ctx context.Context, muts []storage.Mutation) error {
	g.mu.Lock()
	delay := g.Delay
	keys := make([]string, 0, len(muts))
	fail := false
	for _, m := range muts {
		keys = append(keys, m.Key)
		if g.FailKeys[m.Key] {
			fail = true
		}
	}
	g.Applied = append(g.Applied, keys)
	g.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		return ErrInjected
	}
	return g.KeyValueGateway.Apply(ctx, muts)
}

func (g *FlakyGateway) AppliedBatches() [][]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([][]string, len(g.Applied))
	copy(out, g.Applied)
	return out
}
