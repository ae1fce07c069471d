package storage

import (
	"artfolio/internal/providers"
	"context"
	"sync"
)

// CachedGateway serves repeated reads from the in-process cache. Writes go
// to the inner gateway and evict the touched keys. A read only fills the
// cache when no write to its key finished while it was reading.
type CachedGateway struct {
	inner KeyValueGateway
	cache providers.CacheProviderInterface

	mu  sync.Mutex
	gen map[string]uint64
}

func NewCachedGateway(inner KeyValueGateway, cache providers.CacheProviderInterface) *CachedGateway {
	return &CachedGateway{inner: inner, cache: cache, gen: make(map[string]uint64)}
}

func (g *CachedGateway) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := g.cache.Get(key); ok {
		return v, true, nil
	}
	g.mu.Lock()
	gen := g.gen[key]
	g.mu.Unlock()

	v, ok, err := g.inner.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}

	g.mu.Lock()
	if g.gen[key] == gen {
		g.cache.Set(key, v)
	}
	g.mu.Unlock()
	return v, true, nil
}

func (g *CachedGateway) Set(ctx context.Context, key string, value []byte) error {
	defer g.evict(key)
	return g.inner.Set(ctx, key, value)
}

func (g *CachedGateway) Remove(ctx context.Context, key string) error {
	defer g.evict(key)
	return g.inner.Remove(ctx, key)
}

func (g *CachedGateway) Apply(ctx context.Context, muts []Mutation) error {
	defer func() {
		keys := make([]string, len(muts))
		for i, m := range muts {
			keys[i] = m.Key
		}
		g.evict(keys...)
	}()
	return g.inner.Apply(ctx, muts)
}

func (g *CachedGateway) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	return g.inner.Scan(ctx, prefix, fn)
}

func (g *CachedGateway) Close() error {
	return g.inner.Close()
}

func (g *CachedGateway) evict(keys ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, key := range keys {
		g.gen[key]++
		g.cache.Del(key)
	}
}
