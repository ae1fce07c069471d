package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

type MemoryGateway struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string][]byte)}
}

func (g *MemoryGateway) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (g *MemoryGateway) Set(ctx context.Context, key string, value []byte) error {
	return g.Apply(ctx, []Mutation{Put(key, value)})
}

func (g *MemoryGateway) Remove(ctx context.Context, key string) error {
	return g.Apply(ctx, []Mutation{Del(key)})
}

func (g *MemoryGateway) Apply(ctx context.Context, muts []Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, m := range muts {
		if m.Delete {
			delete(g.data, m.Key)
			continue
		}
		g.data[m.Key] = append([]byte(nil), m.Value...)
	}
	return nil
}

func (g *MemoryGateway) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	g.mu.RLock()
	keys := make([]string, 0, len(g.data))
	values := make(map[string][]byte, len(g.data))
	for k, v := range g.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
			values[k] = append([]byte(nil), v...)
		}
	}
	g.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(k, values[k]); err != nil {
			if errors.Is(err, ErrStopScan) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (g *MemoryGateway) Close() error {
	return nil
}
