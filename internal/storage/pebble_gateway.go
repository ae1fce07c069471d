package storage

import (
	"artfolio/internal/providers"
	"bytes"
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
)

type PebbleGateway struct {
	db     *pebble.DB
	logger providers.Logger
}

func NewPebbleGateway(path string, logger providers.Logger) (*PebbleGateway, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Errorf(providers.TypeStore, "Pebble open failed at %s: %s", path, err)
		return nil, err
	}
	return &PebbleGateway{db: db, logger: logger}, nil
}

func (g *PebbleGateway) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	v, closer, err := g.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	return append([]byte(nil), v...), true, nil
}

func (g *PebbleGateway) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.db.Set([]byte(key), value, pebble.Sync)
}

func (g *PebbleGateway) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.db.Delete([]byte(key), pebble.Sync)
}

func (g *PebbleGateway) Apply(ctx context.Context, muts []Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := g.db.NewBatch()
	defer b.Close()
	for _, m := range muts {
		var err error
		if m.Delete {
			err = b.Delete([]byte(m.Key), nil)
		} else {
			err = b.Set([]byte(m.Key), m.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}

func (g *PebbleGateway) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	iter, err := g.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return err
	}
	defer iter.Close()

	pfx := []byte(prefix)
	for iter.SeekGE(pfx); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), pfx) {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		k := string(iter.Key())
		v := append([]byte(nil), iter.Value()...)
		if err := fn(k, v); err != nil {
			if errors.Is(err, ErrStopScan) {
				return nil
			}
			return err
		}
	}
	return iter.Error()
}

func (g *PebbleGateway) Close() error {
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}
