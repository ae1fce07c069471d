package storage

import (
	"artfolio/internal/providers"
	"artfolio/internal/structures"
	"context"
	"errors"
	"fmt"
)

// ErrStopScan ends a Scan early without reporting an error.
var ErrStopScan = errors.New("stop scan")

// Mutation is a single write inside an atomic Apply.
type Mutation struct {
	Key    string
	Value  []byte
	Delete bool
}

func Put(key string, value []byte) Mutation {
	return Mutation{Key: key, Value: value}
}

func Del(key string) Mutation {
	return Mutation{Key: key, Delete: true}
}

type Reader interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

// KeyValueGateway is the on-device key-value storage. Values are opaque
// bytes; callers store JSON.
type KeyValueGateway interface {
	Reader
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	// Apply writes all mutations atomically: either every one is
	// visible afterwards or none is.
	Apply(ctx context.Context, muts []Mutation) error
	// Scan visits keys with the given prefix in ascending key order.
	Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error
	Close() error
}

// NewGateway opens the configured driver and puts the read cache in front of it.
func NewGateway(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface) (KeyValueGateway, func(), error) {
	var inner KeyValueGateway
	switch conf.Storage.Driver {
	case "memory":
		inner = NewMemoryGateway()
	case "pebble", "":
		pg, err := NewPebbleGateway(conf.Storage.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		inner = pg
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	logger.Infof(providers.TypeApp, "Storage driver %s opened", conf.Storage.Driver)

	gw := NewCachedGateway(inner, cache)
	cleanup := func() {
		if err := gw.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error while closing storage: %s", err)
		}
	}
	return gw, cleanup, nil
}
