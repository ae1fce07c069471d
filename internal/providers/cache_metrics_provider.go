package providers

import (
	"artfolio/internal/structures"
	"strings"
)

// CacheAreaHTTP labels cached HTTP responses, whose keys carry the
// "http:" prefix.
const CacheAreaHTTP = "http"

// cacheArea maps a cache key to a bounded label: the key family without
// its per-user suffix ("following_u1" -> "following").
func cacheArea(key string) string {
	if strings.HasPrefix(key, CacheAreaHTTP+":") {
		return CacheAreaHTTP
	}
	if family, _, ok := strings.Cut(key, "_"); ok {
		return family
	}
	return key
}

// MetricsCacheProvider counts hits and misses per key family.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	area := cacheArea(key)
	if !ok {
		c.metrics.IncCacheMisses(area)
		return nil, false
	}
	c.metrics.IncCacheHits(area)
	return val, true
}

func (c *MetricsCacheProvider) Set(key string, value []byte) { c.inner.Set(key, value) }

func (c *MetricsCacheProvider) Del(key string) { c.inner.Del(key) }

// NewInstrumentedCacheProvider returns the configured cache, counted when
// it is a real one. A disabled cache is returned as is; every read on it
// would show up as a miss.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{inner: inner, metrics: metrics}
}
