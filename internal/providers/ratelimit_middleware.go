package providers

import (
	"artfolio/internal/structures"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBurst = 10
	// maxTrackedClients caps the pool; the least recently seen client is
	// evicted once it is full and no idle entries are left.
	maxTrackedClients = 4096
	clientIdleTTL     = 3 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterPool struct {
	mu    sync.Mutex
	m     map[string]*clientLimiter
	rps   float64
	burst int
	max   int
	idle  time.Duration
	now   func() time.Time
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	return &limiterPool{
		m:     make(map[string]*clientLimiter),
		rps:   rps,
		burst: burst,
		max:   maxTrackedClients,
		idle:  clientIdleTTL,
		now:   time.Now,
	}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if c, ok := p.m[key]; ok {
		c.lastSeen = now
		return c.limiter
	}
	if len(p.m) >= p.max {
		p.evictLocked(now)
	}
	c := &clientLimiter{limiter: rate.NewLimiter(rate.Limit(p.rps), p.burst), lastSeen: now}
	p.m[key] = c
	return c.limiter
}

// evictLocked drops idle clients, or the least recently seen one when
// every client is active.
func (p *limiterPool) evictLocked(now time.Time) {
	oldestKey := ""
	var oldest time.Time
	for key, c := range p.m {
		if now.Sub(c.lastSeen) > p.idle {
			delete(p.m, key)
			continue
		}
		if oldestKey == "" || c.lastSeen.Before(oldest) {
			oldestKey, oldest = key, c.lastSeen
		}
	}
	if len(p.m) >= p.max && oldestKey != "" {
		delete(p.m, oldestKey)
	}
}

func (p *limiterPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

func (p *limiterPool) Allow(key string) bool {
	return p.get(key).Allow()
}

// RateLimitMiddleware limits requests per client address. It returns next
// unchanged when webServer.rateLimit.rps is not positive.
func RateLimitMiddleware(conf *structures.Config, logger Logger, next http.Handler) http.Handler {
	rl := conf.WebServer.RateLimit
	if rl.RPS <= 0 {
		return next
	}
	burst := rl.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	pool := newLimiterPool(rl.RPS, burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}
		if !pool.Allow(key) {
			logger.Warnf(GetLogTypeByRequestType(r.Method), "Rate limit exceeded for %s on %s", key, r.URL.Path)
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
