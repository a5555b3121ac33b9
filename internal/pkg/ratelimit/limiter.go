package ratelimit

import (
	"math"
	"sync"
	"time"

	"routine-checkout/internal/pkg/clock"
	"routine-checkout/internal/pkg/config"

	"golang.org/x/time/rate"
)

// Result reports an admission decision for a single request.
// Reset tells a rejected client how long to wait before retrying.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Duration
}

type Limiter interface {
	Limit(clientKey string) Result
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per client key.
// Idle buckets are evicted to bound memory.
type KeyedLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	perSec   rate.Limit
	burst    int
	idle     time.Duration
	clock    clock.Clock
	lastScan time.Time
}

func NewKeyedLimiter(cfg config.RateLimitConfig, clk clock.Clock) *KeyedLimiter {
	return &KeyedLimiter{
		clients: make(map[string]*clientLimiter),
		perSec:  rate.Limit(cfg.RequestsPerMinute / 60.0),
		burst:   cfg.Burst,
		idle:    cfg.IdleEviction,
		clock:   clk,
	}
}

func (l *KeyedLimiter) Limit(clientKey string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.evictIdle(now)

	cl, ok := l.clients[clientKey]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.perSec, l.burst)}
		l.clients[clientKey] = cl
	}
	cl.lastSeen = now

	if cl.limiter.Allow() {
		return Result{
			Allowed:   true,
			Remaining: int(math.Floor(cl.limiter.Tokens())),
		}
	}

	reservation := cl.limiter.Reserve()
	wait := reservation.Delay()
	reservation.Cancel()

	return Result{
		Allowed: false,
		Reset:   wait,
	}
}

func (l *KeyedLimiter) evictIdle(now time.Time) {
	if l.idle <= 0 || now.Sub(l.lastScan) < l.idle {
		return
	}
	l.lastScan = now
	for key, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.idle {
			delete(l.clients, key)
		}
	}
}
