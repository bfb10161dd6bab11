package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// A bucket idle this long has refilled completely, so dropping it is the
// same as keeping it.
const limiterIdleTTL = time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter hands out one token bucket per client address. Idle buckets
// are swept at most once per limiterIdleTTL, during allow.
type loginLimiter struct {
	mu        sync.Mutex
	perMin    int
	buckets   map[string]*clientBucket
	lastSweep time.Time
	now       func() time.Time
}

func newLoginLimiter(perMinute int) *loginLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &loginLimiter{
		perMin:    perMinute,
		buckets:   make(map[string]*clientBucket),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *loginLimiter) allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// sweep must be called with mu held.
func (l *loginLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= limiterIdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
