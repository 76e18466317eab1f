package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucketLimiter keeps one token bucket per key. Each bucket holds limit
// tokens and refills at limit per window.
type TokenBucketLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewTokenBucketLimiter(limit int, window time.Duration) *TokenBucketLimiter {
	if limit < 1 {
		limit = 1
	}

	return &TokenBucketLimiter{
		limiters: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (l *TokenBucketLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	v, ok := l.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, l.window
	}

	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
		return false, delay
	}

	return true, 0
}

// evict drops buckets idle for more than a window; they would be full again.
func (l *TokenBucketLimiter) evict(now time.Time) {
	for key, v := range l.limiters {
		if now.Sub(v.lastSeen) > l.window {
			delete(l.limiters, key)
		}
	}
}
