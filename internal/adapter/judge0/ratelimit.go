package judge0

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between outbound judge requests.
// One instance is owned by one Client and shared by all of its operations;
// concurrent callers are serialized only at the dispatch moment.
type RateLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	last        time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter creates a limiter with the given minimum inter-request
// interval.
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		minInterval: minInterval,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Wait blocks until the caller may dispatch. Each caller is handed its own
// dispatch slot under the lock, so two calls are never released less than
// minInterval apart.
func (l *RateLimiter) Wait() {
	l.mu.Lock()
	now := l.now()
	next := l.last.Add(l.minInterval)
	if next.Before(now) {
		next = now
	}
	l.last = next
	l.mu.Unlock()

	if d := next.Sub(now); d > 0 {
		l.sleep(d)
	}
}
