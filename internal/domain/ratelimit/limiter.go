package ratelimit

import (
	"math"
	"sync"
	"time"
)

// fallbackKey pools every caller whose identity could not be determined
// into one shared budget.
const fallbackKey = "unknown"

// Config sizes a fixed window for one limiter instance.
type Config struct {
	Window      time.Duration
	MaxRequests int
}

// Decision is the outcome of a single Check call.
type Decision struct {
	Allowed bool
	// RetryAfter is the number of whole seconds until the caller's window
	// resets. Zero when Allowed.
	RetryAfter int
	// Remaining is the request budget left in the current window.
	Remaining int
}

type record struct {
	count       int
	windowStart time.Time
}

// Limiter counts requests per caller key inside a fixed window. The window
// is not sliding: a full budget becomes available the instant a window
// expires, so bursts across a boundary can reach twice the nominal rate.
type Limiter struct {
	mu      sync.Mutex
	records map[string]*record
	cfg     Config

	now func() time.Time
}

func NewLimiter(cfg Config) *Limiter {
	return &Limiter{
		records: make(map[string]*record),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Check records one request for key and decides whether it may proceed.
func (l *Limiter) Check(key string) Decision {
	if key == "" {
		key = fallbackKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[key]
	if !ok {
		l.records[key] = &record{count: 1, windowStart: now}
		return Decision{Allowed: true, Remaining: l.cfg.MaxRequests - 1}
	}

	elapsed := now.Sub(rec.windowStart)
	if elapsed > l.cfg.Window {
		rec.count = 1
		rec.windowStart = now
		return Decision{Allowed: true, Remaining: l.cfg.MaxRequests - 1}
	}

	rec.count++
	if rec.count > l.cfg.MaxRequests {
		retryAfter := int(math.Ceil((l.cfg.Window - elapsed).Seconds()))
		return Decision{RetryAfter: retryAfter}
	}
	return Decision{Allowed: true, Remaining: l.cfg.MaxRequests - rec.count}
}

// Sweep deletes records whose window has elapsed and returns how many were
// removed. Expiry is re-checked under the lock so a record refreshed
// between scan and delete is never evicted.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, rec := range l.records {
		if now.Sub(rec.windowStart) > l.cfg.Window {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked caller keys.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
