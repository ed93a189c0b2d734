package ratelimit

import (
	"fmt"
	"testing"
	"time"
)

func newTestLimiter(cfg Config) (*Limiter, *time.Time) {
	limiter := NewLimiter(cfg)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	return limiter, &current
}

func TestCheckAllowsUpToMax(t *testing.T) {
	limiter, _ := newTestLimiter(Config{Window: 15 * time.Minute, MaxRequests: 5})

	for i := 1; i <= 5; i++ {
		decision := limiter.Check("ip:10.0.0.1")
		if !decision.Allowed {
			t.Fatalf("request %d: expected allowed", i)
		}
		if want := 5 - i; decision.Remaining != want {
			t.Fatalf("request %d: remaining = %d, want %d", i, decision.Remaining, want)
		}
	}

	decision := limiter.Check("ip:10.0.0.1")
	if decision.Allowed {
		t.Fatal("request 6: expected denied")
	}
	if decision.RetryAfter <= 0 {
		t.Fatalf("denied decision RetryAfter = %d, want positive", decision.RetryAfter)
	}
	if decision.RetryAfter > 15*60 {
		t.Fatalf("denied decision RetryAfter = %d, exceeds window", decision.RetryAfter)
	}
}

func TestCheckResetsAfterWindow(t *testing.T) {
	limiter, current := newTestLimiter(Config{Window: 15 * time.Minute, MaxRequests: 2})

	limiter.Check("key")
	limiter.Check("key")
	if limiter.Check("key").Allowed {
		t.Fatal("expected denied inside window")
	}

	*current = current.Add(15*time.Minute + time.Second)
	decision := limiter.Check("key")
	if !decision.Allowed {
		t.Fatal("expected allowed after window elapsed")
	}
	if decision.Remaining != 1 {
		t.Fatalf("remaining = %d after reset, want 1", decision.Remaining)
	}
}

func TestCheckKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(Config{Window: time.Minute, MaxRequests: 1})

	if !limiter.Check("a").Allowed {
		t.Fatal("first request for key a should pass")
	}
	if limiter.Check("a").Allowed {
		t.Fatal("second request for key a should be denied")
	}
	if !limiter.Check("b").Allowed {
		t.Fatal("key b must not share key a's budget")
	}
}

func TestCheckEmptyKeySharesFallbackBudget(t *testing.T) {
	limiter, _ := newTestLimiter(Config{Window: time.Minute, MaxRequests: 2})

	limiter.Check("")
	limiter.Check("")
	if limiter.Check("").Allowed {
		t.Fatal("anonymous callers should share one budget")
	}
	if limiter.Size() != 1 {
		t.Fatalf("size = %d, want 1 fallback record", limiter.Size())
	}
}

func TestRetryAfterCountsDownWithinWindow(t *testing.T) {
	limiter, current := newTestLimiter(Config{Window: 10 * time.Minute, MaxRequests: 1})

	limiter.Check("key")

	*current = current.Add(4 * time.Minute)
	decision := limiter.Check("key")
	if decision.Allowed {
		t.Fatal("expected denied")
	}
	if want := 6 * 60; decision.RetryAfter != want {
		t.Fatalf("RetryAfter = %d, want %d", decision.RetryAfter, want)
	}
}

func TestSweepRemovesExpiredRecords(t *testing.T) {
	limiter, current := newTestLimiter(Config{Window: time.Minute, MaxRequests: 10})

	for i := 0; i < 4; i++ {
		limiter.Check(fmt.Sprintf("key-%d", i))
	}
	*current = current.Add(30 * time.Second)
	limiter.Check("fresh")

	*current = current.Add(45 * time.Second)
	removed := limiter.Sweep()
	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}
	if limiter.Size() != 1 {
		t.Fatalf("size = %d after sweep, want 1", limiter.Size())
	}
}
