package server

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestAuthFailureLimiterBlocksAfterMaxFailures(t *testing.T) {
	limiter := newAuthFailureLimiter(3, time.Minute, 10*time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	key := "192.0.2.1"

	for i := 0; i < 2; i++ {
		if !limiter.Allow(key, now) {
			t.Fatalf("attempt %d should be allowed", i)
		}
		limiter.RegisterFailure(key, now)
	}
	if !limiter.Allow(key, now) {
		t.Fatal("third attempt should be allowed")
	}
	limiter.RegisterFailure(key, now)

	if limiter.Allow(key, now.Add(time.Minute)) {
		t.Fatal("expected key to be blocked")
	}
	if !limiter.Allow("192.0.2.2", now) {
		t.Fatal("other keys must not be blocked")
	}
	if !limiter.Allow(key, now.Add(11*time.Minute)) {
		t.Fatal("block should expire")
	}
}

func TestAuthFailureLimiterWindowResets(t *testing.T) {
	limiter := newAuthFailureLimiter(2, time.Minute, time.Hour)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	limiter.RegisterFailure("k", now)
	limiter.RegisterFailure("k", now.Add(2*time.Minute))
	if !limiter.Allow("k", now.Add(2*time.Minute)) {
		t.Fatal("failures outside the window must not add up")
	}

	limiter.RegisterFailure("k", now.Add(2*time.Minute+time.Second))
	if limiter.Allow("k", now.Add(3*time.Minute)) {
		t.Fatal("expected block after two failures inside the window")
	}
	limiter.Reset("k")
	if !limiter.Allow("k", now.Add(3*time.Minute)) {
		t.Fatal("reset should clear the block")
	}
}

func TestAuthFailureLimiterNil(t *testing.T) {
	if newAuthFailureLimiter(0, time.Minute, time.Minute) != nil {
		t.Fatal("expected nil limiter for zero failures")
	}
	var limiter *authFailureLimiter
	limiter.RegisterFailure("k", time.Now())
	limiter.Reset("k")
	if !limiter.Allow("k", time.Now()) {
		t.Fatal("nil limiter must allow")
	}
}

func TestIPRateLimiter(t *testing.T) {
	limiter := newIPRateLimiter(rate.Every(time.Minute), 2)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if !limiter.Allow("198.51.100.1", now) {
			t.Fatalf("request %d should fit the burst", i)
		}
	}
	if limiter.Allow("198.51.100.1", now) {
		t.Fatal("expected third request to be limited")
	}
	if !limiter.Allow("198.51.100.2", now) {
		t.Fatal("other clients have their own bucket")
	}
	if !limiter.Allow("198.51.100.1", now.Add(time.Minute)) {
		t.Fatal("bucket should refill")
	}
}

func TestIPRateLimiterDropsStaleClients(t *testing.T) {
	limiter := newIPRateLimiter(rate.Inf, 1)
	limiter.cleanupEveryN = 2
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	limiter.Allow("old", now)
	limiter.Allow("new", now.Add(time.Hour))
	if _, ok := limiter.limiters["old"]; ok {
		t.Fatal("expected stale client to be dropped")
	}
	if _, ok := limiter.limiters["new"]; !ok {
		t.Fatal("expected current client to be kept")
	}
}
