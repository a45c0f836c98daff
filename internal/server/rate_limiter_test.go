package server

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	limiter := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("request over limit should be rejected")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := newRateLimiter(1, time.Minute)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("second key should be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("first key should be exhausted")
	}
}

func TestRateLimiterRejectsEmptyKey(t *testing.T) {
	limiter := newRateLimiter(10, time.Minute)
	if limiter.Allow("") {
		t.Fatal("empty key must be rejected")
	}
}

func TestRateLimiterDisabledWhenLimitZero(t *testing.T) {
	limiter := newRateLimiter(0, time.Minute)
	if limiter != nil {
		t.Fatal("expected nil limiter for zero limit")
	}
	// Nil receiver means unlimited.
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("nil limiter must allow everything")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := newRateLimiter(1, time.Millisecond)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("second request should be rejected")
	}

	time.Sleep(5 * time.Millisecond)
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("request after window reset should be allowed")
	}
}
