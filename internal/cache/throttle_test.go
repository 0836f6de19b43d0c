package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_CheckLoginThrottle(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	const limit = 3
	for i := 0; i < limit; i++ {
		result, err := cache.CheckLoginThrottle(ctx, "10.0.0.1", limit, time.Minute)
		if err != nil {
			t.Fatalf("throttle check %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	result, err := cache.CheckLoginThrottle(ctx, "10.0.0.1", limit, time.Minute)
	if err != nil {
		t.Fatalf("throttle check over limit: %v", err)
	}
	if result.Allowed {
		t.Error("expected attempt over the limit to be blocked")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %v", result.RetryAfter)
	}

	// A different IP has its own window.
	other, err := cache.CheckLoginThrottle(ctx, "10.0.0.2", limit, time.Minute)
	if err != nil {
		t.Fatalf("throttle check other IP: %v", err)
	}
	if !other.Allowed {
		t.Error("expected other IP to be allowed")
	}
}

func TestCache_CheckLoginThrottle_WindowExpires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	const limit = 1
	if _, err := cache.CheckLoginThrottle(ctx, "10.0.0.1", limit, time.Minute); err != nil {
		t.Fatalf("first check: %v", err)
	}

	result, err := cache.CheckLoginThrottle(ctx, "10.0.0.1", limit, time.Minute)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if result.Allowed {
		t.Fatal("expected second attempt to be blocked")
	}

	mr.FastForward(2 * time.Minute)

	result, err = cache.CheckLoginThrottle(ctx, "10.0.0.1", limit, time.Minute)
	if err != nil {
		t.Fatalf("check after window: %v", err)
	}
	if !result.Allowed {
		t.Error("expected attempt after window expiry to be allowed")
	}
}

func TestCache_ResetLoginThrottle(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	const limit = 1
	if _, err := cache.CheckLoginThrottle(ctx, "10.0.0.1", limit, time.Minute); err != nil {
		t.Fatalf("first check: %v", err)
	}

	if err := cache.ResetLoginThrottle(ctx, "10.0.0.1"); err != nil {
		t.Fatalf("reset throttle: %v", err)
	}

	result, err := cache.CheckLoginThrottle(ctx, "10.0.0.1", limit, time.Minute)
	if err != nil {
		t.Fatalf("check after reset: %v", err)
	}
	if !result.Allowed {
		t.Error("expected attempt after reset to be allowed")
	}
}

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	if hashIP("192.168.1.100") != hashIP("192.168.1.100") {
		t.Error("same IP should produce same hash")
	}
	if hashIP("192.168.1.100") == hashIP("192.168.1.101") {
		t.Error("different IPs should produce different hashes")
	}
	// First 8 bytes of SHA256, hex encoded.
	if len(hashIP("::1")) != 16 {
		t.Errorf("expected 16-char hash, got %d", len(hashIP("::1")))
	}
}
