package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, func() {
		client.Close()
		mr.Close()
	}
}

func TestClientReturnsSharedConnection(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(client, Limits{PerSecond: 5, PerMinute: 100})
	if limiter.Client() != client {
		t.Fatal("expected the limiter to expose the connection it was built with")
	}
	if err := limiter.Client().Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping through shared client failed: %v", err)
	}
}

func TestCheckAndIncrementAllows(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(client, Limits{PerSecond: 5, PerMinute: 100})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, _, err := limiter.CheckAndIncrement(ctx, 1)
		if err != nil {
			t.Fatalf("check %d failed: %v", i, err)
		}
		if !allowed {
			t.Fatalf("check %d denied, expected allowed", i)
		}
	}
}

func TestCheckAndIncrementDeniesSecondLimit(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(client, Limits{PerSecond: 3, PerMinute: 100})
	// Pin the clock so all requests land in the same bucket.
	fixed := time.Now()
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	allowed, _, err := limiter.CheckAndIncrement(ctx, 3)
	if err != nil || !allowed {
		t.Fatalf("initial reservation failed: allowed=%v err=%v", allowed, err)
	}

	allowed, waitTime, err := limiter.CheckAndIncrement(ctx, 1)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if allowed {
		t.Error("expected denial over per-second limit")
	}
	if waitTime != time.Second {
		t.Errorf("expected 1s wait, got %v", waitTime)
	}
}

func TestCheckAndIncrementDeniesMinuteLimit(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(client, Limits{PerSecond: 100, PerMinute: 10})
	fixed := time.Now()
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	allowed, _, err := limiter.CheckAndIncrement(ctx, 10)
	if err != nil || !allowed {
		t.Fatalf("initial reservation failed: allowed=%v err=%v", allowed, err)
	}

	allowed, waitTime, err := limiter.CheckAndIncrement(ctx, 1)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if allowed {
		t.Error("expected denial over per-minute limit")
	}
	if waitTime <= 0 || waitTime > time.Minute {
		t.Errorf("unexpected wait time %v", waitTime)
	}
}

func TestDeniedRequestConsumesNoQuota(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(client, Limits{PerSecond: 2, PerMinute: 100})
	fixed := time.Now()
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	if allowed, _, _ := limiter.CheckAndIncrement(ctx, 1); !allowed {
		t.Fatal("first check denied")
	}
	// A batch of 5 cannot fit; it must not consume the remaining slot.
	if allowed, _, _ := limiter.CheckAndIncrement(ctx, 5); allowed {
		t.Fatal("oversized batch allowed")
	}
	if allowed, _, _ := limiter.CheckAndIncrement(ctx, 1); !allowed {
		t.Error("remaining slot was consumed by denied batch")
	}
}

func TestWaitCancelled(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(client, Limits{PerSecond: 1, PerMinute: 1})
	fixed := time.Now()
	limiter.now = func() time.Time { return fixed }

	ctx := context.Background()
	if err := limiter.Wait(ctx, 1); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelled, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
