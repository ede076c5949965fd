package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 10.0, Burst: 5})

	for i := 0; i < 5; i++ {
		if !rl.Allow() {
			t.Errorf("item %d should be allowed", i)
		}
	}
	if rl.Allow() {
		t.Error("item beyond burst should be rejected")
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 100.0, Burst: 1})

	if !rl.Allow() {
		t.Error("first item should be allowed")
	}
	if rl.Allow() {
		t.Error("second item should be rejected")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.Allow() {
		t.Error("item after refill should be allowed")
	}
}

func TestRateLimiter_WaitPaces(t *testing.T) {
	var limited int
	rl := NewRateLimiter(RateLimiterConfig{
		Name:    "test",
		Rate:    100.0,
		Burst:   1,
		OnLimit: func(string, time.Duration) { limited++ },
	})

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 15*time.Millisecond {
		t.Errorf("expected at least ~20ms for 3 items at 100/s with burst 1, got %v", elapsed)
	}
	if limited != 2 {
		t.Errorf("expected 2 limited waits, got %d", limited)
	}
}

func TestRateLimiter_WaitCanceled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 1.0, Burst: 1})
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	if rl.Rate() != 10.0 {
		t.Errorf("expected default rate 10, got %v", rl.Rate())
	}
	if rl.Tokens() != 10 {
		t.Errorf("expected full bucket of 10, got %v", rl.Tokens())
	}
}
