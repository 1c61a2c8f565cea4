package middleware

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	// ip-a is exhausted
	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}

	// ip-b should still be allowed
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: 50 * time.Millisecond,
		KeyFn:  KeyByIP,
	})

	rl.Allow("test")
	rl.Allow("test")

	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	// Wait for window to expire
	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("test") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestRateLimiter_TakeRemaining(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	remaining, windowEnd := rl.take("test")
	if remaining != 2 {
		t.Errorf("first take remaining = %d, want 2", remaining)
	}

	rl.take("test")
	remaining, end2 := rl.take("test")
	if remaining != 0 {
		t.Errorf("third take remaining = %d, want 0", remaining)
	}
	if !end2.Equal(windowEnd) {
		t.Errorf("window end changed within window: %v vs %v", end2, windowEnd)
	}

	remaining, _ = rl.take("test")
	if remaining >= 0 {
		t.Errorf("over-limit take remaining = %d, want negative", remaining)
	}
}

func TestRateLimiter_ConcurrentSameKey(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    25,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowed.Load(); got != 25 {
		t.Errorf("allowed %d concurrent requests, want exactly 25", got)
	}
}

func TestRateLimiter_ProgressConfig(t *testing.T) {
	rl := NewProgressRateLimiter()
	for i := 0; i < 30; i++ {
		if !rl.Allow("user:student_abc123") {
			t.Fatalf("progress request %d should be allowed (max 30)", i+1)
		}
	}
	if rl.Allow("user:student_abc123") {
		t.Fatal("31st progress request should be blocked")
	}
}

func TestRateLimiter_BulkCreditConfig(t *testing.T) {
	rl := NewBulkCreditRateLimiter()
	for i := 0; i < 5; i++ {
		if !rl.Allow("user:ms.rivera") {
			t.Fatalf("bulk credit request %d should be allowed (max 5)", i+1)
		}
	}
	if rl.Allow("user:ms.rivera") {
		t.Fatal("6th bulk credit request should be blocked")
	}
}

func TestRateLimiter_ReportConfig(t *testing.T) {
	rl := NewReportRateLimiter()
	for i := 0; i < 10; i++ {
		if !rl.Allow("user:student_abc123") {
			t.Fatalf("report request %d should be allowed (max 10)", i+1)
		}
	}
	if rl.Allow("user:student_abc123") {
		t.Fatal("11th report request should be blocked")
	}
}
