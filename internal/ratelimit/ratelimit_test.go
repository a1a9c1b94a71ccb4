package ratelimit

import (
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("sess-1") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	if !rl.Allow("sess-a") {
		t.Error("first request for sess-a should pass")
	}
	if rl.Allow("sess-a") {
		t.Error("second request for sess-a should be limited")
	}
	if !rl.Allow("sess-b") {
		t.Error("sess-b has its own bucket and should pass")
	}
}

func TestKeyedRateLimiter_EvictsIdleKeys(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	rl.Allow("sess-a")
	rl.Allow("sess-b")
	if got := rl.KeyCount(); got != 2 {
		t.Fatalf("KeyCount() = %d, want 2", got)
	}

	// Run eviction as if well past the idle threshold.
	rl.evictIdle(time.Now().Add(idleThreshold + time.Minute))
	if got := rl.KeyCount(); got != 0 {
		t.Errorf("KeyCount() after eviction = %d, want 0", got)
	}
}
