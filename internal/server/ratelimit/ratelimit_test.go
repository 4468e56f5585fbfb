package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock returns a limiter clock that only moves when advanced.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, config *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	config.CleanupInterval = 0
	l := NewLimiter(config)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(true, 30, time.Minute, 5))

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", GeneratePath, "POST")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 30 {
			t.Errorf("Expected limit 30, got %d", info.Limit)
		}
		if info.Remaining != 4-i {
			t.Errorf("Request %d: expected %d remaining, got %d", i+1, 4-i, info.Remaining)
		}
	}

	allowed, info := l.Allow("10.0.0.1", GeneratePath, "POST")
	if allowed {
		t.Fatal("Expected 6th request to be denied")
	}
	if info.Allowed {
		t.Error("Info.Allowed should be false")
	}
	// 30 per minute refills one token every 2 seconds
	if info.RetryAfter != 2*time.Second {
		t.Errorf("Expected retry after 2s, got %v", info.RetryAfter)
	}
	if info.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", info.Remaining)
	}
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, NewConfig(true, 60, time.Minute, 2))

	for i := 0; i < 2; i++ {
		l.Allow("client", GeneratePath, "POST")
	}
	if allowed, _ := l.Allow("client", GeneratePath, "POST"); allowed {
		t.Fatal("Expected request to be denied with empty bucket")
	}

	clock.Advance(time.Second)

	if allowed, _ := l.Allow("client", GeneratePath, "POST"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := l.Allow("client", GeneratePath, "POST"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_ResetTime(t *testing.T) {
	l, clock := newTestLimiter(t, NewConfig(true, 60, time.Minute, 10))

	for i := 0; i < 4; i++ {
		l.Allow("client", GeneratePath, "POST")
	}
	_, info := l.Allow("client", GeneratePath, "POST")

	// five tokens missing at one token per second
	want := clock.Now().Add(5 * time.Second)
	if !info.ResetTime.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, info.ResetTime)
	}
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(true, 30, time.Minute, 1))

	if allowed, _ := l.Allow("a", GeneratePath, "POST"); !allowed {
		t.Fatal("Expected first request from a to be allowed")
	}
	if allowed, _ := l.Allow("a", GeneratePath, "POST"); allowed {
		t.Error("Expected second request from a to be denied")
	}
	if allowed, _ := l.Allow("b", GeneratePath, "POST"); !allowed {
		t.Error("Expected first request from b to be allowed")
	}
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(true, 1, time.Minute, 1))

	for i := 0; i < 50; i++ {
		if allowed, _ := l.Allow("client", "/health", "GET"); !allowed {
			t.Fatalf("Health check %d should never be limited", i+1)
		}
		if allowed, info := l.Allow("client", "/other", "GET"); !allowed || info.Limit != 0 {
			t.Fatalf("Unconfigured endpoint %d should be unlimited", i+1)
		}
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(false, 1, time.Minute, 1))

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("client", GeneratePath, "POST")
		if !allowed {
			t.Fatalf("Request %d should be allowed when disabled", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected no limit reported when disabled, got %d", info.Limit)
		}
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	config := NewConfig(true, 30, time.Minute, 5)
	config.DefaultLimit = 2
	l, _ := newTestLimiter(t, config)

	l.Allow("client", "/other", "GET")
	l.Allow("client", "/other", "GET")
	if allowed, _ := l.Allow("client", "/other", "GET"); allowed {
		t.Error("Expected default limit to apply to unconfigured endpoint")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, NewConfig(true, 100, time.Hour, 100))

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("client", GeneratePath, "POST"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, NewConfig(true, 30, time.Minute, 5))

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), GeneratePath, "POST")
	}

	clock.Advance(30 * time.Minute)
	l.Allow("client-0", GeneratePath, "POST")
	clock.Advance(45 * time.Minute)

	l.cleanupBuckets()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.buckets) != 1 {
		t.Errorf("Expected 1 bucket after cleanup, got %d", len(l.buckets))
	}
	if _, ok := l.buckets["client-0:"+GeneratePath+":POST"]; !ok {
		t.Error("Expected recently used bucket to survive cleanup")
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(NewConfig(true, 30, time.Minute, 5))
	l.Stop()
	l.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	if !l.config.Enabled {
		t.Error("Expected default config to be enabled")
	}
	if allowed, _ := l.Allow("client", GeneratePath, "POST"); !allowed {
		t.Error("Expected first request to be allowed")
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: GeneratePath, Method: "POST", Limit: 30},
		{Path: "/api/", Method: "GET", Limit: 100},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{GeneratePath, "POST", 30, false},
		{"/api/anything", "GET", 100, false},
		{"/health", "GET", 0, false},
		{GeneratePath, "GET", 100, false},
		{"/other", "POST", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected no match, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected a match")
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, got.Limit)
			}
		})
	}
}
