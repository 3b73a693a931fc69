package ratelimit

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryLimiterExactBudget(t *testing.T) {
	clock := newFakeClock()
	lim := NewMemoryLimiter(ContactPolicy, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < ContactPolicy.Max; i++ {
		dec, err := lim.Allow(ctx, "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, dec.Allowed, "request %d within budget", i+1)
	}

	dec, err := lim.Allow(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, dec.Allowed, "request over budget is rejected")
	assert.Greater(t, dec.RetryAfter, time.Duration(0))
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	clock := newFakeClock()
	lim := NewMemoryLimiter(CheckoutPolicy, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < CheckoutPolicy.Max; i++ {
		dec, _ := lim.Allow(ctx, "k")
		require.True(t, dec.Allowed)
	}
	dec, _ := lim.Allow(ctx, "k")
	require.False(t, dec.Allowed)

	clock.Advance(CheckoutPolicy.Window)

	dec, err := lim.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, dec.Allowed, "a new request succeeds once the window elapses")
}

func TestMemoryLimiterKeysIndependent(t *testing.T) {
	clock := newFakeClock()
	lim := NewMemoryLimiter(ContactPolicy, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < ContactPolicy.Max; i++ {
		lim.Allow(ctx, "blocked-client")
	}
	dec, _ := lim.Allow(ctx, "blocked-client")
	require.False(t, dec.Allowed)

	dec, _ = lim.Allow(ctx, "other-client")
	assert.True(t, dec.Allowed, "another client keeps its own budget")
}

func TestPoliciesIndependent(t *testing.T) {
	clock := newFakeClock()
	contact := NewMemoryLimiter(ContactPolicy, WithClock(clock.Now))
	general := NewMemoryLimiter(GeneralPolicy, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i <= ContactPolicy.Max; i++ {
		contact.Allow(ctx, "ip")
	}
	dec, _ := contact.Allow(ctx, "ip")
	require.False(t, dec.Allowed)

	dec, _ = general.Allow(ctx, "ip")
	assert.True(t, dec.Allowed, "exhausting contact must not affect general")
}

func TestMemoryLimiterRetryAfter(t *testing.T) {
	clock := newFakeClock()
	lim := NewMemoryLimiter(CheckoutPolicy, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < CheckoutPolicy.Max; i++ {
		lim.Allow(ctx, "k")
	}
	clock.Advance(20 * time.Second)

	dec, _ := lim.Allow(ctx, "k")
	require.False(t, dec.Allowed)
	assert.Equal(t, 40*time.Second, dec.RetryAfter)
}

func newRedisLimiter(t *testing.T, policy Policy) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLimiter(client, policy), mr
}

func TestRedisLimiterExactBudget(t *testing.T) {
	lim, _ := newRedisLimiter(t, CheckoutPolicy)
	ctx := context.Background()

	for i := 0; i < CheckoutPolicy.Max; i++ {
		dec, err := lim.Allow(ctx, "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, dec.Allowed, "request %d within budget", i+1)
	}

	dec, err := lim.Allow(ctx, "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Greater(t, dec.RetryAfter, time.Duration(0))
}

func TestRedisLimiterWindowExpiry(t *testing.T) {
	lim, mr := newRedisLimiter(t, CheckoutPolicy)
	ctx := context.Background()

	for i := 0; i <= CheckoutPolicy.Max; i++ {
		lim.Allow(ctx, "k")
	}
	dec, err := lim.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, dec.Allowed)

	mr.FastForward(CheckoutPolicy.Window)

	dec, err = lim.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, dec.Allowed, "counter expires with the window")
}

func TestRedisLimiterKeyPrefixPerPolicy(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	contact := NewRedisLimiter(client, ContactPolicy)
	checkout := NewRedisLimiter(client, CheckoutPolicy)
	ctx := context.Background()

	for i := 0; i <= ContactPolicy.Max; i++ {
		contact.Allow(ctx, "ip")
	}
	dec, _ := contact.Allow(ctx, "ip")
	require.False(t, dec.Allowed)

	dec, _ = checkout.Allow(ctx, "ip")
	assert.True(t, dec.Allowed, "policies count in separate keys")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.7:54321"
	assert.Equal(t, "192.0.2.7", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(r))
}

func BenchmarkMemoryLimiterAllow(b *testing.B) {
	lim := NewMemoryLimiter(GeneralPolicy)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lim.Allow(ctx, fmt.Sprintf("ip-%d", i%1000))
	}
}
