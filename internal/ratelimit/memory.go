package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count int
	start time.Time
}

// MemoryLimiter is a fixed-window counter held in process memory. It is
// the default store for single-instance deployments and for tests, which
// inject a deterministic clock.
type MemoryLimiter struct {
	policy Policy
	now    func() time.Time

	mu        sync.Mutex
	entries   map[string]*windowEntry
	lastSweep time.Time
}

// MemoryOption configures a MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithClock substitutes the time source, for deterministic tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryLimiter) { m.now = now }
}

// NewMemoryLimiter creates an in-memory limiter for the given policy.
func NewMemoryLimiter(policy Policy, opts ...MemoryOption) *MemoryLimiter {
	m := &MemoryLimiter{
		policy:  policy,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastSweep = m.now()
	return m
}

// Policy returns the enforced policy.
func (m *MemoryLimiter) Policy() Policy { return m.policy }

// Allow counts the request against the key's current window. The error
// return exists only to satisfy Limiter; memory lookups cannot fail.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.maybeSweep(now)

	ent, ok := m.entries[key]
	if !ok || !now.Before(ent.start.Add(m.policy.Window)) {
		ent = &windowEntry{start: now}
		m.entries[key] = ent
	}

	if ent.count >= m.policy.Max {
		return Decision{
			Allowed:    false,
			RetryAfter: ent.start.Add(m.policy.Window).Sub(now),
		}, nil
	}

	ent.count++
	return Decision{Allowed: true, Remaining: m.policy.Max - ent.count}, nil
}

// maybeSweep drops expired windows once per window length so idle keys
// do not accumulate. Callers hold the mutex.
func (m *MemoryLimiter) maybeSweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.policy.Window {
		return
	}
	for key, ent := range m.entries {
		if !now.Before(ent.start.Add(m.policy.Window)) {
			delete(m.entries, key)
		}
	}
	m.lastSweep = now
}
