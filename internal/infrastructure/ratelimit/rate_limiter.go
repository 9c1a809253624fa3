package ratelimit

import (
	"context"
	"fmt"
	"time"

	"dukkan/internal/infrastructure/cache"
)

// Policy allows Limit hits per Window.
type Policy struct {
	Limit  int64
	Window time.Duration
}

// RateLimiter counts hits in fixed windows on a shared cache.Store, so limits hold across
// every instance that points at the same Redis.
type RateLimiter struct {
	store    cache.Store
	policies map[string]Policy
	fallback Policy
}

// NewRateLimiter creates a limiter whose unknown actions get fallback.
func NewRateLimiter(store cache.Store, fallback Policy) *RateLimiter {
	return &RateLimiter{
		store:    store,
		policies: make(map[string]Policy),
		fallback: fallback,
	}
}

// WithPolicy registers the policy for action. Call during setup only.
func (rl *RateLimiter) WithPolicy(action string, p Policy) *RateLimiter {
	rl.policies[action] = p
	return rl
}

func (rl *RateLimiter) policy(action string) Policy {
	if p, ok := rl.policies[action]; ok {
		return p
	}
	return rl.fallback
}

// Allow records one hit for subject under action. When the window is used up it returns false
// and how long until it resets at most.
func (rl *RateLimiter) Allow(ctx context.Context, subject, action string) (bool, time.Duration, error) {
	p := rl.policy(action)
	key := fmt.Sprintf("rl:%s:%s", action, subject)

	n, err := rl.store.Incr(ctx, key, p.Window)
	if err != nil {
		return false, 0, err
	}
	if n > p.Limit {
		return false, p.Window, nil
	}
	return true, 0, nil
}

// Reset forgets the hits of subject, e.g. after a successful login.
func (rl *RateLimiter) Reset(ctx context.Context, subject, action string) error {
	return rl.store.Delete(ctx, fmt.Sprintf("rl:%s:%s", action, subject))
}
