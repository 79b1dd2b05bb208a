package ratelimiter

import (
	"context"
	"sync"
)

// FakeRateLimiter counts calls per key and ignores the limit interval.
type FakeRateLimiter struct {
	IsAllowed bool
	Counts    map[string]int
	lock      sync.Mutex
}

func NewFakeRateLimiter(isAllowed bool) *FakeRateLimiter {
	return &FakeRateLimiter{IsAllowed: isAllowed, Counts: make(map[string]int)}
}

func (rl *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	rl.lock.Lock()
	defer rl.lock.Unlock()
	rl.Counts[key]++
	if !rl.IsAllowed || rl.Counts[key] > int(limit.Value) {
		return NotAllowed()
	}
	return Allowed()
}
