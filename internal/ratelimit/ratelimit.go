package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Limiter spaces scrape launches out with a jittered delay so the storefront
// never sees a burst of back-to-back browser sessions from one process.
type Limiter struct {
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
	mu         sync.Mutex
}

func New(minDelay, maxDelay time.Duration) *Limiter {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Limiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Wait blocks until enough time has passed since the previous action, or the
// context ends. A zero-delay limiter returns immediately.
func (r *Limiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.minDelay <= 0 && r.maxDelay <= 0 {
		return nil
	}

	elapsed := time.Since(r.lastAction)
	delay := r.calculateDelay()

	if elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	r.lastAction = time.Now()
	return nil
}

func (r *Limiter) calculateDelay() time.Duration {
	if r.minDelay >= r.maxDelay {
		return r.minDelay
	}

	delta := r.maxDelay - r.minDelay
	return r.minDelay + time.Duration(rand.Int63n(int64(delta)))
}
