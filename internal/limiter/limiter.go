package limiter

import "sync"

// Limiter bounds the number of simultaneously running functions. Waiters are
// admitted strictly in submission order. There is no cancellation: once a
// caller has queued, it runs when a slot frees, even if the work that wanted
// it has lost interest.
type Limiter struct {
	mu      sync.Mutex
	slots   int
	active  int
	waiters []chan struct{}
}

func New(slots int) *Limiter {
	if slots < 1 {
		slots = 1
	}
	return &Limiter{slots: slots}
}

// Do runs fn once a concurrency slot is available.
func (l *Limiter) Do(fn func()) {
	l.acquire()
	defer l.release()
	fn()
}

func (l *Limiter) acquire() {
	l.mu.Lock()
	if l.active < l.slots {
		l.active++
		l.mu.Unlock()
		return
	}

	ready := make(chan struct{})
	l.waiters = append(l.waiters, ready)
	l.mu.Unlock()

	<-ready
}

func (l *Limiter) release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.waiters) > 0 {
		// Hand the slot directly to the oldest waiter; active stays constant.
		ready := l.waiters[0]
		l.waiters = l.waiters[1:]
		close(ready)
		return
	}

	l.active--
}
