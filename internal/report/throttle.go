package report

import (
	"context"
	"sync"
	"time"

	"github.com/msto63/boundary/internal/guard"
)

// Throttle forwards a fault only if no fault with the same boundary and
// message was forwarded within the window. A zero window forwards every
// fault.
type Throttle struct {
	next   guard.Reporter
	window time.Duration
	now    func() time.Time

	mu         sync.Mutex
	last       map[throttleKey]time.Time
	suppressed int
}

type throttleKey struct {
	boundary string
	message  string
}

// NewThrottle wraps next
func NewThrottle(next guard.Reporter, window time.Duration) *Throttle {
	return &Throttle{
		next:   next,
		window: window,
		now:    time.Now,
		last:   make(map[throttleKey]time.Time),
	}
}

// Report forwards f unless an identical fault was forwarded recently
func (t *Throttle) Report(ctx context.Context, f *guard.Fault) error {
	if t.window <= 0 {
		return t.next.Report(ctx, f)
	}

	key := throttleKey{boundary: f.Boundary, message: f.Message()}
	now := t.now()

	t.mu.Lock()
	if at, ok := t.last[key]; ok && now.Sub(at) < t.window {
		t.suppressed++
		t.mu.Unlock()
		return nil
	}
	t.last[key] = now
	t.prune(now)
	t.mu.Unlock()

	return t.next.Report(ctx, f)
}

// Suppressed returns how many faults were not forwarded
func (t *Throttle) Suppressed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suppressed
}

// prune drops expired keys. Caller holds mu.
func (t *Throttle) prune(now time.Time) {
	for k, at := range t.last {
		if now.Sub(at) >= t.window {
			delete(t.last, k)
		}
	}
}
