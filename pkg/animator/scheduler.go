package animator

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// CancelFunc cancels a scheduled callback. calling it after the callback has
// fired (or a second time) is a no-op.
type CancelFunc func()

// FrameScheduler is the "run this before the next repaint" capability the
// animator suspends on between ticks. the animator guarantees at most one
// outstanding callback per instance, so implementations never see stacked
// requests from the same animator.
type FrameScheduler interface {
	Schedule(fn func()) CancelFunc
}

// DisplayScheduler paces callbacks at a fixed refresh rate with a token
// bucket, approximating a display's repaint interval.
type DisplayScheduler struct {
	limiter *rate.Limiter
}

func NewDisplayScheduler(framesPerSecond float64) *DisplayScheduler {
	return &DisplayScheduler{
		limiter: rate.NewLimiter(rate.Limit(framesPerSecond), 1),
	}
}

func (ds *DisplayScheduler) Schedule(fn func()) CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := ds.limiter.Wait(ctx); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		fn()
	}()
	return CancelFunc(cancel)
}

// ManualScheduler queues callbacks and fires them only when Step is called,
// so animator convergence can be driven with synthetic frames instead of
// wall-clock repaints.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualEntry
}

type manualEntry struct {
	fn       func()
	canceled bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (ms *ManualScheduler) Schedule(fn func()) CancelFunc {
	entry := &manualEntry{fn: fn}
	ms.mu.Lock()
	ms.pending = append(ms.pending, entry)
	ms.mu.Unlock()
	return func() {
		ms.mu.Lock()
		entry.canceled = true
		ms.mu.Unlock()
	}
}

// Step fires every callback that was pending when it was called and returns
// how many ran. callbacks scheduled while stepping wait for the next Step.
func (ms *ManualScheduler) Step() int {
	ms.mu.Lock()
	batch := ms.pending
	ms.pending = nil
	ms.mu.Unlock()

	fired := 0
	for _, entry := range batch {
		ms.mu.Lock()
		canceled := entry.canceled
		ms.mu.Unlock()
		if canceled {
			continue
		}
		entry.fn()
		fired++
	}
	return fired
}

// Pending reports how many callbacks are queued and not canceled.
func (ms *ManualScheduler) Pending() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	n := 0
	for _, entry := range ms.pending {
		if !entry.canceled {
			n++
		}
	}
	return n
}
