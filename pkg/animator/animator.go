package animator

import (
	"math"
	"sync"

	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/geo"
)

// Frame is one animation step as seen by subscribers.
type Frame struct {
	Angle      float64 `json:"angle"`
	Target     float64 `json:"target"`
	Converging bool    `json:"converging"`
}

/*
Animator eases a displayed heading toward a target bearing, one frame at a
time, always along the shortest rotation path across the 0/360 wrap.

the animator is a two-state machine: Idle (no scheduled tick, displayed angle
equals the last applied target) and Converging (exactly one tick scheduled for
the next frame). each tick closes a constant fraction of the remaining signed
delta (exponential approach); once the remainder falls under the snap
threshold the angle snaps to the target exactly and scheduling stops.

the displayed angle is mutated only by the animator's own tick. retargeting
while converging replaces the target, never stacks a second tick.
*/
type Animator struct {
	mu        sync.Mutex
	scheduler FrameScheduler

	current float64
	target  float64
	running bool
	closed  bool

	// gen invalidates callbacks from a previous scheduling epoch. a tick
	// that fires after Close or Reset sees a stale gen and does nothing,
	// so a late frame can never write into reinitialized state.
	gen    uint64
	cancel CancelFunc

	snapThreshold float64
	easeFactor    float64
	onFrame       func(Frame)
}

type Option func(*Animator)

// WithSnapThreshold overrides the convergence threshold in degrees.
func WithSnapThreshold(degree float64) Option {
	return func(a *Animator) {
		a.snapThreshold = degree
	}
}

// WithEaseFactor overrides the fraction of the remaining delta closed per frame.
func WithEaseFactor(factor float64) Option {
	return func(a *Animator) {
		a.easeFactor = factor
	}
}

// WithSeedAngle sets the initial displayed angle (default 0).
func WithSeedAngle(degree float64) Option {
	return func(a *Animator) {
		a.current = geo.NormalizeBearing(degree)
		a.target = a.current
	}
}

// WithFrameCallback registers fn to be invoked after every tick, outside the
// animator's lock.
func WithFrameCallback(fn func(Frame)) Option {
	return func(a *Animator) {
		a.onFrame = fn
	}
}

func New(scheduler FrameScheduler, opts ...Option) *Animator {
	a := &Animator{
		scheduler:     scheduler,
		snapThreshold: pkg.DEFAULT_SNAP_THRESHOLD_DEGREE,
		easeFactor:    pkg.DEFAULT_EASE_FACTOR,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetTarget records a new target bearing. if the animator is idle and the
// target is further than the snap threshold away, a tick is scheduled. if a
// convergence is already in flight only the target is replaced and the next
// tick redirects toward it.
func (a *Animator) SetTarget(bearing float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	target := geo.NormalizeBearing(bearing)
	a.target = target
	if a.running {
		return
	}
	if math.Abs(geo.ShortestAngularDelta(a.current, target)) < a.snapThreshold {
		a.current = target
		return
	}
	a.running = true
	a.scheduleLocked()
}

func (a *Animator) scheduleLocked() {
	gen := a.gen
	a.cancel = a.scheduler.Schedule(func() {
		a.tick(gen)
	})
}

func (a *Animator) tick(gen uint64) {
	a.mu.Lock()
	if a.closed || gen != a.gen || !a.running {
		a.mu.Unlock()
		return
	}

	delta := geo.ShortestAngularDelta(a.current, a.target)
	if math.Abs(delta) < a.snapThreshold {
		a.current = a.target
		a.running = false
		a.cancel = nil
	} else {
		a.current = math.Mod(a.current+delta*a.easeFactor+360.0, 360.0)
		a.scheduleLocked()
	}

	frame := Frame{Angle: a.current, Target: a.target, Converging: a.running}
	onFrame := a.onFrame
	a.mu.Unlock()

	if onFrame != nil {
		onFrame(frame)
	}
}

// Angle returns the currently displayed angle in [0,360).
func (a *Animator) Angle() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Target returns the bearing the animator is converging toward.
func (a *Animator) Target() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.target
}

// Converging reports whether a tick is scheduled.
func (a *Animator) Converging() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Snapshot returns the current frame without waiting for a tick.
func (a *Animator) Snapshot() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Frame{Angle: a.current, Target: a.target, Converging: a.running}
}

// Reset cancels any pending tick and reseeds the displayed angle, for when
// the position source is swapped out from under the animator.
func (a *Animator) Reset(seed float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.cancelLocked()
	a.current = geo.NormalizeBearing(seed)
	a.target = a.current
}

// Close cancels any pending tick and rejects all further targets. safe to
// call more than once.
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.cancelLocked()
}

func (a *Animator) cancelLocked() {
	a.gen++
	a.running = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
