package tracker

import (
	"sync"

	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/compass"
	"github.com/lintang-b-s/compassx/pkg/geo"
	"go.uber.org/zap"
)

// Heading is the tracker's externally visible state: the animated display
// angle plus the raw bearing/label pair it is converging toward.
type Heading struct {
	Displayed  float64
	Bearing    float64
	Direction  compass.Direction
	Converging bool
}

/*
Tracker turns a stream of position fixes into animated compass headings. each
Update pairs the new fix with the retained previous one, recomputes the
great-circle bearing and its rose label, and retargets the animator. fixes
that moved less than the configured minimum distance are kept but do not
retarget, so GPS jitter while stationary does not swing the needle.
*/
type Tracker struct {
	mu   sync.Mutex
	log  *zap.Logger
	anim *animator.Animator

	last      *geo.Coordinate
	window    *sampleWindow
	minMeters float64

	bearing   float64
	direction compass.Direction
}

type Option func(*Tracker)

// WithSmoothingWindow computes the target bearing from the oldest to the
// newest of the last n fixes instead of the last two, damping zig-zag tracks.
func WithSmoothingWindow(n int) Option {
	return func(t *Tracker) {
		t.window = newSampleWindow(n)
	}
}

// WithMinDistanceMeters sets the minimum movement between fixes before the
// heading is retargeted. default 0 (every distinct fix retargets).
func WithMinDistanceMeters(meters float64) Option {
	return func(t *Tracker) {
		t.minMeters = meters
	}
}

func New(log *zap.Logger, anim *animator.Animator, opts ...Option) *Tracker {
	t := &Tracker{
		log:       log,
		anim:      anim,
		direction: compass.NORTH,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Update ingests a new fix. the first fix only seeds history.
func (t *Tracker) Update(pos geo.Coordinate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.last
	cur := pos
	t.last = &cur

	if t.window != nil {
		from, to, ok := t.window.push(pos)
		if !ok {
			return
		}
		t.retargetLocked(&from, &to)
		return
	}

	t.retargetLocked(prev, &cur)
}

// UpdatePair recomputes the heading from an explicit (previous, current)
// pair. either side may be nil, which is a documented no-op: the displayed
// state keeps whatever it last showed.
func (t *Tracker) UpdatePair(prev, cur *geo.Coordinate) {
	if prev == nil || cur == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	c := *cur
	t.last = &c
	t.retargetLocked(prev, cur)
}

func (t *Tracker) retargetLocked(prev, cur *geo.Coordinate) {
	if prev == nil {
		return
	}
	if prev.Lat == cur.Lat && prev.Lon == cur.Lon {
		return
	}
	if t.minMeters > 0 {
		distM := geo.CalculateHaversineDistance(prev.Lat, prev.Lon, cur.Lat, cur.Lon) * 1000.0
		if distM < t.minMeters {
			return
		}
	}

	bearing, direction := compass.BearingWithDirection(prev, cur)
	t.bearing = bearing
	t.direction = direction
	t.anim.SetTarget(bearing)
	t.log.Debug("heading retargeted",
		zap.Float64("bearing", bearing),
		zap.String("direction", direction.String()))
}

// Heading returns the current animated heading.
func (t *Tracker) Heading() Heading {
	t.mu.Lock()
	defer t.mu.Unlock()
	frame := t.anim.Snapshot()
	return Heading{
		Displayed:  frame.Angle,
		Bearing:    t.bearing,
		Direction:  t.direction,
		Converging: frame.Converging,
	}
}

// Reset drops fix history and reseeds the animator, canceling any pending
// frame. used when the position source is swapped.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = nil
	if t.window != nil {
		t.window.reset()
	}
	t.bearing = 0
	t.direction = compass.NORTH
	t.anim.Reset(0)
}

// Close tears down the animator. no callback survives Close.
func (t *Tracker) Close() {
	t.anim.Close()
}

// sampleWindow keeps a rolling window of fixes and yields the oldest/newest
// pair once at least two fixes are present.
type sampleWindow struct {
	samples []geo.Coordinate
	size    int
}

func newSampleWindow(size int) *sampleWindow {
	if size < 2 {
		size = 2
	}
	return &sampleWindow{size: size}
}

func (w *sampleWindow) push(p geo.Coordinate) (geo.Coordinate, geo.Coordinate, bool) {
	w.samples = append(w.samples, p)
	if len(w.samples) > w.size {
		w.samples = w.samples[1:]
	}
	if len(w.samples) < 2 {
		return geo.Coordinate{}, geo.Coordinate{}, false
	}
	return w.samples[0], w.samples[len(w.samples)-1], true
}

func (w *sampleWindow) reset() {
	w.samples = nil
}
