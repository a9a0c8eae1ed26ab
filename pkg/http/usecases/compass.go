package usecases

import (
	"sync"

	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/compass"
	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/tracker"
	"go.uber.org/zap"
)

// CompassService bridges the HTTP/websocket surface to the heading pipeline.
type CompassService struct {
	log     *zap.Logger
	tracker HeadingTracker

	mu        sync.Mutex
	listeners []func(animator.Frame)
}

func NewCompassService(log *zap.Logger, trk HeadingTracker) *CompassService {
	return &CompassService{
		log:     log,
		tracker: trk,
	}
}

// UpdatePosition feeds one fix into the tracker and returns the heading
// state after retargeting.
func (cs *CompassService) UpdatePosition(lat, lon float64) tracker.Heading {
	cs.tracker.Update(geo.NewCoordinate(lat, lon))
	return cs.tracker.Heading()
}

func (cs *CompassService) CurrentHeading() tracker.Heading {
	return cs.tracker.Heading()
}

// Bearing runs the pure calculator on an explicit point pair, bypassing the
// animator entirely.
func (cs *CompassService) Bearing(fromLat, fromLon, toLat, toLon float64) (float64, compass.Direction) {
	from := geo.NewCoordinate(fromLat, fromLon)
	to := geo.NewCoordinate(toLat, toLon)
	return compass.BearingWithDirection(&from, &to)
}

// ResetTrack drops fix history and reseeds the animation, as when the
// position source changes.
func (cs *CompassService) ResetTrack() {
	cs.log.Info("position source reset, heading reseeded")
	cs.tracker.Reset()
}

// AddFrameListener registers fn to receive every animation frame.
func (cs *CompassService) AddFrameListener(fn func(animator.Frame)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// PublishFrame fans one animation frame out to all listeners. wired as the
// animator's frame callback.
func (cs *CompassService) PublishFrame(frame animator.Frame) {
	cs.mu.Lock()
	listeners := make([]func(animator.Frame), len(cs.listeners))
	copy(listeners, cs.listeners)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn(frame)
	}
}
