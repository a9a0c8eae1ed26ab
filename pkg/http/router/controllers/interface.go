package controllers

import (
	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/compass"
	"github.com/lintang-b-s/compassx/pkg/tracker"
)

type CompassService interface {
	UpdatePosition(lat, lon float64) tracker.Heading
	CurrentHeading() tracker.Heading
	Bearing(fromLat, fromLon, toLat, toLon float64) (float64, compass.Direction)
	ResetTrack()
	AddFrameListener(fn func(animator.Frame))
}
