package usecases

import (
	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/tracker"
)

type HeadingTracker interface {
	Update(pos geo.Coordinate)
	Heading() tracker.Heading
	Reset()
}
