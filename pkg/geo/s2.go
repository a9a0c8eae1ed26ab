package geo

import (
	"github.com/golang/geo/s2"
)

// InterpolateAlongSegment returns the point at fraction frac (0..1) of the
// great-circle segment from a to b.
func InterpolateAlongSegment(a, b Coordinate, frac float64) Coordinate {
	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	interpolated := s2.Interpolate(frac, pointAS2, pointBS2)
	latLng := s2.LatLngFromPoint(interpolated)
	return NewCoordinate(latLng.Lat.Degrees(), latLng.Lng.Degrees())
}
