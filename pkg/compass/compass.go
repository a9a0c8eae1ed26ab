package compass

import (
	"math"

	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/geo"
)

// Direction is one of the 16 points of the compass rose, N at 0 proceeding
// clockwise in 22.5 degree sectors.
type Direction uint8

const (
	NORTH Direction = iota
	NORTH_NORTHEAST
	NORTHEAST
	EAST_NORTHEAST
	EAST
	EAST_SOUTHEAST
	SOUTHEAST
	SOUTH_SOUTHEAST
	SOUTH
	SOUTH_SOUTHWEST
	SOUTHWEST
	WEST_SOUTHWEST
	WEST
	WEST_NORTHWEST
	NORTHWEST
	NORTH_NORTHWEST
)

var roseLabels = [pkg.COMPASS_SECTOR_COUNT]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

func (d Direction) String() string {
	return roseLabels[d%pkg.COMPASS_SECTOR_COUNT]
}

/*
DirectionFromBearing maps a bearing in degrees to the nearest rose point.
Sector boundaries (odd multiples of 11.25) round half away from zero, so
11.25 classifies as NNE, 33.75 as NE, and so on. any finite input is wrapped
into [0,360) first, so the function is total.
*/
func DirectionFromBearing(bearing float64) Direction {
	bearing = geo.NormalizeBearing(bearing)
	index := int(math.Round(bearing/pkg.COMPASS_SECTOR_DEGREE)) % pkg.COMPASS_SECTOR_COUNT
	return Direction(index)
}

// ComputeBearing returns the initial great-circle bearing from `from` to `to`
// in [0,360). a nil point on either side or a coordinate-equal pair yields 0
// by policy: there is no bearing when stationary. coordinate validity is the
// caller's responsibility; NaN input propagates as NaN.
func ComputeBearing(from, to *geo.Coordinate) float64 {
	if from == nil || to == nil {
		return 0
	}
	if from.Lat == to.Lat && from.Lon == to.Lon {
		return 0
	}
	return geo.BearingTo(from.Lat, from.Lon, to.Lat, to.Lon)
}

// BearingWithDirection computes bearing and label from the same bearing value
// so the two can never disagree.
func BearingWithDirection(from, to *geo.Coordinate) (float64, Direction) {
	bearing := ComputeBearing(from, to)
	return bearing, DirectionFromBearing(bearing)
}
