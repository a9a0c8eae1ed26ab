package geo

import (
	"math"

	"github.com/lintang-b-s/compassx/pkg/util"
)

/*
BearingTo. compute the initial great-circle bearing (forward azimuth) for the
segment (p1,p2), in degrees clockwise from north, normalized into [0,360).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {

	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)

	return brng
}

// NormalizeBearing. wrap any finite degree value into [0,360). 360 maps to 0.
func NormalizeBearing(angle float64) float64 {
	return math.Mod(math.Mod(angle, 360.0)+360.0, 360.0)
}

// ShortestAngularDelta returns the signed shortest rotation from current to
// target in [-180,180). Exactly opposite angles resolve to -180
// (counterclockwise), never +180, so callers get a deterministic direction.
func ShortestAngularDelta(current, target float64) float64 {
	return math.Mod(target-current+540.0, 360.0) - 180.0
}
