package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes coords as a google encoded polyline string.
func PolylineFromCoords(coords []Coordinate) string {
	flat := make([][]float64, len(coords))
	for i, c := range coords {
		flat[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(flat))
}

// CoordsFromPolyline decodes a google encoded polyline string.
func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	flat, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, len(flat))
	for i, c := range flat {
		coords[i] = NewCoordinate(c[0], c[1])
	}
	return coords, nil
}
