package compass

import (
	"math"
	"testing"

	"github.com/lintang-b-s/compassx/pkg/geo"
)

func TestComputeBearingCardinal(t *testing.T) {
	testCases := []struct {
		name string
		from geo.Coordinate
		to   geo.Coordinate
		want float64
	}{
		{
			name: "due north",
			from: geo.NewCoordinate(0, 0),
			to:   geo.NewCoordinate(1, 0),
			want: 0,
		},
		{
			name: "due east",
			from: geo.NewCoordinate(0, 0),
			to:   geo.NewCoordinate(0, 1),
			want: 90,
		},
		{
			name: "due south",
			from: geo.NewCoordinate(1, 0),
			to:   geo.NewCoordinate(0, 0),
			want: 180,
		},
		{
			name: "due west",
			from: geo.NewCoordinate(0, 1),
			to:   geo.NewCoordinate(0, 0),
			want: 270,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBearing(&tt.from, &tt.to)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ComputeBearing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeBearingDegenerate(t *testing.T) {
	p := geo.NewCoordinate(-7.7956, 110.3695)

	if got := ComputeBearing(&p, &p); got != 0 {
		t.Errorf("identical points: got %v, want 0", got)
	}
	if got := ComputeBearing(nil, &p); got != 0 {
		t.Errorf("nil from: got %v, want 0", got)
	}
	if got := ComputeBearing(&p, nil); got != 0 {
		t.Errorf("nil to: got %v, want 0", got)
	}
	if got := ComputeBearing(nil, nil); got != 0 {
		t.Errorf("nil pair: got %v, want 0", got)
	}
}

func TestComputeBearingRange(t *testing.T) {
	// bearings for a sweep of point pairs must always land in [0, 360)
	for latStep := -2; latStep <= 2; latStep++ {
		for lonStep := -2; lonStep <= 2; lonStep++ {
			if latStep == 0 && lonStep == 0 {
				continue
			}
			from := geo.NewCoordinate(51.5, -0.1)
			to := geo.NewCoordinate(51.5+float64(latStep)*0.7, -0.1+float64(lonStep)*0.7)
			got := ComputeBearing(&from, &to)
			if got < 0 || got >= 360 {
				t.Errorf("bearing %v for (%v,%v) out of [0,360)", got, latStep, lonStep)
			}
		}
	}
}

func TestDirectionFromBearing(t *testing.T) {
	testCases := []struct {
		bearing float64
		want    string
	}{
		{0, "N"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{22.5, "NNE"},
		{337.5, "NNW"},
		{359.9, "N"},
		{360, "N"},
		// boundary ties round half away from zero
		{11.25, "NNE"},
		{11.24, "N"},
		{33.75, "NE"},
		{348.75, "N"},
		{348.74, "NNW"},
	}

	for _, tt := range testCases {
		got := DirectionFromBearing(tt.bearing).String()
		if got != tt.want {
			t.Errorf("DirectionFromBearing(%v) = %v, want %v", tt.bearing, got, tt.want)
		}
	}
}

func TestDirectionFromBearingTotal(t *testing.T) {
	// every bearing in [0,360) maps to exactly one of the 16 labels
	seen := make(map[string]bool)
	for b := 0.0; b < 360.0; b += 0.1 {
		d := DirectionFromBearing(b)
		if int(d) < 0 || int(d) > 15 {
			t.Fatalf("bearing %v mapped outside the rose: %v", b, d)
		}
		seen[d.String()] = true
	}
	if len(seen) != 16 {
		t.Errorf("sweep hit %d labels, want 16", len(seen))
	}
}

func TestBearingWithDirectionAgree(t *testing.T) {
	from := geo.NewCoordinate(0, 0)
	to := geo.NewCoordinate(0.3, 1.2)
	bearing, direction := BearingWithDirection(&from, &to)
	if direction != DirectionFromBearing(bearing) {
		t.Errorf("label %v disagrees with DirectionFromBearing(%v) = %v",
			direction, bearing, DirectionFromBearing(bearing))
	}
}
