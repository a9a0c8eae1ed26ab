package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testTrack() []geo.Coordinate {
	return []geo.Coordinate{
		geo.NewCoordinate(-7.79560, 110.36950),
		geo.NewCoordinate(-7.79620, 110.37010),
		geo.NewCoordinate(-7.79700, 110.37100),
		geo.NewCoordinate(-7.79810, 110.37080),
	}
}

func assertTracksEqual(t *testing.T, want, got []geo.Coordinate, tolerance float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.InDelta(t, want[i].Lat, got[i].Lat, tolerance, "fix %d lat", i)
		assert.InDelta(t, want[i].Lon, got[i].Lon, tolerance, "fix %d lon", i)
	}
}

func TestTrackFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	track := testTrack()

	testCases := []struct {
		name      string
		file      string
		tolerance float64
	}{
		{"csv", "track.csv", 1e-12},
		{"csv bzip2", "track.csv.bz2", 1e-12},
		{"polyline", "track.poly", 1e-5},
		{"polyline bzip2", "track.poly.bz2", 1e-5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, WriteTrackFile(path, track))

			got, err := ReadTrackFile(path)
			require.NoError(t, err)
			assertTracksEqual(t, track, got, tt.tolerance)
		})
	}
}

func TestWriteEmptyTrack(t *testing.T) {
	err := WriteTrackFile(filepath.Join(t.TempDir(), "empty.csv"), nil)
	assert.ErrorIs(t, err, ErrEmptyTrack)
}

func TestReadMissingTrackFile(t *testing.T) {
	_, err := ReadTrackFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadCSVTrackRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("0.1,0.2\nnot-a-lat,0.3\n"), 0o644))

	_, err := ReadTrackFile(path)
	assert.ErrorContains(t, err, "track line 2")
}

func TestUpsampleDensity(t *testing.T) {
	a := geo.NewCoordinate(0, 0)
	b := geo.NewCoordinate(0, 0.1) // ~11.1 km
	out := Upsample([]geo.Coordinate{a, b}, 1000)

	require.Greater(t, len(out), 10, "an 11km segment should split at 1km spacing")
	assert.Equal(t, a, out[0])
	assert.Equal(t, b, out[len(out)-1])

	for i := 1; i < len(out); i++ {
		p, q := out[i-1], out[i]
		distM := geo.CalculateHaversineDistance(p.Lat, p.Lon, q.Lat, q.Lon) * 1000.0
		assert.LessOrEqual(t, distM, 1100.0, "segment %d too long", i)
	}
}

func TestUpsampleShortSegmentUntouched(t *testing.T) {
	track := testTrack()
	out := Upsample(track, 1e6)
	assertTracksEqual(t, track, out, 0)
}

func TestPlayerDrivesTracker(t *testing.T) {
	ms := animator.NewManualScheduler()
	trk := tracker.New(zap.NewNop(), animator.New(ms))
	defer trk.Close()

	player := NewPlayer(zap.NewNop(), trk, time.Millisecond)

	// straight east along the equator
	track := []geo.Coordinate{
		geo.NewCoordinate(0, 0),
		geo.NewCoordinate(0, 0.01),
		geo.NewCoordinate(0, 0.02),
	}
	require.NoError(t, player.Run(context.Background(), track))

	for ms.Step() > 0 {
	}
	h := trk.Heading()
	assert.InDelta(t, 90.0, h.Bearing, 0.01)
	assert.Equal(t, "E", h.Direction.String())
}

func TestPlayerEmptyTrack(t *testing.T) {
	ms := animator.NewManualScheduler()
	trk := tracker.New(zap.NewNop(), animator.New(ms))
	defer trk.Close()

	player := NewPlayer(zap.NewNop(), trk, time.Millisecond)
	assert.ErrorIs(t, player.Run(context.Background(), nil), ErrEmptyTrack)
}

func TestPlayerHonorsContext(t *testing.T) {
	ms := animator.NewManualScheduler()
	trk := tracker.New(zap.NewNop(), animator.New(ms))
	defer trk.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	player := NewPlayer(zap.NewNop(), trk, time.Hour)
	assert.ErrorIs(t, player.Run(ctx, testTrack()), context.Canceled)
}
