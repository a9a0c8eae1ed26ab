package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/logger"
	"github.com/lintang-b-s/compassx/pkg/replay"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

var (
	numTracks = flag.Int("tracks", 1, "number of track files to generate")
	numPoints = flag.Int("points", 500, "fixes per track")
	stepKM    = flag.Float64("step_km", 0.05, "distance between consecutive fixes")
	startLat  = flag.Float64("start_lat", -7.7956, "walk origin latitude")
	startLon  = flag.Float64("start_lon", 110.3695, "walk origin longitude")
	outDir    = flag.String("out", "./data", "output directory")
	seed      = flag.Uint64("seed", 42, "rng seed")
)

// generates random-walk GPS tracks for replaying through the heading
// pipeline: the bearing wanders a bounded amount per step so the animated
// needle keeps moving without snapping.
func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	g := errgroup.Group{}
	g.SetLimit(4)
	for i := 0; i < *numTracks; i++ {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(*seed + uint64(i)))
			coords := randomWalk(rng, *startLat, *startLon, *numPoints, *stepKM)
			path := filepath.Join(*outDir, fmt.Sprintf("track_%02d.poly.bz2", i))
			if err := replay.WriteTrackFile(path, coords); err != nil {
				return err
			}
			log.Info("track written", zap.String("path", path), zap.Int("fixes", len(coords)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("track generation failed", zap.Error(err))
	}
}

func randomWalk(rng *rand.Rand, lat, lon float64, points int, stepKM float64) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, points)
	coords = append(coords, geo.NewCoordinate(lat, lon))
	bearing := rng.Float64() * 360.0
	for i := 1; i < points; i++ {
		// wander at most 30 degrees per step
		bearing = geo.NormalizeBearing(bearing + (rng.Float64()-0.5)*60.0)
		lat, lon = geo.GetDestinationPoint(lat, lon, bearing, stepKM)
		coords = append(coords, geo.NewCoordinate(lat, lon))
	}
	return coords
}
