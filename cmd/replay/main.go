package main

import (
	"context"
	"flag"
	"time"

	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/logger"
	"github.com/lintang-b-s/compassx/pkg/replay"
	"github.com/lintang-b-s/compassx/pkg/tracker"
	"go.uber.org/zap"
)

var (
	trackPath  = flag.String("track", "./data/track.poly", "track file (.poly/.csv, optionally .bz2)")
	intervalMs = flag.Int("interval_ms", 100, "sampling interval between fixes")
	frameRate  = flag.Float64("fps", 60, "display frame rate for the animation")
	upsampleM  = flag.Float64("upsample_meters", 0, "split segments longer than this before replay (0 = off)")
	verbose    = flag.Bool("frames", false, "log every animation frame")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	coords, err := replay.ReadTrackFile(*trackPath)
	if err != nil {
		log.Fatal("reading track", zap.String("path", *trackPath), zap.Error(err))
	}
	if *upsampleM > 0 {
		coords = replay.Upsample(coords, *upsampleM)
	}
	log.Info("track loaded", zap.String("path", *trackPath), zap.Int("fixes", len(coords)))

	onFrame := func(frame animator.Frame) {}
	if *verbose {
		onFrame = func(frame animator.Frame) {
			log.Info("frame",
				zap.Float64("angle", frame.Angle),
				zap.Float64("target", frame.Target),
				zap.Bool("converging", frame.Converging))
		}
	}

	anim := animator.New(animator.NewDisplayScheduler(*frameRate),
		animator.WithFrameCallback(onFrame))
	trk := tracker.New(log, anim)
	defer trk.Close()

	player := replay.NewPlayer(log, trk, time.Duration(*intervalMs)*time.Millisecond)
	if err := player.Run(context.Background(), coords); err != nil {
		log.Fatal("replay failed", zap.Error(err))
	}

	// let the animation settle on the final bearing before reporting
	deadline := time.Now().Add(5 * time.Second)
	for trk.Heading().Converging && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	heading := trk.Heading()
	log.Info("replay finished",
		zap.Float64("displayed", heading.Displayed),
		zap.Float64("bearing", heading.Bearing),
		zap.String("direction", heading.Direction.String()))
}
