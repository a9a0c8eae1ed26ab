package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/http"
	"github.com/lintang-b-s/compassx/pkg/http/usecases"
	"github.com/lintang-b-s/compassx/pkg/logger"
	"github.com/lintang-b-s/compassx/pkg/tracker"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit    = flag.Bool("rate_limit", false, "apply a global request rate limit")
	smoothingWindow = flag.Int("smoothing_window", 0, "rolling fix window for ground-track smoothing (0 = off)")
	minDistance     = flag.Float64("min_distance_meters", 0, "minimum movement between fixes before the heading retargets")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		log.Warn("no config file found, using defaults", zap.Error(err))
	}

	viper.SetDefault("FRAME_RATE", pkg.DEFAULT_FRAME_RATE)
	viper.SetDefault("SNAP_THRESHOLD_DEGREE", pkg.DEFAULT_SNAP_THRESHOLD_DEGREE)
	viper.SetDefault("EASE_FACTOR", pkg.DEFAULT_EASE_FACTOR)

	scheduler := animator.NewDisplayScheduler(viper.GetFloat64("FRAME_RATE"))

	var compassService *usecases.CompassService
	anim := animator.New(scheduler,
		animator.WithSnapThreshold(viper.GetFloat64("SNAP_THRESHOLD_DEGREE")),
		animator.WithEaseFactor(viper.GetFloat64("EASE_FACTOR")),
		animator.WithFrameCallback(func(frame animator.Frame) {
			compassService.PublishFrame(frame)
		}),
	)

	trackerOpts := []tracker.Option{}
	if *smoothingWindow > 0 {
		trackerOpts = append(trackerOpts, tracker.WithSmoothingWindow(*smoothingWindow))
	}
	if *minDistance > 0 {
		trackerOpts = append(trackerOpts, tracker.WithMinDistanceMeters(*minDistance))
	}
	trk := tracker.New(log, anim, trackerOpts...)

	compassService = usecases.NewCompassService(log, trk)

	api := http.NewServer(log)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, log, *useRateLimit, compassService)

	signal := http.GracefulShutdown()

	log.Info("compassx heading server stopped", zap.String("signal", signal.String()))
	trk.Close()
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
