package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/tracker"
	"github.com/lintang-b-s/compassx/pkg/util"
	"go.uber.org/zap"
)

var ErrEmptyTrack = errors.New("track has no coordinates")

/*
Player feeds a recorded track through a Tracker at a fixed sampling interval,
so the whole bearing/animation pipeline can be exercised against real or
synthetic GPS traces without a live position source.
*/
type Player struct {
	log      *zap.Logger
	tracker  *tracker.Tracker
	interval time.Duration
}

func NewPlayer(log *zap.Logger, trk *tracker.Tracker, interval time.Duration) *Player {
	return &Player{
		log:      log,
		tracker:  trk,
		interval: interval,
	}
}

// Run replays coords in order, one fix per interval, until the track is
// exhausted or ctx is canceled.
func (p *Player) Run(ctx context.Context, coords []geo.Coordinate) error {
	if len(coords) == 0 {
		return ErrEmptyTrack
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for i, c := range coords {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		p.tracker.Update(c)
		if i%100 == 0 {
			p.log.Info("replaying track",
				zap.Int("fix", i),
				zap.Int("total", len(coords)))
		}
	}
	return nil
}

// Upsample splits every track segment longer than maxSegmentMeters by
// great-circle interpolation, so sparse tracks still hand the animator a
// dense target stream.
func Upsample(coords []geo.Coordinate, maxSegmentMeters float64) []geo.Coordinate {
	if len(coords) < 2 || maxSegmentMeters <= 0 {
		return coords
	}
	out := make([]geo.Coordinate, 0, len(coords))
	out = append(out, coords[0])
	for i := 1; i < len(coords); i++ {
		a, b := coords[i-1], coords[i]
		distM := geo.CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000.0
		steps := int(distM / maxSegmentMeters)
		for s := 1; s <= steps; s++ {
			frac := float64(s) / float64(steps+1)
			out = append(out, geo.InterpolateAlongSegment(a, b, frac))
		}
		out = append(out, b)
	}
	return out
}

// ReadTrackFile loads a track from path. ".poly" files hold one google
// encoded polyline; anything else is parsed as "lat,lon" lines. a ".bz2"
// suffix on either form is decompressed transparently.
func ReadTrackFile(path string) ([]geo.Coordinate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNotFound, "open track %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.HasSuffix(name, ".bz2") {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
		name = strings.TrimSuffix(name, ".bz2")
	}

	if strings.HasSuffix(name, ".poly") {
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return geo.CoordsFromPolyline(strings.TrimSpace(string(raw)))
	}
	return readCSVTrack(r)
}

// WriteTrackFile stores coords at path in the format implied by its suffix,
// mirroring ReadTrackFile.
func WriteTrackFile(path string, coords []geo.Coordinate) error {
	if len(coords) == 0 {
		return ErrEmptyTrack
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	name := path
	if strings.HasSuffix(name, ".bz2") {
		bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		defer bz.Close()
		w = bz
		name = strings.TrimSuffix(name, ".bz2")
	}

	if strings.HasSuffix(name, ".poly") {
		_, err := io.WriteString(w, geo.PolylineFromCoords(coords))
		return err
	}

	bw := bufio.NewWriter(w)
	for _, c := range coords {
		fmt.Fprintf(bw, "%s,%s\n",
			strconv.FormatFloat(c.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Lon, 'f', -1, 64))
	}
	return bw.Flush()
}

func readCSVTrack(r io.Reader) ([]geo.Coordinate, error) {
	var coords []geo.Coordinate
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) < 2 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "track line %d: want lat,lon got %q", line, text)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "track line %d", line)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "track line %d", line)
		}
		coords = append(coords, geo.NewCoordinate(lat, lon))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return coords, nil
}
