package faces

import (
	"math"
	"sort"

	"github.com/heimdex/heimdex-media-contracts/internal/schema"
)

const (
	DefaultSampleFPS      = 1.0
	DefaultBoundaryWindow = 0.5
)

// SampleTimestamps returns sorted, unique sample times in seconds, rounded
// to milliseconds: a uniform grid at fps over [0, durationS] plus samples at
// -w, -w/2, 0, +w/2 and +w around each boundary that fall inside the video.
// The offsets are symmetric, so a negative window samples like its absolute
// value.
func SampleTimestamps(durationS, fps float64, boundariesS []float64, windowS float64) ([]float64, error) {
	switch {
	case math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0:
		return nil, schema.InvalidArgument("fps must be > 0, got %g", fps)
	case math.IsNaN(durationS) || math.IsInf(durationS, 0) || durationS < 0:
		return nil, schema.InvalidArgument("duration must be >= 0, got %g", durationS)
	case math.IsNaN(windowS) || math.IsInf(windowS, 0):
		return nil, schema.InvalidArgument("boundary window must be finite, got %g", windowS)
	}
	if durationS == 0 {
		return []float64{}, nil
	}

	ts := []float64{}
	for i := 0; ; i++ {
		t := float64(i) / fps
		if t > durationS {
			break
		}
		ts = append(ts, t)
	}

	offsets := []float64{-windowS, -windowS / 2, 0, windowS / 2, windowS}
	for _, b := range boundariesS {
		if math.IsNaN(b) {
			continue
		}
		for _, off := range offsets {
			if t := b + off; t >= 0 && t <= durationS {
				ts = append(ts, t)
			}
		}
	}
	return dedupeSorted(ts), nil
}

func dedupeSorted(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		key := math.Round(v*1000) / 1000
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Float64s(out)
	return out
}
