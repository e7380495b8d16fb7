package grasp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat"
)

// defaultStabilizerWindow is the sliding-window length in frames.
const defaultStabilizerWindow = 5

// Stabilizer wraps a HandProvider and smooths its keypoints with a
// sliding-window mean, defending the millimeter-scale pinch thresholds
// against tracker jitter. Pose and visibility pass through unmodified;
// confidence is averaged over the same window. Losing sight of a hand
// clears its window, so reappearance starts fresh rather than blending
// across the gap.
type Stabilizer struct {
	inner  HandProvider
	window int
	hist   [numHandSides][]HandState
}

// NewStabilizer wraps a provider with the given window length in frames.
// A window below 2 disables smoothing and the wrap becomes a passthrough.
func NewStabilizer(inner HandProvider, window int) *Stabilizer {
	if window < 1 {
		window = defaultStabilizerWindow
	}
	return &Stabilizer{inner: inner, window: window}
}

// Start implements HandProvider.
func (s *Stabilizer) Start() error { return s.inner.Start() }

// Stop implements HandProvider.
func (s *Stabilizer) Stop() error { return s.inner.Stop() }

// Hand implements HandProvider, returning the smoothed state. Each call
// consumes one frame of the window; call once per side per frame.
func (s *Stabilizer) Hand(side HandSide) HandState {
	state := s.inner.Hand(side)
	if !state.Visible {
		s.hist[side] = s.hist[side][:0]
		return state
	}

	hist := append(s.hist[side], state)
	if len(hist) > s.window {
		hist = hist[1:]
	}
	s.hist[side] = hist

	if len(hist) < 2 {
		return state
	}

	smoothed := state
	smoothed.IndexTip = meanVec(hist, func(h HandState) mgl64.Vec3 { return h.IndexTip })
	smoothed.ThumbTip = meanVec(hist, func(h HandState) mgl64.Vec3 { return h.ThumbTip })

	conf := make([]float64, len(hist))
	for i, h := range hist {
		conf[i] = h.Confidence
	}
	smoothed.Confidence = stat.Mean(conf, nil)
	return smoothed
}

// Jitter returns the standard deviation of the index tip over the current
// window as a single magnitude, or 0 with fewer than two samples. Useful
// for deciding whether a tracker feed is stable enough to trust.
func (s *Stabilizer) Jitter(side HandSide) float64 {
	hist := s.hist[side]
	if len(hist) < 2 {
		return 0
	}

	var sum float64
	for axis := 0; axis < 3; axis++ {
		vals := make([]float64, len(hist))
		for i, h := range hist {
			vals[i] = h.IndexTip[axis]
		}
		sd := stat.StdDev(vals, nil)
		sum += sd * sd
	}
	return math.Sqrt(sum)
}

// meanVec averages one keypoint across the window.
func meanVec(hist []HandState, pick func(HandState) mgl64.Vec3) mgl64.Vec3 {
	var mean mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		vals := make([]float64, len(hist))
		for i, h := range hist {
			vals[i] = pick(h)[axis]
		}
		mean[axis] = stat.Mean(vals, nil)
	}
	return mean
}
