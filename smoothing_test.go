package grasp

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestStabilizerFirstFrameIsRaw(t *testing.T) {
	hands := &StaticHands{}
	stab := NewStabilizer(hands, 5)

	raw := pointingHand(mgl64.Vec3{0.1, 0.2, 0.3})
	hands.Set(HandRight, raw)

	got := stab.Hand(HandRight)
	if got.IndexTip != raw.IndexTip {
		t.Errorf("first frame = %v, want raw %v", got.IndexTip, raw.IndexTip)
	}
}

func TestStabilizerAverages(t *testing.T) {
	hands := &StaticHands{}
	stab := NewStabilizer(hands, 5)

	hands.Set(HandRight, pointingHand(mgl64.Vec3{0, 0, 1}))
	stab.Hand(HandRight)

	hands.Set(HandRight, pointingHand(mgl64.Vec3{0.1, 0, 1}))
	got := stab.Hand(HandRight)

	if math.Abs(got.IndexTip.X()-0.05) > 1e-12 {
		t.Errorf("index x = %v, want the two-frame mean 0.05", got.IndexTip.X())
	}
	if got.IndexTip.Z() != 1 {
		t.Errorf("index z = %v, want 1", got.IndexTip.Z())
	}
}

func TestStabilizerWindowSlides(t *testing.T) {
	hands := &StaticHands{}
	stab := NewStabilizer(hands, 2)

	for _, x := range []float64{0, 0.1, 0.3} {
		hands.Set(HandRight, pointingHand(mgl64.Vec3{x, 0, 1}))
		stab.Hand(HandRight)
	}

	// The oldest sample fell out: mean of 0.1 and 0.3.
	hands.Set(HandRight, pointingHand(mgl64.Vec3{0.3, 0, 1}))
	got := stab.Hand(HandRight)
	if math.Abs(got.IndexTip.X()-0.3) > 1e-12 {
		t.Errorf("index x = %v, want 0.3 from a window of equal samples", got.IndexTip.X())
	}
}

func TestStabilizerAveragesConfidence(t *testing.T) {
	hands := &StaticHands{}
	stab := NewStabilizer(hands, 5)

	for _, conf := range []float64{0.8, 1.0} {
		state := pointingHand(mgl64.Vec3{0, 0, 1})
		state.Confidence = conf
		hands.Set(HandRight, state)
		stab.Hand(HandRight)
	}

	hands.Set(HandRight, func() HandState {
		s := pointingHand(mgl64.Vec3{0, 0, 1})
		s.Confidence = 0.9
		return s
	}())
	got := stab.Hand(HandRight)
	if math.Abs(got.Confidence-0.9) > 1e-12 {
		t.Errorf("confidence = %v, want the window mean 0.9", got.Confidence)
	}
}

func TestStabilizerClearsOnInvisible(t *testing.T) {
	hands := &StaticHands{}
	stab := NewStabilizer(hands, 5)

	hands.Set(HandRight, pointingHand(mgl64.Vec3{0, 0, 1}))
	stab.Hand(HandRight)
	stab.Hand(HandRight)

	hands.Hide()
	if stab.Hand(HandRight).Visible {
		t.Fatal("invisible hand passed through as visible")
	}

	// Reappearance must not blend against pre-gap samples.
	hands.Set(HandRight, pointingHand(mgl64.Vec3{1, 0, 1}))
	got := stab.Hand(HandRight)
	if got.IndexTip.X() != 1 {
		t.Errorf("index x = %v, want the raw reappearance position 1", got.IndexTip.X())
	}
}

func TestStabilizerJitter(t *testing.T) {
	hands := &StaticHands{}
	stab := NewStabilizer(hands, 5)

	if got := stab.Jitter(HandRight); got != 0 {
		t.Errorf("jitter with no samples = %v, want 0", got)
	}

	for _, x := range []float64{0, 0.02} {
		hands.Set(HandRight, pointingHand(mgl64.Vec3{x, 0, 1}))
		stab.Hand(HandRight)
	}

	// Two samples 0.02 apart on one axis: sample stddev 0.02/sqrt(2).
	want := 0.02 / math.Sqrt2
	if got := stab.Jitter(HandRight); math.Abs(got-want) > 1e-12 {
		t.Errorf("jitter = %v, want %v", got, want)
	}
}

func TestStabilizerPassesPoseThrough(t *testing.T) {
	hands := &StaticHands{}
	stab := NewStabilizer(hands, 5)

	state := pointingHand(mgl64.Vec3{0, 0, 1})
	state.Pose = PoseC
	hands.Set(HandRight, state)
	stab.Hand(HandRight)
	if got := stab.Hand(HandRight); got.Pose != PoseC {
		t.Errorf("pose = %v, want C untouched by smoothing", got.Pose)
	}
}
