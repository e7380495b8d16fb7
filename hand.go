package grasp

import "github.com/go-gl/mathgl/mgl64"

// HandState is one frame's tracking data for a single hand.
// A zero HandState is a hand that is not visible.
type HandState struct {
	// Visible reports whether the tracker currently sees this hand.
	// When false the remaining fields carry no meaning.
	Visible bool
	// IndexTip and ThumbTip are keypoint positions in scene units.
	IndexTip mgl64.Vec3
	ThumbTip mgl64.Vec3
	// Confidence is the tracker's confidence in this frame, in [0, 1].
	Confidence float64
	// Pose is the classified hand-shape category.
	Pose HandPose
}

// PinchSpan returns the straight-line distance between thumb tip and
// index tip.
func (h HandState) PinchSpan() float64 {
	return h.ThumbTip.Sub(h.IndexTip).Len()
}

// HandProvider supplies per-hand tracking data once per frame.
//
// Start must be called before the first Hand query and may fail; a failed
// Start disables the dependent component. Stop releases tracking resources.
// Hand is called from the frame tick only and must not block.
type HandProvider interface {
	Start() error
	Stop() error
	Hand(side HandSide) HandState
}

// StaticHands is a HandProvider backed by plain per-side state that the
// owner mutates directly. Useful for tests and for hosts that poll their
// own tracking API and just need somewhere to put the result each frame.
type StaticHands struct {
	States [numHandSides]HandState
}

// Start implements HandProvider. It never fails.
func (s *StaticHands) Start() error { return nil }

// Stop implements HandProvider.
func (s *StaticHands) Stop() error { return nil }

// Hand returns the stored state for side.
func (s *StaticHands) Hand(side HandSide) HandState {
	return s.States[side]
}

// Set replaces the stored state for side.
func (s *StaticHands) Set(side HandSide, state HandState) {
	s.States[side] = state
}

// Hide marks both hands invisible.
func (s *StaticHands) Hide() {
	s.States[HandLeft] = HandState{}
	s.States[HandRight] = HandState{}
}
