package grasp

import "github.com/go-gl/mathgl/mgl64"

// Hand landmark indices following the MediaPipe hand-landmarker convention.
const (
	LandmarkWrist = iota
	LandmarkThumbCMC
	LandmarkThumbMCP
	LandmarkThumbIP
	LandmarkThumbTip
	LandmarkIndexMCP
	LandmarkIndexPIP
	LandmarkIndexDIP
	LandmarkIndexTip
	LandmarkMiddleMCP
	LandmarkMiddlePIP
	LandmarkMiddleDIP
	LandmarkMiddleTip
	LandmarkRingMCP
	LandmarkRingPIP
	LandmarkRingDIP
	LandmarkRingTip
	LandmarkPinkyMCP
	LandmarkPinkyPIP
	LandmarkPinkyDIP
	LandmarkPinkyTip

	NumLandmarks = 21
)

// Landmarks is one tracked hand's full 21-keypoint frame in scene units,
// as produced by a MediaPipe-style hand tracker.
type Landmarks struct {
	Points [NumLandmarks]mgl64.Vec3
	// Score is the tracker's confidence for this frame, in [0, 1].
	Score float64
}

// IndexTip returns the index fingertip keypoint.
func (l *Landmarks) IndexTip() mgl64.Vec3 {
	return l.Points[LandmarkIndexTip]
}

// ThumbTip returns the thumb tip keypoint.
func (l *Landmarks) ThumbTip() mgl64.Vec3 {
	return l.Points[LandmarkThumbTip]
}

// PinchSpan returns the thumb-tip to index-tip distance.
func (l *Landmarks) PinchSpan() float64 {
	return l.ThumbTip().Sub(l.IndexTip()).Len()
}

// handSpan returns the wrist to middle-MCP distance, the scale reference
// for pose heuristics.
func (l *Landmarks) handSpan() float64 {
	return l.Points[LandmarkMiddleMCP].Sub(l.Points[LandmarkWrist]).Len()
}

// fingerExtended reports whether a finger's tip is further from the wrist
// than its PIP joint by a clear margin, i.e. the finger is straightened.
func (l *Landmarks) fingerExtended(tip, pip int) bool {
	wrist := l.Points[LandmarkWrist]
	return l.Points[tip].Sub(wrist).Len() > l.Points[pip].Sub(wrist).Len()*1.1
}

// curlRatio is the mean fingertip distance from the wrist relative to the
// hand span. A fully closed fist sits near 1; half-curled fingers (the "C"
// arc) sit well above it.
func (l *Landmarks) curlRatio() float64 {
	span := l.handSpan()
	tips := [4]int{LandmarkIndexTip, LandmarkMiddleTip, LandmarkRingTip, LandmarkPinkyTip}
	var sum float64
	for _, tip := range tips {
		sum += l.Points[tip].Sub(l.Points[LandmarkWrist]).Len()
	}
	return sum / float64(len(tips)) / span
}

// ClassifyPose derives a discrete hand pose from the landmark geometry.
//
// The heuristics are deliberately coarse: trackers that classify poses
// themselves should set HandState.Pose directly and skip this. Scale is
// normalized by the wrist to middle-MCP span, so the rules hold at any
// distance from the sensor.
func (l *Landmarks) ClassifyPose() HandPose {
	span := l.handSpan()
	if span <= 0 {
		return PoseNone
	}

	pinchRatio := l.PinchSpan() / span

	middle := l.fingerExtended(LandmarkMiddleTip, LandmarkMiddlePIP)
	ring := l.fingerExtended(LandmarkRingTip, LandmarkRingPIP)
	pinky := l.fingerExtended(LandmarkPinkyTip, LandmarkPinkyPIP)
	index := l.fingerExtended(LandmarkIndexTip, LandmarkIndexPIP)

	restExtended := middle && ring && pinky

	switch {
	case pinchRatio < 0.35 && restExtended:
		// Thumb-index ring with the other fingers up.
		return PoseOK
	case pinchRatio < 0.35:
		return PosePinch
	case index && restExtended:
		return PoseOpenHand
	case !index && !restExtended:
		if l.curlRatio() < 1.15 {
			return PoseFist
		}
		// Curled but not closed: thumb and fingers forming the "C" arc.
		return PoseC
	default:
		return PoseNone
	}
}

// State converts a landmark frame to the HandState the gesture components
// consume, classifying the pose from geometry.
func (l *Landmarks) State() HandState {
	return HandState{
		Visible:    true,
		IndexTip:   l.IndexTip(),
		ThumbTip:   l.ThumbTip(),
		Confidence: l.Score,
		Pose:       l.ClassifyPose(),
	}
}
