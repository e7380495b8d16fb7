package grasp

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default shape color.
var ColorWhite = Color{1, 1, 1, 1}

// ShapeID identifies a tracked scene shape. IDs are assigned by the scene
// owner and compared by value; the zero ID is valid like any other.
type ShapeID uint32

// TrackedShape describes a scene shape a gesture component watches.
// The shape itself is owned by the scene; components hold only this
// reference data.
type TrackedShape struct {
	ID ShapeID
	// Name appears in status messages.
	Name string
	// IdleColor is the resting, non-highlighted display color.
	IdleColor Color
	// Home is the canonical start position restored by the reset gesture.
	Home mgl64.Vec3
}

// HandSide identifies a hand.
type HandSide uint8

const (
	HandLeft HandSide = iota
	HandRight

	numHandSides = 2
)

// handSides lists both sides for parameterized per-hand passes.
var handSides = [numHandSides]HandSide{HandLeft, HandRight}

// Other returns the opposite hand side.
func (s HandSide) Other() HandSide {
	if s == HandLeft {
		return HandRight
	}
	return HandLeft
}

// String returns "left" or "right".
func (s HandSide) String() string {
	if s == HandLeft {
		return "left"
	}
	return "right"
}

// HandPose is a discrete, classified hand-shape category.
type HandPose uint8

const (
	PoseNone     HandPose = iota // tracking reports no recognized pose
	PoseOpenHand                 // flat open hand, fingers extended
	PosePinch                    // thumb and index forming a pinch
	PoseC                        // thumb and fingers curled into a "C"
	PoseOK                       // thumb-index ring, remaining fingers up
	PoseFist                     // all fingers curled closed
)

var poseNames = map[HandPose]string{
	PoseNone:     "none",
	PoseOpenHand: "open-hand",
	PosePinch:    "pinch",
	PoseC:        "c",
	PoseOK:       "ok",
	PoseFist:     "fist",
}

// String returns the pose's wire/config name.
func (p HandPose) String() string {
	if name, ok := poseNames[p]; ok {
		return name
	}
	return "none"
}

// ParsePose converts a pose name (as used in config files and wire frames)
// back to a HandPose.
func ParsePose(name string) (HandPose, error) {
	for pose, n := range poseNames {
		if n == name {
			return pose, nil
		}
	}
	return PoseNone, fmt.Errorf("unknown hand pose %q", name)
}

// midpoint returns the point halfway between a and b.
func midpoint(a, b mgl64.Vec3) mgl64.Vec3 {
	return a.Add(b).Mul(0.5)
}
