package grasp

import "github.com/go-gl/mathgl/mgl64"

// RayHit is the nearest shape struck by a scene ray cast.
type RayHit struct {
	// Shape is the tagged shape the ray struck.
	Shape ShapeID
	// Point is the world-space intersection point.
	Point mgl64.Vec3
}

// SceneQuery is the capability interface a host scene supplies to the
// gesture components. A miss (ok == false) and an empty overlap result are
// ordinary negative outcomes, never errors.
//
// All calls happen synchronously on the frame tick. Implementations that
// bridge to a render or physics thread must serialize mutations there.
type SceneQuery interface {
	// Raycast casts a ray from the scene viewpoint through the given
	// world-space point and returns the nearest tagged shape hit.
	Raycast(through mgl64.Vec3) (RayHit, bool)

	// OverlapSphere returns the IDs of all tagged shapes whose colliders
	// intersect the sphere at center with the given radius.
	OverlapSphere(center mgl64.Vec3, radius float64) []ShapeID

	// Position returns a shape's world-space position.
	Position(id ShapeID) (mgl64.Vec3, bool)

	// SetColor sets a shape's displayable color.
	SetColor(id ShapeID, c Color)

	// SetPosition moves a shape to a world-space position.
	SetPosition(id ShapeID, p mgl64.Vec3)

	// SetVelocity sets a shape's linear velocity.
	SetVelocity(id ShapeID, v mgl64.Vec3)

	// SetAngularVelocity sets a shape's angular velocity.
	SetAngularVelocity(id ShapeID, v mgl64.Vec3)
}

// StatusDisplay is a write-only sink for human-readable state messages.
// There is no parsing contract on the text.
type StatusDisplay interface {
	SetStatus(msg string)
}

// LinkDisplay renders the visual link spanning thumb tip to index tip
// while a shape is being moved.
type LinkDisplay interface {
	SetLink(a, b mgl64.Vec3)
	ClearLink()
}

// nopStatus discards status messages. Used when no display is wired.
type nopStatus struct{}

func (nopStatus) SetStatus(string) {}

// nopLink discards link updates.
type nopLink struct{}

func (nopLink) SetLink(a, b mgl64.Vec3) {}
func (nopLink) ClearLink()              {}
