package grasp

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// shapeState is a World-owned sphere shape.
type shapeState struct {
	id      ShapeID
	name    string
	pos     mgl64.Vec3
	vel     mgl64.Vec3
	angVel  mgl64.Vec3
	radius  float64
	color   Color
	idle    Color
	home    mgl64.Vec3
}

// World is an in-memory SceneQuery holding sphere shapes. It stands in for
// a host engine's scene in tests, demos, and hosts that only need gesture
// semantics without rendering or physics.
//
// Rays originate at the world's viewpoint. Step advances positions by the
// current velocities; nothing collides, falls, or spins on its own.
type World struct {
	mu        sync.RWMutex
	viewpoint mgl64.Vec3
	shapes    map[ShapeID]*shapeState
	order     []ShapeID
	nextID    ShapeID
}

// NewWorld creates an empty world with the given viewpoint.
func NewWorld(viewpoint mgl64.Vec3) *World {
	return &World{
		viewpoint: viewpoint,
		shapes:    make(map[ShapeID]*shapeState),
	}
}

// AddShape adds a sphere shape and returns its ID. The given position
// becomes the shape's home; the given color its idle color.
func (w *World) AddShape(name string, pos mgl64.Vec3, radius float64, idle Color) ShapeID {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.shapes[id] = &shapeState{
		id:     id,
		name:   name,
		pos:    pos,
		radius: radius,
		color:  idle,
		idle:   idle,
		home:   pos,
	}
	w.order = append(w.order, id)
	return id
}

// Tracked returns the TrackedShape descriptors for every shape, in
// insertion order, ready to hand to the gesture components.
func (w *World) Tracked() []TrackedShape {
	w.mu.RLock()
	defer w.mu.RUnlock()

	tracked := make([]TrackedShape, 0, len(w.order))
	for _, id := range w.order {
		s := w.shapes[id]
		tracked = append(tracked, TrackedShape{
			ID:        s.id,
			Name:      s.name,
			IdleColor: s.idle,
			Home:      s.home,
		})
	}
	return tracked
}

// Raycast implements SceneQuery: the nearest sphere hit by the ray from the
// viewpoint through the given point.
func (w *World) Raycast(through mgl64.Vec3) (RayHit, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	dir := through.Sub(w.viewpoint)
	if dir.Len() == 0 {
		return RayHit{}, false
	}
	dir = dir.Normalize()

	best := math.Inf(1)
	var hit RayHit
	for _, id := range w.order {
		s := w.shapes[id]
		t, ok := raySphere(w.viewpoint, dir, s.pos, s.radius)
		if ok && t < best {
			best = t
			hit = RayHit{Shape: s.id, Point: w.viewpoint.Add(dir.Mul(t))}
		}
	}
	if math.IsInf(best, 1) {
		return RayHit{}, false
	}
	return hit, true
}

// OverlapSphere implements SceneQuery: every shape whose sphere intersects
// the probe sphere.
func (w *World) OverlapSphere(center mgl64.Vec3, radius float64) []ShapeID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var ids []ShapeID
	for _, id := range w.order {
		s := w.shapes[id]
		if s.pos.Sub(center).Len() <= radius+s.radius {
			ids = append(ids, s.id)
		}
	}
	return ids
}

// Position implements SceneQuery.
func (w *World) Position(id ShapeID) (mgl64.Vec3, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if s, ok := w.shapes[id]; ok {
		return s.pos, true
	}
	return mgl64.Vec3{}, false
}

// SetColor implements SceneQuery.
func (w *World) SetColor(id ShapeID, c Color) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.shapes[id]; ok {
		s.color = c
	}
}

// SetPosition implements SceneQuery.
func (w *World) SetPosition(id ShapeID, p mgl64.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.shapes[id]; ok {
		s.pos = p
	}
}

// SetVelocity implements SceneQuery.
func (w *World) SetVelocity(id ShapeID, v mgl64.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.shapes[id]; ok {
		s.vel = v
	}
}

// SetAngularVelocity implements SceneQuery.
func (w *World) SetAngularVelocity(id ShapeID, v mgl64.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.shapes[id]; ok {
		s.angVel = v
	}
}

// Color returns a shape's current display color.
func (w *World) Color(id ShapeID) (Color, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if s, ok := w.shapes[id]; ok {
		return s.color, true
	}
	return Color{}, false
}

// Velocity returns a shape's current linear velocity.
func (w *World) Velocity(id ShapeID) (mgl64.Vec3, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if s, ok := w.shapes[id]; ok {
		return s.vel, true
	}
	return mgl64.Vec3{}, false
}

// AngularVelocity returns a shape's current angular velocity.
func (w *World) AngularVelocity(id ShapeID) (mgl64.Vec3, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if s, ok := w.shapes[id]; ok {
		return s.angVel, true
	}
	return mgl64.Vec3{}, false
}

// Step advances every shape by its velocity over dt seconds. Plain
// integration only; the world has no forces or collisions.
func (w *World) Step(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, s := range w.shapes {
		if s.vel.Len() > 0 {
			s.pos = s.pos.Add(s.vel.Mul(dt))
		}
	}
}

// raySphere returns the nearest non-negative ray parameter at which the ray
// origin+t*dir (dir normalized) intersects the sphere, if any.
func raySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
