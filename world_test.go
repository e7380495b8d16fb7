package grasp

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldRaycastNearestHit(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	near := w.AddShape("near", mgl64.Vec3{0, 0, 1}, 0.1, ColorWhite)
	w.AddShape("far", mgl64.Vec3{0, 0, 3}, 0.1, ColorWhite)

	hit, ok := w.Raycast(mgl64.Vec3{0, 0, 0.5})
	if !ok {
		t.Fatal("expected a hit along +z")
	}
	if hit.Shape != near {
		t.Errorf("hit shape = %v, want the nearer sphere", hit.Shape)
	}
	// Entry point of a radius-0.1 sphere centered at z=1.
	if got := hit.Point.Z(); got < 0.89 || got > 0.91 {
		t.Errorf("hit point z = %v, want 0.9", got)
	}
}

func TestWorldRaycastMiss(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	w.AddShape("s", mgl64.Vec3{0, 0, 1}, 0.1, ColorWhite)

	tests := []struct {
		name    string
		through mgl64.Vec3
	}{
		{"off to the side", mgl64.Vec3{1, 0, 0.1}},
		{"behind the viewpoint", mgl64.Vec3{0, 0, -1}},
		{"degenerate through viewpoint", mgl64.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := w.Raycast(tt.through); ok {
				t.Errorf("Raycast(%v) hit, want miss", tt.through)
			}
		})
	}
}

func TestWorldRaycastFromInsideSphere(t *testing.T) {
	w := NewWorld(mgl64.Vec3{0, 0, 1})
	id := w.AddShape("s", mgl64.Vec3{0, 0, 1.05}, 0.5, ColorWhite)

	hit, ok := w.Raycast(mgl64.Vec3{0, 0, 1.2})
	if !ok || hit.Shape != id {
		t.Fatalf("ray from inside the sphere should exit through it, got %v %v", hit, ok)
	}
}

func TestWorldOverlapSphere(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	a := w.AddShape("a", mgl64.Vec3{0, 0, 1}, 0.1, ColorWhite)
	b := w.AddShape("b", mgl64.Vec3{0.15, 0, 1}, 0.1, ColorWhite)
	w.AddShape("c", mgl64.Vec3{5, 0, 1}, 0.1, ColorWhite)

	got := w.OverlapSphere(mgl64.Vec3{0.05, 0, 1}, 0.05)
	if len(got) != 2 {
		t.Fatalf("OverlapSphere returned %v, want ids of a and b", got)
	}
	if got[0] != a || got[1] != b {
		t.Errorf("OverlapSphere = %v, want [%v %v]", got, a, b)
	}
}

func TestWorldOverlapSphereEmpty(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	w.AddShape("s", mgl64.Vec3{0, 0, 1}, 0.1, ColorWhite)

	if got := w.OverlapSphere(mgl64.Vec3{3, 3, 3}, 0.05); len(got) != 0 {
		t.Errorf("OverlapSphere = %v, want empty", got)
	}
}

func TestWorldMutators(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	id := w.AddShape("s", mgl64.Vec3{0, 0, 1}, 0.1, ColorWhite)

	w.SetPosition(id, mgl64.Vec3{1, 2, 3})
	if pos, _ := w.Position(id); pos != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Position = %v", pos)
	}

	w.SetColor(id, Color{1, 0, 0, 1})
	if c, _ := w.Color(id); c != (Color{1, 0, 0, 1}) {
		t.Errorf("Color = %v", c)
	}

	w.SetVelocity(id, mgl64.Vec3{0.5, 0, 0})
	w.SetAngularVelocity(id, mgl64.Vec3{0, 0.5, 0})
	if v, _ := w.Velocity(id); v != (mgl64.Vec3{0.5, 0, 0}) {
		t.Errorf("Velocity = %v", v)
	}
	if v, _ := w.AngularVelocity(id); v != (mgl64.Vec3{0, 0.5, 0}) {
		t.Errorf("AngularVelocity = %v", v)
	}

	// Unknown IDs are negative results, not errors.
	if _, ok := w.Position(999); ok {
		t.Error("unknown id should report not found")
	}
}

func TestWorldStep(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	id := w.AddShape("s", mgl64.Vec3{0, 0, 1}, 0.1, ColorWhite)
	w.SetVelocity(id, mgl64.Vec3{1, 0, 0})

	w.Step(0.5)

	if pos, _ := w.Position(id); pos != (mgl64.Vec3{0.5, 0, 1}) {
		t.Errorf("position after step = %v, want {0.5 0 1}", pos)
	}
}

func TestWorldTracked(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	w.AddShape("Red", redHome, 0.1, colorRed)
	w.AddShape("Blue", blueHome, 0.1, colorBlue)

	tracked := w.Tracked()
	if len(tracked) != 2 {
		t.Fatalf("Tracked() returned %d shapes, want 2", len(tracked))
	}
	if tracked[0].Name != "Red" || tracked[1].Name != "Blue" {
		t.Errorf("Tracked() order = %v, want insertion order", tracked)
	}
	if tracked[0].Home != redHome || tracked[0].IdleColor != colorRed {
		t.Errorf("Tracked()[0] = %+v, want home and idle from AddShape", tracked[0])
	}
}
