package grasp

import "go.uber.org/zap"

// DefaultHighlightColor is the "touched" indicator color used by both
// gesture components unless overridden.
var DefaultHighlightColor = Color{1, 0.85, 0.1, 1}

// touch is a transient hand-to-shape contact record.
type touch struct {
	shape *TrackedShape
}

// TouchTracker maintains the set of active fingertip touches against a
// fixed set of tracked shapes, one pass per hand per frame.
//
// A touch registers when the viewpoint ray through a hand's index tip hits
// a tracked shape and the fingertip is within Config.TouchRadius of the
// shape's position. It ends when either condition fails or the hand
// disappears. A shape returns to its idle color only once no hand is
// touching it.
type TouchTracker struct {
	// HighlightColor is applied to a shape while it is touched.
	HighlightColor Color

	hands  HandProvider
	scene  SceneQuery
	shapes []TrackedShape
	cfg    Config
	log    *zap.Logger

	touches  [numHandSides]*touch
	disabled bool
}

// NewTouchTracker wires a tracker to its providers. The shapes slice is
// copied; the scene owns the shapes themselves.
func NewTouchTracker(hands HandProvider, scene SceneQuery, shapes []TrackedShape, cfg Config) *TouchTracker {
	return &TouchTracker{
		HighlightColor: DefaultHighlightColor,
		hands:          hands,
		scene:          scene,
		shapes:         append([]TrackedShape(nil), shapes...),
		cfg:            cfg,
		log:            zap.NewNop(),
	}
}

// SetLogger attaches a logger for diagnostics. Nil restores the no-op.
func (t *TouchTracker) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	t.log = log
}

// Start starts the hand provider. On failure the tracker disables itself;
// subsequent Update calls are no-ops. There is no retry.
func (t *TouchTracker) Start() error {
	if err := t.hands.Start(); err != nil {
		t.disabled = true
		t.log.Error("hand tracking unavailable, touch tracker disabled", zap.Error(err))
		return err
	}
	return nil
}

// Stop stops the hand provider.
func (t *TouchTracker) Stop() error {
	return t.hands.Stop()
}

// Touching returns the shape the given hand is touching, if any.
func (t *TouchTracker) Touching(side HandSide) (ShapeID, bool) {
	if tc := t.touches[side]; tc != nil {
		return tc.shape.ID, true
	}
	return 0, false
}

// Update runs one frame of touch tracking.
func (t *TouchTracker) Update() {
	if t.disabled {
		return
	}

	var states [numHandSides]HandState
	for _, side := range handSides {
		states[side] = t.hands.Hand(side)
	}

	// Neither hand visible: clear everything, idle every shape.
	if !states[HandLeft].Visible && !states[HandRight].Visible {
		t.clearAll()
		return
	}

	for _, side := range handSides {
		t.updateHand(side, states[side])
	}
}

// updateHand runs the per-hand contract: re-check an existing touch, then
// look for a new one.
func (t *TouchTracker) updateHand(side HandSide, state HandState) {
	if tc := t.touches[side]; tc != nil {
		if !state.Visible || !t.touchValid(state, tc.shape) {
			t.removeTouch(side)
		}
	}

	if state.Visible && t.touches[side] == nil {
		t.detectTouch(side, state)
	}
}

// touchValid re-tests the touch predicate: the viewpoint ray through the
// fingertip must still hit the same shape, and the fingertip must still be
// within the touch radius of the shape's position. A ray miss fails the
// predicate.
func (t *TouchTracker) touchValid(state HandState, shape *TrackedShape) bool {
	hit, ok := t.scene.Raycast(state.IndexTip)
	if !ok || hit.Shape != shape.ID {
		return false
	}
	pos, ok := t.scene.Position(shape.ID)
	if !ok {
		return false
	}
	return pos.Sub(state.IndexTip).Len() <= t.cfg.TouchRadius
}

// detectTouch registers a new touch when the ray through the fingertip hits
// a tracked shape within the touch radius.
func (t *TouchTracker) detectTouch(side HandSide, state HandState) {
	hit, ok := t.scene.Raycast(state.IndexTip)
	if !ok {
		return
	}
	shape := t.tracked(hit.Shape)
	if shape == nil {
		return
	}
	pos, ok := t.scene.Position(shape.ID)
	if !ok || pos.Sub(state.IndexTip).Len() > t.cfg.TouchRadius {
		return
	}

	t.touches[side] = &touch{shape: shape}
	t.scene.SetColor(shape.ID, t.HighlightColor)
	t.log.Debug("touch registered",
		zap.String("hand", side.String()),
		zap.String("shape", shape.Name))
}

// removeTouch drops a hand's touch. The shape reverts to idle only when the
// other hand is not also touching it.
func (t *TouchTracker) removeTouch(side HandSide) {
	tc := t.touches[side]
	t.touches[side] = nil

	if other := t.touches[side.Other()]; other != nil && other.shape.ID == tc.shape.ID {
		return
	}
	t.scene.SetColor(tc.shape.ID, tc.shape.IdleColor)
	t.log.Debug("touch removed",
		zap.String("hand", side.String()),
		zap.String("shape", tc.shape.Name))
}

// clearAll removes every touch and restores every tracked shape's idle
// color, regardless of prior state.
func (t *TouchTracker) clearAll() {
	for _, side := range handSides {
		t.touches[side] = nil
	}
	for i := range t.shapes {
		t.scene.SetColor(t.shapes[i].ID, t.shapes[i].IdleColor)
	}
}

// tracked returns the tracked shape with the given ID, or nil.
func (t *TouchTracker) tracked(id ShapeID) *TrackedShape {
	for i := range t.shapes {
		if t.shapes[i].ID == id {
			return &t.shapes[i]
		}
	}
	return nil
}
