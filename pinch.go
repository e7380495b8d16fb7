package grasp

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Phase is the pinch-and-drag session state.
type Phase uint8

const (
	// PhaseSelecting is the initial phase: hover highlighting and pinch
	// detection.
	PhaseSelecting Phase = iota
	// PhaseMoving is active while a shape is held and follows the hand.
	PhaseMoving
)

// String returns "selecting" or "moving".
func (p Phase) String() string {
	if p == PhaseMoving {
		return "moving"
	}
	return "selecting"
}

// PinchDrag is the pinch-and-drag gesture controller: a two-phase state
// machine that highlights the shape under a single visible hand's
// fingertip, detects a sustained pinch, and moves the shape with the hand
// until released.
//
// One session exists per controller; it never terminates, it only cycles
// between Selecting and Moving. At most one hand holds a shape at a time.
type PinchDrag struct {
	// HighlightColor is applied to the highlighted shape while selecting.
	HighlightColor Color

	hands  HandProvider
	scene  SceneQuery
	shapes []TrackedShape
	cfg    Config
	status StatusDisplay
	link   LinkDisplay
	log    *zap.Logger
	now    func() time.Time

	phase       Phase
	activeSide  HandSide
	highlighted *TrackedShape
	held        *TrackedShape

	// Single-slot pending pickup. Arming while armed is a no-op, so
	// repeated pinch frames cannot stack or push back the deadline.
	pickupArmed bool
	pickupAt    time.Time

	lastHeldPos mgl64.Vec3
	hasLastPos  bool
	disabled    bool
}

// NewPinchDrag wires a controller to its providers. The shapes slice is
// copied; the scene owns the shapes themselves.
func NewPinchDrag(hands HandProvider, scene SceneQuery, shapes []TrackedShape, cfg Config) *PinchDrag {
	return &PinchDrag{
		HighlightColor: DefaultHighlightColor,
		hands:          hands,
		scene:          scene,
		shapes:         append([]TrackedShape(nil), shapes...),
		cfg:            cfg,
		status:         nopStatus{},
		link:           nopLink{},
		log:            zap.NewNop(),
		now:            time.Now,
	}
}

// SetStatusDisplay attaches the text sink for state messages. Nil restores
// the no-op sink.
func (c *PinchDrag) SetStatusDisplay(d StatusDisplay) {
	if d == nil {
		d = nopStatus{}
	}
	c.status = d
}

// SetLinkDisplay attaches the thumb-index link visual. Nil restores the
// no-op display.
func (c *PinchDrag) SetLinkDisplay(d LinkDisplay) {
	if d == nil {
		d = nopLink{}
	}
	c.link = d
}

// SetLogger attaches a logger for diagnostics. Nil restores the no-op.
func (c *PinchDrag) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	c.log = log
}

// Start starts the hand provider. On failure the controller disables
// itself; subsequent Update calls are no-ops. There is no retry.
func (c *PinchDrag) Start() error {
	if err := c.hands.Start(); err != nil {
		c.disabled = true
		c.log.Error("hand tracking unavailable, pinch-drag disabled", zap.Error(err))
		return err
	}
	return nil
}

// Stop stops the hand provider.
func (c *PinchDrag) Stop() error {
	return c.hands.Stop()
}

// Phase returns the current session phase.
func (c *PinchDrag) Phase() Phase {
	return c.phase
}

// Held returns the shape currently being moved, if any.
func (c *PinchDrag) Held() (ShapeID, bool) {
	if c.held != nil {
		return c.held.ID, true
	}
	return 0, false
}

// Highlighted returns the shape currently highlighted, if any.
func (c *PinchDrag) Highlighted() (ShapeID, bool) {
	if c.highlighted != nil {
		return c.highlighted.ID, true
	}
	return 0, false
}

// Update runs one frame of the state machine.
func (c *PinchDrag) Update() {
	if c.disabled {
		return
	}

	var states [numHandSides]HandState
	for _, side := range handSides {
		states[side] = c.hands.Hand(side)
	}

	// A due pickup fires before the frame branch, re-validated against the
	// current hand states rather than the ones at arm time.
	if c.pickupArmed && !c.now().Before(c.pickupAt) {
		c.finalizePickup(states)
	}

	switch c.phase {
	case PhaseSelecting:
		c.selectFrame(states)
	case PhaseMoving:
		c.moveFrame(states)
	}
}

// selectFrame handles one frame of the Selecting phase.
func (c *PinchDrag) selectFrame(states [numHandSides]HandState) {
	left, right := states[HandLeft], states[HandRight]

	// Two visible hands make selection ambiguous: idle everything and
	// stand down for the frame.
	if left.Visible && right.Visible {
		c.idleAll(nil)
		c.highlighted = nil
		c.pickupArmed = false
		return
	}

	var side HandSide
	switch {
	case left.Visible:
		side = HandLeft
	case right.Visible:
		side = HandRight
	default:
		return
	}
	state := states[side]

	if state.Pose == c.cfg.ResetPose {
		c.resetShapes()
		return
	}

	hit, ok := c.scene.Raycast(state.IndexTip)
	if !ok {
		if c.highlighted != nil {
			c.idleAll(nil)
			c.highlighted = nil
		}
		return
	}

	if shape := c.tracked(hit.Shape); shape != nil {
		if pos, ok := c.scene.Position(shape.ID); ok &&
			pos.Sub(state.IndexTip).Len() <= c.cfg.TouchRadius &&
			(c.highlighted == nil || c.highlighted.ID != shape.ID) {
			c.scene.SetColor(shape.ID, c.HighlightColor)
			c.idleAll(shape)
			c.highlighted = shape
			c.status.SetStatus(fmt.Sprintf("%s under %s hand", shape.Name, side))
		}
	}

	if c.highlighted != nil && !c.pickupArmed {
		if shape, ok := c.pinchShape(state); ok && shape.ID == c.highlighted.ID {
			c.pickupArmed = true
			c.pickupAt = c.now().Add(c.cfg.PinchHold)
			c.activeSide = side
			c.log.Debug("pickup armed",
				zap.String("hand", side.String()),
				zap.String("shape", shape.Name))
		}
	}
}

// finalizePickup fires the pending pickup: the pinch predicate is
// re-checked for whichever hand is visible now, and only a still-holding
// pinch on the highlighted shape transitions to Moving.
func (c *PinchDrag) finalizePickup(states [numHandSides]HandState) {
	c.pickupArmed = false

	if c.phase != PhaseSelecting || c.highlighted == nil {
		return
	}

	left, right := states[HandLeft], states[HandRight]
	var side HandSide
	switch {
	case left.Visible && right.Visible:
		// Same ambiguity rule as selection: no pickup with both hands up.
		return
	case left.Visible:
		side = HandLeft
	case right.Visible:
		side = HandRight
	default:
		return
	}

	shape, ok := c.pinchShape(states[side])
	if !ok || shape.ID != c.highlighted.ID {
		return
	}

	c.held = c.highlighted
	c.highlighted = nil
	c.activeSide = side
	c.scene.SetVelocity(c.held.ID, mgl64.Vec3{})
	c.scene.SetAngularVelocity(c.held.ID, mgl64.Vec3{})
	c.scene.SetColor(c.held.ID, c.held.IdleColor)
	c.hasLastPos = false
	c.phase = PhaseMoving
	c.status.SetStatus(fmt.Sprintf("picked up %s with %s hand", c.held.Name, side))
}

// moveFrame handles one frame of the Moving phase.
func (c *PinchDrag) moveFrame(states [numHandSides]HandState) {
	// Nothing held: clamp back to Selecting. The upstream behavior this
	// replaces dereferenced the absent shape here.
	if c.held == nil {
		c.link.ClearLink()
		c.phase = PhaseSelecting
		return
	}

	active := states[c.activeSide]
	free := states[c.activeSide.Other()]

	// Low-confidence frames are ignored outright: no move, no drop.
	if active.Visible && active.Confidence < c.cfg.ConfidenceFloor {
		return
	}

	if active.Visible {
		c.link.SetLink(active.ThumbTip, active.IndexTip)
	}

	// Each drop condition is sufficient on its own.
	switch {
	case !active.Visible && !free.Visible:
		c.drop("hands lost")
	case !active.Visible:
		c.drop("active hand lost")
	case free.Visible:
		c.drop("second hand visible")
	case active.PinchSpan() > c.cfg.MaxPinchWidth:
		c.drop("pinch released")
	default:
		target := midpoint(active.ThumbTip, active.IndexTip)
		if !c.hasLastPos || target != c.lastHeldPos {
			c.scene.SetPosition(c.held.ID, target)
			c.lastHeldPos = target
			c.hasLastPos = true
			c.status.SetStatus(fmt.Sprintf("moving %s", c.held.Name))
		}
	}
}

// drop releases the held shape and returns to Selecting.
func (c *PinchDrag) drop(reason string) {
	c.status.SetStatus(fmt.Sprintf("dropped %s (%s)", c.held.Name, reason))
	c.held = nil
	c.hasLastPos = false
	c.link.ClearLink()
	c.phase = PhaseSelecting
}

// resetShapes cancels all shape motion and restores home positions.
func (c *PinchDrag) resetShapes() {
	for i := range c.shapes {
		s := &c.shapes[i]
		c.scene.SetVelocity(s.ID, mgl64.Vec3{})
		c.scene.SetAngularVelocity(s.ID, mgl64.Vec3{})
		c.scene.SetPosition(s.ID, s.Home)
	}
	c.status.SetStatus("shapes reset")
}

// pinchShape evaluates the pinch predicate and returns the shape a holding
// pinch is acting on.
//
// The index tip is tested with a viewpoint ray; the thumb tip with a
// volumetric probe, because a ray is unreliable when the thumb occludes or
// is occluded by the target. Both must agree on the shape. The C pose then
// holds unconditionally; pinch and OK hold only with a deliberate gap
// between thumb and index; any other pose never holds.
func (c *PinchDrag) pinchShape(state HandState) (*TrackedShape, bool) {
	hit, ok := c.scene.Raycast(state.IndexTip)
	if !ok {
		return nil, false
	}
	shape := c.tracked(hit.Shape)
	if shape == nil {
		return nil, false
	}

	near := c.scene.OverlapSphere(state.ThumbTip, c.cfg.ThumbRadius)
	thumbAgrees := false
	for _, id := range near {
		if id == shape.ID {
			thumbAgrees = true
			break
		}
	}
	if !thumbAgrees {
		return nil, false
	}

	switch state.Pose {
	case PoseC:
		return shape, true
	case PosePinch, PoseOK:
		if state.PinchSpan() >= c.cfg.MinPinchGap {
			return shape, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// idleAll restores the idle color of every tracked shape except the given
// one. Pass nil to idle everything.
func (c *PinchDrag) idleAll(except *TrackedShape) {
	for i := range c.shapes {
		s := &c.shapes[i]
		if except != nil && s.ID == except.ID {
			continue
		}
		c.scene.SetColor(s.ID, s.IdleColor)
	}
}

// tracked returns the tracked shape with the given ID, or nil.
func (c *PinchDrag) tracked(id ShapeID) *TrackedShape {
	for i := range c.shapes {
		if c.shapes[i].ID == id {
			return &c.shapes[i]
		}
	}
	return nil
}
