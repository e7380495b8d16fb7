package grasp

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// scriptStep is a single action in a hand-input script.
type scriptStep struct {
	Action     string      `json:"action"`
	Hand       string      `json:"hand,omitempty"`
	Pose       string      `json:"pose,omitempty"`
	Index      *[3]float64 `json:"index,omitempty"`
	Thumb      *[3]float64 `json:"thumb,omitempty"`
	Confidence *float64    `json:"confidence,omitempty"`
	Frames     int         `json:"frames,omitempty"`
}

// handScript is the top-level JSON structure for a hand-input script.
type handScript struct {
	Steps []scriptStep `json:"steps"`
}

// moveAnim holds an in-flight interpolated move.
type moveAnim struct {
	side       HandSide
	fromIndex  mgl64.Vec3
	fromThumb  mgl64.Vec3
	toIndex    mgl64.Vec3
	toThumb    mgl64.Vec3
	frame      int
	frames     int
}

// ScriptProvider is a HandProvider that replays a JSON script of hand
// actions, one step per frame, for deterministic automated gesture tests.
//
// Supported actions:
//
//	show  — make a hand visible at the given index/thumb keypoints, with
//	        an optional pose and confidence (default 1.0)
//	move  — linearly interpolate a visible hand's keypoints to a target
//	        over the given number of frames
//	pose  — change a visible hand's pose (and optionally confidence)
//	hide  — make a hand invisible
//	wait  — hold the current state for the given number of frames
//
// Call Advance once per frame before the components' Update.
type ScriptProvider struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	move      *moveAnim
	done      bool

	states [numHandSides]HandState
}

// LoadScript parses a JSON hand script and returns a ScriptProvider ready
// to drive frames.
func LoadScript(jsonData []byte) (*ScriptProvider, error) {
	var script handScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse hand script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse hand script: no steps")
	}
	return &ScriptProvider{steps: script.Steps}, nil
}

// Start implements HandProvider. It never fails.
func (p *ScriptProvider) Start() error { return nil }

// Stop implements HandProvider.
func (p *ScriptProvider) Stop() error { return nil }

// Hand implements HandProvider.
func (p *ScriptProvider) Hand(side HandSide) HandState {
	return p.states[side]
}

// Done reports whether the script has fully played out.
func (p *ScriptProvider) Done() bool {
	return p.done
}

// Advance plays one frame of the script.
func (p *ScriptProvider) Advance() {
	if p.done {
		return
	}

	// An in-flight move consumes frames before the cursor advances.
	if p.move != nil {
		p.stepMove()
		return
	}
	if p.waitCount > 0 {
		p.waitCount--
		return
	}
	if p.cursor >= len(p.steps) {
		p.done = true
		return
	}

	st := p.steps[p.cursor]
	p.cursor++
	p.exec(st)
}

// exec applies a single script step.
func (p *ScriptProvider) exec(st scriptStep) {
	switch st.Action {
	case "wait":
		if st.Frames > 1 {
			p.waitCount = st.Frames - 1
		}
	case "show":
		side := parseScriptSide(st.Hand)
		state := HandState{Visible: true, Confidence: 1}
		if st.Index != nil {
			state.IndexTip = vec3(*st.Index)
		}
		if st.Thumb != nil {
			state.ThumbTip = vec3(*st.Thumb)
		}
		if st.Confidence != nil {
			state.Confidence = *st.Confidence
		}
		if st.Pose != "" {
			if pose, err := ParsePose(st.Pose); err == nil {
				state.Pose = pose
			}
		}
		p.states[side] = state
	case "hide":
		p.states[parseScriptSide(st.Hand)] = HandState{}
	case "pose":
		side := parseScriptSide(st.Hand)
		if !p.states[side].Visible {
			return
		}
		if st.Pose != "" {
			if pose, err := ParsePose(st.Pose); err == nil {
				p.states[side].Pose = pose
			}
		}
		if st.Confidence != nil {
			p.states[side].Confidence = *st.Confidence
		}
	case "move":
		side := parseScriptSide(st.Hand)
		if !p.states[side].Visible {
			return
		}
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		anim := &moveAnim{
			side:      side,
			fromIndex: p.states[side].IndexTip,
			fromThumb: p.states[side].ThumbTip,
			toIndex:   p.states[side].IndexTip,
			toThumb:   p.states[side].ThumbTip,
			frames:    frames,
		}
		if st.Index != nil {
			anim.toIndex = vec3(*st.Index)
		}
		if st.Thumb != nil {
			anim.toThumb = vec3(*st.Thumb)
		}
		p.move = anim
		p.stepMove()
	}
}

// stepMove advances the current interpolated move by one frame.
func (p *ScriptProvider) stepMove() {
	m := p.move
	m.frame++
	t := float64(m.frame) / float64(m.frames)

	state := &p.states[m.side]
	state.IndexTip = m.fromIndex.Add(m.toIndex.Sub(m.fromIndex).Mul(t))
	state.ThumbTip = m.fromThumb.Add(m.toThumb.Sub(m.fromThumb).Mul(t))

	if m.frame >= m.frames {
		p.move = nil
	}
}

// parseScriptSide maps a script hand name to a side; anything but "left"
// is the right hand.
func parseScriptSide(name string) HandSide {
	if name == "left" {
		return HandLeft
	}
	return HandRight
}

// vec3 converts a script coordinate triple.
func vec3(v [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}
