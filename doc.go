// Package grasp is a frame-driven hand-gesture interaction framework.
//
// Grasp turns raw hand-tracking data — fingertip positions, confidence
// scores, and classified poses — into scene interactions: touch detection
// against tracked shapes, hover highlighting, and a pinch-and-drag state
// machine for picking shapes up and moving them.
//
// Grasp owns no tracking hardware, rendering, or physics. Those live behind
// three small provider interfaces supplied by the host:
//
//   - [HandProvider] answers per-hand visibility, keypoints, confidence,
//     and pose once per frame.
//   - [SceneQuery] casts rays and volumetric probes against tagged shapes
//     and mutates their color, position, and velocity.
//   - [StatusDisplay] is a write-only sink for human-readable state text.
//
// # Quick start
//
// Wire the components to providers, then drive them once per frame:
//
//	tracker := grasp.NewTouchTracker(hands, scene, shapes, cfg)
//	drag := grasp.NewPinchDrag(hands, scene, shapes, cfg)
//
//	loop := grasp.NewLoop(60, tracker, drag)
//	loop.Run(ctx)
//
// Or call Update yourself from an existing game loop:
//
//	func (g *Game) Update() error {
//		g.tracker.Update()
//		g.drag.Update()
//		return nil
//	}
//
// # Providers
//
// [World] is a ready-made in-memory [SceneQuery] holding sphere shapes —
// useful for tests, demos, and hosts that only need gesture semantics.
// [RemoteProvider] consumes landmark frames from a tracking daemon over a
// websocket; [ScriptProvider] replays JSON-scripted hand input for
// deterministic automated testing; [Stabilizer] smooths a noisy provider's
// keypoints with a sliding window.
//
// # Frame model
//
// Every component is single-threaded and cooperative: all state changes
// happen inside Update on the caller's frame tick. The pinch-and-drag
// pickup delay is a single-slot deadline re-validated at fire time, so
// repeated pinch attempts never stack pending pickups.
package grasp
