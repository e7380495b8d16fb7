package grasp

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Updater is anything driven once per frame tick. Both gesture components
// implement it.
type Updater interface {
	Update()
}

// defaultTPS is the frame rate used when none is given.
const defaultTPS = 60

// Loop drives a set of Updaters at a fixed rate for hosts that have no
// game loop of their own (headless tests, scripted sessions, daemons).
// Hosts with an engine loop should skip Loop and call Update directly.
type Loop struct {
	tps      int
	updaters []Updater
	log      *zap.Logger

	// budget is the per-frame time past which a slow-frame warning is
	// logged. Derived from tps.
	budget time.Duration

	frames     uint64
	slowFrames uint64
}

// NewLoop creates a loop that ticks the given updaters tps times per
// second, in order. A tps of 0 or below means 60.
func NewLoop(tps int, updaters ...Updater) *Loop {
	if tps <= 0 {
		tps = defaultTPS
	}
	return &Loop{
		tps:      tps,
		updaters: updaters,
		log:      zap.NewNop(),
		budget:   time.Second / time.Duration(tps),
	}
}

// SetLogger attaches a logger for slow-frame warnings. Nil restores the
// no-op.
func (l *Loop) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	l.log = log
}

// Tick runs a single frame: every updater once, in registration order.
func (l *Loop) Tick() {
	start := time.Now()
	for _, u := range l.updaters {
		u.Update()
	}
	elapsed := time.Since(start)

	l.frames++
	if elapsed > l.budget {
		l.slowFrames++
		l.log.Warn("slow frame",
			zap.Duration("elapsed", elapsed),
			zap.Duration("budget", l.budget),
			zap.Uint64("frame", l.frames))
	}
}

// Run ticks until the context is canceled, then returns the context's
// error.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Frames returns the number of frames ticked so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// SlowFrames returns the number of frames that exceeded the frame budget.
func (l *Loop) SlowFrames() uint64 {
	return l.slowFrames
}
