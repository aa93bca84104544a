package engine

import (
	"PBRShowcase/internal/logger"
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type LoopState int32

const (
	LoopIdle LoopState = iota
	LoopRunning
	LoopStopped
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopRunning:
		return "running"
	case LoopStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var ErrLoopStarted = errors.New("render loop already started")

// Host presents finished frames and decides when the loop must end, e.g.
// when the window is closed.
type Host interface {
	ShouldClose() bool
	// Present shows the frame and processes pending platform events.
	Present()
}

// Loop drives one frame per tick: advance behaviours, render, present.
type Loop struct {
	ctx   *Context
	clock Clock
	host  Host

	// Called after the scene is drawn and before the frame is presented.
	onFrame func(dt float64)

	state  atomic.Int32
	stop   atomic.Bool
	frames atomic.Int64
}

func NewLoop(ctx *Context, clock Clock, host Host) *Loop {
	return &Loop{ctx: ctx, clock: clock, host: host}
}

func (l *Loop) SetOnFrame(fn func(dt float64)) {
	l.onFrame = fn
}

func (l *Loop) State() LoopState {
	return LoopState(l.state.Load())
}

func (l *Loop) Frames() int64 {
	return l.frames.Load()
}

// Stop asks the loop to end after the current frame. Safe from any
// goroutine.
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// Tick runs one frame and reports whether another one should follow.
func (l *Loop) Tick() bool {
	dt := l.clock.Delta()

	if l.ctx.Behaviours != nil {
		l.ctx.Behaviours.UpdateAll(dt)
	}
	l.ctx.Renderer.Render(l.ctx.Scene, l.ctx.Camera)
	if l.onFrame != nil {
		l.onFrame(dt)
	}
	l.host.Present()
	l.frames.Inc()

	return !l.stop.Load() && !l.host.ShouldClose()
}

// Run ticks until Stop is called, the host closes or ctx is done. It must be
// called from the thread that owns the graphics context.
func (l *Loop) Run(ctx context.Context) error {
	if !l.state.CAS(int32(LoopIdle), int32(LoopRunning)) {
		return ErrLoopStarted
	}
	defer l.state.Store(int32(LoopStopped))

	start := time.Now()
	logger.Log.Info("Render loop started")
	defer func() {
		logger.Log.Info("Render loop stopped",
			zap.Int64("frames", l.frames.Load()),
			zap.Duration("uptime", time.Since(start)))
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.stop.Load() {
			return nil
		}
		if !l.Tick() {
			return nil
		}
	}
}
