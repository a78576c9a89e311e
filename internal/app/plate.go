package app

import (
	"context"
	"log"
	"time"

	"github.com/ayusman/steerlink/internal/capture"
	"github.com/ayusman/steerlink/internal/detector"
	"github.com/ayusman/steerlink/internal/display"
	"github.com/ayusman/steerlink/internal/metrics"
	"github.com/ayusman/steerlink/internal/signal"
	"github.com/ayusman/steerlink/internal/tracking"
)

// PlateConfig wires the plate tracking loop.
type PlateConfig struct {
	Camera  capture.Camera
	Circles detector.CircleSource
	Tracker *tracking.Tracker
	Sink    signal.Sink
	Display display.Display
	Metrics *metrics.Metrics
	Hooks   Hooks

	BlurKernel int
	BlurSigma  float64
}

// PlateLoop locks on the largest circle in view and emits its horizontal
// direction every frame it stays locked.
type PlateLoop struct {
	loop
	circles    detector.CircleSource
	tracker    *tracking.Tracker
	blurKernel int
	blurSigma  float64

	state tracking.State
	last  tracking.Direction
}

// NewPlateLoop creates a PlateLoop. Camera and Circles are required.
func NewPlateLoop(config PlateConfig) *PlateLoop {
	l := &PlateLoop{
		loop: loop{
			name:    "plate",
			camera:  config.Camera,
			sink:    config.Sink,
			display: config.Display,
			metrics: config.Metrics,
			hooks:   config.Hooks,
		},
		circles:    config.Circles,
		tracker:    config.Tracker,
		blurKernel: config.BlurKernel,
		blurSigma:  config.BlurSigma,
	}
	l.init()
	if l.tracker == nil {
		l.tracker = tracking.New(tracking.DefaultConfig())
	}
	if l.blurKernel <= 0 {
		l.blurKernel = capture.BlurKernel
	}
	if l.blurSigma <= 0 {
		l.blurSigma = capture.BlurSigma
	}
	return l
}

// Run tracks until quit, cancellation or a frame read failure. It closes the
// camera, display and sink on return.
func (l *PlateLoop) Run(ctx context.Context) error {
	return l.run(ctx, l)
}

// State returns the tracker state after the last frame.
func (l *PlateLoop) State() tracking.State {
	return l.state
}

func (l *PlateLoop) step() (bool, error) {
	frame, err := l.readFrame()
	if err != nil {
		return false, err
	}
	defer frame.Close()
	start := time.Now()

	blurred := capture.Blur(frame, l.blurKernel, l.blurSigma)
	res, err := l.tracker.Update(l.state, capture.Bounds(frame), l.circles.Bind(&blurred))
	blurred.Close()

	if err != nil {
		log.Printf("Error detecting circles: %v", err)
		l.metrics.DetectionErrors.Add(1)
	} else {
		l.apply(res)
	}

	if l.state.Locked {
		display.DrawLock(frame, l.state.Target)
	}
	if l.last != "" {
		display.DrawDirection(frame, string(l.last))
	}
	l.metrics.ObserveFrame(time.Since(start))

	return l.present(frame), nil
}

func (l *PlateLoop) apply(res tracking.Result) {
	l.state = res.State
	l.metrics.SetLocked(l.state.Locked)

	switch res.Transition {
	case tracking.Acquired:
		t := l.state.Target
		log.Printf("Locked on circle at (%d, %d) r=%d", t.X, t.Y, t.Radius)
		l.metrics.LocksAcquired.Add(1)
		l.metrics.Detections.Add(1)
	case tracking.Refined:
		l.metrics.Detections.Add(1)
	case tracking.Lost:
		log.Println("Target left the frame, lock released")
		l.metrics.LocksLost.Add(1)
		l.last = ""
	}

	if res.HasDirection {
		l.last = res.Direction
		l.emit(string(res.Direction))
	}
}
