// Package app runs the capture loops: read a frame, preprocess it, detect,
// decide, emit a signal, show the annotated frame.
package app

import (
	"context"
	"fmt"
	"log"

	"gocv.io/x/gocv"

	"github.com/ayusman/steerlink/internal/capture"
	"github.com/ayusman/steerlink/internal/display"
	"github.com/ayusman/steerlink/internal/metrics"
	"github.com/ayusman/steerlink/internal/signal"
)

// Hooks lets optional observers follow a loop. Any field may be nil.
type Hooks struct {
	// Frame receives each annotated frame before it is displayed. The frame
	// is closed after the call returns.
	Frame func(frame *gocv.Mat)
	// Signal receives each payload after it was handed to the sink.
	Signal func(payload string)
	// Enabled gates emission. Nil means always enabled.
	Enabled func() bool
}

func (h Hooks) enabled() bool {
	return h.Enabled == nil || h.Enabled()
}

// stepper is one iteration of a capture loop.
type stepper interface {
	step() (quit bool, err error)
}

// loop holds what both capture loops share.
type loop struct {
	name    string
	camera  capture.Camera
	sink    signal.Sink
	display display.Display
	metrics *metrics.Metrics
	hooks   Hooks
}

func (l *loop) init() {
	if l.sink == nil {
		l.sink = signal.Multi{}
	}
	if l.display == nil {
		l.display = display.Headless{}
	}
	if l.metrics == nil {
		l.metrics = metrics.New()
	}
}

// run opens the camera and calls s.step until the user quits, ctx is
// cancelled or the frame source fails.
func (l *loop) run(ctx context.Context, s stepper) error {
	if err := l.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer l.close()

	log.Printf("%s loop started", l.name)
	for {
		select {
		case <-ctx.Done():
			log.Printf("%s loop stopped", l.name)
			return nil
		default:
		}

		quit, err := s.step()
		if err != nil {
			return err
		}
		if quit {
			log.Printf("%s loop: quit requested", l.name)
			return nil
		}
	}
}

// readFrame reads the next frame. A failure ends the loop.
func (l *loop) readFrame() (*gocv.Mat, error) {
	frame, err := l.camera.ReadFrame()
	if err != nil {
		log.Printf("failed to grab frame: %v", err)
		l.metrics.ReadErrors.Add(1)
		return nil, fmt.Errorf("read frame: %w", err)
	}
	l.metrics.FramesRead.Add(1)
	return frame, nil
}

// emit hands payload to the sink. Send failures are logged and counted;
// the loop keeps going.
func (l *loop) emit(payload string) {
	if !l.hooks.enabled() {
		return
	}
	if err := l.sink.Emit(payload); err != nil {
		log.Printf("Error sending %q: %v", payload, err)
		l.metrics.SendErrors.Add(1)
	} else {
		l.metrics.SignalsSent.Add(1)
	}
	if l.hooks.Signal != nil {
		l.hooks.Signal(payload)
	}
}

// present publishes and shows frame, then reports whether to quit.
func (l *loop) present(frame *gocv.Mat) bool {
	if l.hooks.Frame != nil {
		l.hooks.Frame(frame)
	}
	return l.display.Show(frame)
}

func (l *loop) close() {
	if err := l.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if err := l.display.Close(); err != nil {
		log.Printf("Error closing display: %v", err)
	}
	if err := l.sink.Close(); err != nil {
		log.Printf("Error closing sink: %v", err)
	}
}
