package app

import (
	"context"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/steerlink/internal/capture"
	"github.com/ayusman/steerlink/internal/detector"
	"github.com/ayusman/steerlink/internal/display"
	"github.com/ayusman/steerlink/internal/gesture"
	"github.com/ayusman/steerlink/internal/metrics"
	"github.com/ayusman/steerlink/internal/signal"
)

// HandConfig wires the hand steering loop.
type HandConfig struct {
	Camera     capture.Camera
	Detector   detector.Detector
	Classifier *gesture.Classifier
	Sink       signal.Sink
	Keys       *signal.KeyDriver
	Display    display.Display
	Metrics    *metrics.Metrics
	Hooks      Hooks

	// Motion, when set, skips landmark inference on still frames and reuses
	// the previous hands instead.
	Motion *capture.MotionDetector
}

// HandLoop classifies every detected hand and emits "<Pose> - <Side>" per
// hand per frame.
type HandLoop struct {
	loop
	detector   detector.Detector
	classifier *gesture.Classifier
	keys       *signal.KeyDriver
	motion     *capture.MotionDetector

	hands    []detector.HandLandmarks
	readings []gesture.Reading
}

// NewHandLoop creates a HandLoop. Camera and Detector are required.
func NewHandLoop(config HandConfig) *HandLoop {
	l := &HandLoop{
		loop: loop{
			name:    "hand",
			camera:  config.Camera,
			sink:    config.Sink,
			display: config.Display,
			metrics: config.Metrics,
			hooks:   config.Hooks,
		},
		detector:   config.Detector,
		classifier: config.Classifier,
		keys:       config.Keys,
		motion:     config.Motion,
	}
	l.init()
	if l.classifier == nil {
		l.classifier = gesture.NewClassifier(gesture.ThreeZones)
	}
	return l
}

// Run classifies until quit, cancellation or a frame read failure. It
// releases held keys and closes the detector, camera, display and sink on
// return.
func (l *HandLoop) Run(ctx context.Context) error {
	defer l.release()
	return l.run(ctx, l)
}

// Readings returns the readings of the last frame.
func (l *HandLoop) Readings() []gesture.Reading {
	return l.readings
}

func (l *HandLoop) step() (bool, error) {
	frame, err := l.readFrame()
	if err != nil {
		return false, err
	}
	defer frame.Close()
	start := time.Now()

	capture.Mirror(frame)
	l.hands = l.detect(frame)
	l.readings = l.classifier.ClassifyAll(l.hands, frame.Cols())
	if len(l.readings) > 0 {
		l.metrics.Detections.Add(1)
	}

	display.DrawZones(frame, l.classifier.Zones)
	for i, r := range l.readings {
		display.DrawHand(frame, &l.hands[i])
		display.DrawReading(frame, r)
		l.emit(r.Message())
	}
	l.drive()
	l.metrics.ObserveFrame(time.Since(start))

	return l.present(frame), nil
}

// detect runs landmark inference, or reuses the previous hands when the
// motion gate says nothing moved. Errors count as no hands.
func (l *HandLoop) detect(frame *gocv.Mat) []detector.HandLandmarks {
	if l.motion != nil {
		if moved, _ := l.motion.Detect(frame); !moved {
			return l.hands
		}
	}

	hands, err := l.detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		l.metrics.DetectionErrors.Add(1)
		return nil
	}
	return hands
}

// drive feeds the first hand's reading to the key driver. While emission is
// paused every key is let go.
func (l *HandLoop) drive() {
	if l.keys == nil {
		return
	}

	var err error
	switch {
	case !l.hooks.enabled():
		err = l.keys.Release()
	case len(l.readings) == 0:
		err = l.keys.Apply(nil)
	default:
		err = l.keys.Apply(&l.readings[0])
	}
	if err != nil {
		log.Printf("Error sending keys: %v", err)
		l.metrics.SendErrors.Add(1)
	}
}

func (l *HandLoop) release() {
	if l.keys != nil {
		if err := l.keys.Release(); err != nil {
			log.Printf("Error releasing keys: %v", err)
		}
	}
	if l.motion != nil {
		l.motion.Close()
	}
	if err := l.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}
}
