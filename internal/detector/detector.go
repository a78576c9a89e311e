package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// CircleFinder searches one frame for circular shapes.
type CircleFinder interface {
	// FindCircles searches region (frame coordinates) for circles whose radius
	// lies in [minRadius, maxRadius]. Candidate centers are relative to the
	// region origin. Returns an empty slice when nothing is found.
	FindCircles(region image.Rectangle, minRadius, maxRadius int) ([]Circle, error)
}

// CircleSource produces a CircleFinder over one preprocessed frame.
type CircleSource interface {
	Bind(img *gocv.Mat) CircleFinder
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
	}
}
