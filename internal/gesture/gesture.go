// Package gesture classifies hand landmarks into a pose and a screen zone.
package gesture

import (
	"math"

	"github.com/ayusman/steerlink/internal/detector"
)

// Pose is the coarse hand shape.
type Pose string

const (
	OpenPalm   Pose = "Open Palm"
	ClosedFist Pose = "Closed Fist"
)

// DefaultOpenThreshold is the thumb-to-index L1 distance, in normalized
// image units, above which a hand counts as open.
const DefaultOpenThreshold = 0.1

// Reading is the classification of one detected hand.
type Reading struct {
	Pose   Pose `json:"pose"`
	Side   Side `json:"side"`
	WristX int  `json:"wristX"`
}

// Message formats the reading as sent to the game, e.g. "Open Palm - Right".
func (r Reading) Message() string {
	return string(r.Pose) + MessageSeparator + string(r.Side)
}

// PoseOf classifies a hand by the L1 distance between thumb tip and index tip.
func PoseOf(hand *detector.HandLandmarks, threshold float64) Pose {
	thumb := hand.Points[detector.ThumbTip]
	index := hand.Points[detector.IndexTip]

	distance := math.Abs(thumb.X-index.X) + math.Abs(thumb.Y-index.Y)
	if distance > threshold {
		return OpenPalm
	}
	return ClosedFist
}

// Classifier turns detected hands into readings.
type Classifier struct {
	OpenThreshold float64
	Zones         Zoning
}

// NewClassifier creates a Classifier with the default open threshold and
// the given zoning.
func NewClassifier(zones Zoning) *Classifier {
	return &Classifier{
		OpenThreshold: DefaultOpenThreshold,
		Zones:         zones,
	}
}

// Classify returns one reading for the hand in a frame of the given width.
func (c *Classifier) Classify(hand *detector.HandLandmarks, width int) Reading {
	wristX := int(hand.Points[detector.Wrist].X * float64(width))
	return Reading{
		Pose:   PoseOf(hand, c.OpenThreshold),
		Side:   c.Zones.Side(wristX, width),
		WristX: wristX,
	}
}

// ClassifyAll returns one reading per hand, in detection order.
func (c *Classifier) ClassifyAll(hands []detector.HandLandmarks, width int) []Reading {
	if len(hands) == 0 {
		return nil
	}
	readings := make([]Reading, len(hands))
	for i := range hands {
		readings[i] = c.Classify(&hands[i], width)
	}
	return readings
}
