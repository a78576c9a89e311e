// Package detector provides the vision backends behind small capability
// interfaces: hand landmark inference and Hough circle search.
package detector

import "image"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// HandConnections lists the landmark pairs joined when drawing a hand skeleton.
var HandConnections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized to [0, 1] by image width and height.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Pixel converts landmark i to pixel coordinates in a frame of the given size.
func (h *HandLandmarks) Pixel(i, width, height int) image.Point {
	p := h.Points[i]
	return image.Point{X: int(p.X * float64(width)), Y: int(p.Y * float64(height))}
}

// Circle is a circle in pixel coordinates.
type Circle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// Center returns the circle center as a point.
func (c Circle) Center() image.Point {
	return image.Point{X: c.X, Y: c.Y}
}

// Bounds returns the square enclosing the circle (center ± radius).
func (c Circle) Bounds() image.Rectangle {
	return image.Rect(c.X-c.Radius, c.Y-c.Radius, c.X+c.Radius, c.Y+c.Radius)
}

// Largest returns the candidate with the largest radius. Ties keep the first
// one found. ok is false when circles is empty.
func Largest(circles []Circle) (best Circle, ok bool) {
	for i, c := range circles {
		if i == 0 || c.Radius > best.Radius {
			best = c
		}
	}
	return best, len(circles) > 0
}
