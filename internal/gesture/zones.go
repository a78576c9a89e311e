package gesture

import (
	"fmt"
	"strings"
)

// Side is the horizontal zone of the frame the wrist is in.
type Side string

const (
	SideLeft   Side = "Left"
	SideCenter Side = "Center"
	SideRight  Side = "Right"
)

// Boundary splits two zones at a fraction of the frame width. Everything
// strictly left of the boundary belongs to the zone before it.
type Boundary struct {
	Fraction float64
	Before   Side
}

// Zoning is an ordered set of boundaries followed by the rightmost zone.
// An x exactly on a boundary belongs to the zone to its right.
type Zoning struct {
	Name       string
	Boundaries []Boundary
	Last       Side
}

// TwoZones splits the frame at half width: Left | Right.
var TwoZones = Zoning{
	Name:       "two",
	Boundaries: []Boundary{{Fraction: 0.5, Before: SideLeft}},
	Last:       SideRight,
}

// ThreeZones splits the frame in thirds: Left | Center | Right.
var ThreeZones = Zoning{
	Name: "three",
	Boundaries: []Boundary{
		{Fraction: 1.0 / 3.0, Before: SideLeft},
		{Fraction: 2.0 / 3.0, Before: SideCenter},
	},
	Last: SideRight,
}

// ZoningByCount returns TwoZones or ThreeZones.
func ZoningByCount(n int) (Zoning, error) {
	switch n {
	case 2:
		return TwoZones, nil
	case 3:
		return ThreeZones, nil
	default:
		return Zoning{}, fmt.Errorf("unsupported zone count %d (want 2 or 3)", n)
	}
}

// Side returns the zone containing pixel x in a frame of the given width.
// Boundaries are truncated to whole pixels, the same positions Lines draws.
func (z Zoning) Side(x, width int) Side {
	for i, line := range z.Lines(width) {
		if x < line {
			return z.Boundaries[i].Before
		}
	}
	return z.Last
}

// Sides lists the zones left to right.
func (z Zoning) Sides() []Side {
	sides := make([]Side, 0, len(z.Boundaries)+1)
	for _, b := range z.Boundaries {
		sides = append(sides, b.Before)
	}
	return append(sides, z.Last)
}

// Lines returns the pixel x positions of the boundaries for drawing.
func (z Zoning) Lines(width int) []int {
	lines := make([]int, len(z.Boundaries))
	for i, b := range z.Boundaries {
		lines[i] = int(b.Fraction * float64(width))
	}
	return lines
}

func (z Zoning) String() string {
	names := make([]string, 0, len(z.Boundaries)+1)
	for _, s := range z.Sides() {
		names = append(names, string(s))
	}
	return strings.Join(names, "|")
}
