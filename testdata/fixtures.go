// Package testdata draws synthetic camera frames for tests.
package testdata

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var white = color.RGBA{255, 255, 255, 0}

// Blank returns a black BGR frame.
func Blank(width, height int) *gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
	return &m
}

// Disc returns a black BGR frame with a filled white disc, the way a plate
// looks against a dark background.
func Disc(width, height, x, y, r int) *gocv.Mat {
	m := Blank(width, height)
	gocv.Circle(m, image.Pt(x, y), r, white, -1)
	return m
}

// DiscPath returns one Disc frame per x position, all at the same y and
// radius.
func DiscPath(width, height, y, r int, xs ...int) []*gocv.Mat {
	frames := make([]*gocv.Mat, len(xs))
	for i, x := range xs {
		frames[i] = Disc(width, height, x, y, r)
	}
	return frames
}

// CloseAll closes every frame.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
