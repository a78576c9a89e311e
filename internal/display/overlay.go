package display

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/steerlink/internal/detector"
	"github.com/ayusman/steerlink/internal/gesture"
)

var (
	green  = color.RGBA{0, 255, 0, 0}
	orange = color.RGBA{255, 128, 0, 0}
	blue   = color.RGBA{0, 0, 255, 0}
	red    = color.RGBA{255, 0, 0, 0}
	yellow = color.RGBA{255, 255, 0, 0}
	white  = color.RGBA{255, 255, 255, 0}
	gray   = color.RGBA{128, 128, 128, 0}
)

// Text anchors.
var (
	poseOrigin = image.Pt(50, 50)
	sideOrigin = image.Pt(50, 100)
)

// DrawLock outlines the locked circle and marks its center with a filled
// 10x10 square.
func DrawLock(frame *gocv.Mat, c detector.Circle) {
	gocv.Circle(frame, c.Center(), c.Radius, green, 4)
	gocv.Rectangle(frame, image.Rect(c.X-5, c.Y-5, c.X+5, c.Y+5), orange, -1)
}

// DrawDirection prints the latest direction label.
func DrawDirection(frame *gocv.Mat, label string) {
	gocv.PutText(frame, label, poseOrigin, gocv.FontHersheySimplex, 1, blue, 2)
}

// DrawHand draws landmark connections and joints.
func DrawHand(frame *gocv.Mat, hand *detector.HandLandmarks) {
	w, h := frame.Cols(), frame.Rows()
	for _, conn := range detector.HandConnections {
		gocv.Line(frame, hand.Pixel(conn[0], w, h), hand.Pixel(conn[1], w, h), white, 2)
	}
	for i := range hand.Points {
		gocv.Circle(frame, hand.Pixel(i, w, h), 4, red, -1)
	}
}

// DrawReading prints the pose and side of a hand.
func DrawReading(frame *gocv.Mat, r gesture.Reading) {
	gocv.PutText(frame, string(r.Pose), poseOrigin, gocv.FontHersheySimplex, 1, blue, 2)
	gocv.PutText(frame, "Hand on "+string(r.Side)+" Side", sideOrigin, gocv.FontHersheySimplex, 1, sideColor(r.Side), 2)
}

// DrawZones draws the zone boundaries as vertical lines.
func DrawZones(frame *gocv.Mat, z gesture.Zoning) {
	h := frame.Rows()
	for _, x := range z.Lines(frame.Cols()) {
		gocv.Line(frame, image.Pt(x, 0), image.Pt(x, h), gray, 1)
	}
}

func sideColor(s gesture.Side) color.RGBA {
	switch s {
	case gesture.SideLeft:
		return green
	case gesture.SideRight:
		return red
	default:
		return yellow
	}
}
