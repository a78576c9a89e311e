package capture

import (
	"image"

	"gocv.io/x/gocv"
)

// Plate preprocessing defaults.
const (
	BlurKernel = 9
	BlurSigma  = 2.0
)

// Blur converts frame to grayscale and smooths it with a square Gaussian
// kernel. The caller closes the result.
func Blur(frame *gocv.Mat, kernel int, sigma float64) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	gocv.GaussianBlur(gray, &blurred, image.Pt(kernel, kernel), sigma, sigma, gocv.BorderDefault)
	return blurred
}

// Mirror flips frame around the vertical axis in place, so the user's right
// hand shows on the right of the image.
func Mirror(frame *gocv.Mat) {
	gocv.Flip(*frame, frame, 1)
}

// Bounds returns the frame rectangle with its origin at (0, 0).
func Bounds(frame *gocv.Mat) image.Rectangle {
	return image.Rect(0, 0, frame.Cols(), frame.Rows())
}
