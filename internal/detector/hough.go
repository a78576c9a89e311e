package detector

import (
	"errors"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when searching a frame that holds no pixels.
var ErrEmptyFrame = errors.New("frame is empty")

// HoughConfig holds the Hough gradient parameters passed to OpenCV.
type HoughConfig struct {
	// DP is the inverse accumulator resolution ratio.
	DP float64
	// MinDist is the minimum distance between detected centers in pixels.
	MinDist float64
	// Param1 is the upper Canny threshold.
	Param1 float64
	// Param2 is the accumulator threshold; lower finds more (and falser) circles.
	Param2 float64
}

// DefaultHoughConfig returns the parameters used for plate tracking.
func DefaultHoughConfig() HoughConfig {
	return HoughConfig{
		DP:      1.2,
		MinDist: 50,
		Param1:  50,
		Param2:  30,
	}
}

// HoughDetector finds circles with the OpenCV Hough gradient method.
type HoughDetector struct {
	config HoughConfig
}

// NewHoughDetector creates a HoughDetector with the given parameters.
func NewHoughDetector(config HoughConfig) *HoughDetector {
	return &HoughDetector{config: config}
}

// Bind returns a CircleFinder that searches the given preprocessed
// (single channel, blurred) frame. The finder must not outlive the Mat.
func (d *HoughDetector) Bind(img *gocv.Mat) CircleFinder {
	return &matFinder{config: d.config, img: img}
}

type matFinder struct {
	config HoughConfig
	img    *gocv.Mat
}

func (f *matFinder) FindCircles(region image.Rectangle, minRadius, maxRadius int) ([]Circle, error) {
	if f.img == nil || f.img.Empty() {
		return nil, ErrEmptyFrame
	}

	region = region.Intersect(image.Rect(0, 0, f.img.Cols(), f.img.Rows()))
	if region.Empty() {
		return nil, nil
	}

	roi := f.img.Region(region)
	defer roi.Close()

	circles := gocv.NewMat()
	defer circles.Close()

	gocv.HoughCirclesWithParams(
		roi,
		&circles,
		gocv.HoughGradient,
		f.config.DP,
		f.config.MinDist,
		f.config.Param1,
		f.config.Param2,
		minRadius,
		maxRadius,
	)

	if circles.Empty() {
		return nil, nil
	}

	result := make([]Circle, 0, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		if len(v) < 3 {
			continue
		}
		result = append(result, Circle{
			X:      int(math.Round(float64(v[0]))),
			Y:      int(math.Round(float64(v[1]))),
			Radius: int(math.Round(float64(v[2]))),
		})
	}

	return result, nil
}
