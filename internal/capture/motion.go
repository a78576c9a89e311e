package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

const (
	motionBlurSize = 21
	motionDiff     = 25
)

// MotionDetector reports whether a frame differs from the previous one by
// more than a percentage of changed pixels. The hand loop uses it to skip
// landmark inference on still frames.
type MotionDetector struct {
	threshold float64
	prev      gocv.Mat
	primed    bool
	mu        sync.Mutex
}

// NewMotionDetector creates a detector that fires when more than threshold
// percent of the pixels change.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		prev:      gocv.NewMat(),
	}
}

// Detect compares frame with the previous call's frame and returns whether
// it moved along with the changed percentage. The first frame always counts
// as motion so the caller has something to start from.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	blurred := Blur(frame, motionBlurSize, 0)
	defer blurred.Close()

	if !m.primed || blurred.Rows() != m.prev.Rows() || blurred.Cols() != m.prev.Cols() {
		blurred.CopyTo(&m.prev)
		m.primed = true
		return true, 100
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prev, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, motionDiff, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(mask)) / float64(mask.Rows()*mask.Cols()) * 100
	blurred.CopyTo(&m.prev)

	return changed > m.threshold, changed
}

// Reset forgets the previous frame.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.primed = false
}

// Close releases the stored frame.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prev.Close()
	m.prev = gocv.NewMat()
	m.primed = false
}

