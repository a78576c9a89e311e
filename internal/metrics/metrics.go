// Package metrics counts what the capture loops do and exposes the counts
// in Prometheus text format.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the loop counters.
type Metrics struct {
	// Frames
	FramesRead  atomic.Uint64
	ReadErrors  atomic.Uint64
	FrameTimeMs atomic.Uint64 // last read-to-emit duration

	// Detection
	Detections      atomic.Uint64 // frames with at least one circle or hand
	DetectionErrors atomic.Uint64
	LocksAcquired   atomic.Uint64
	LocksLost       atomic.Uint64
	Locked          atomic.Uint64 // 0 = unlocked, 1 = locked

	// Signals
	SignalsSent atomic.Uint64
	SendErrors  atomic.Uint64

	registry *prometheus.Registry
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.register()
	return m
}

func (m *Metrics) register() {
	gauges := []struct {
		name, help string
		v          *atomic.Uint64
	}{
		{"steerlink_frames_read_total", "Total frames read from the camera", &m.FramesRead},
		{"steerlink_read_errors_total", "Total failed frame reads", &m.ReadErrors},
		{"steerlink_frame_time_ms", "Last frame processing time in milliseconds", &m.FrameTimeMs},
		{"steerlink_detections_total", "Frames with at least one detection", &m.Detections},
		{"steerlink_detection_errors_total", "Total detector errors", &m.DetectionErrors},
		{"steerlink_locks_acquired_total", "Times a target lock was acquired", &m.LocksAcquired},
		{"steerlink_locks_lost_total", "Times a target lock was dropped", &m.LocksLost},
		{"steerlink_locked", "Target lock held (0=no, 1=yes)", &m.Locked},
		{"steerlink_signals_sent_total", "Total signals emitted", &m.SignalsSent},
		{"steerlink_send_errors_total", "Total failed signal emissions", &m.SendErrors},
	}

	for _, g := range gauges {
		v := g.v
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: g.name, Help: g.help},
			func() float64 { return float64(v.Load()) },
		))
	}
}

// SetLocked records the current lock state.
func (m *Metrics) SetLocked(locked bool) {
	if locked {
		m.Locked.Store(1)
	} else {
		m.Locked.Store(0)
	}
}

// ObserveFrame records how long one iteration took.
func (m *Metrics) ObserveFrame(d time.Duration) {
	m.FrameTimeMs.Store(uint64(d.Milliseconds()))
}

// Handler returns the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
