package server

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// FrameHub keeps the latest JPEG-encoded frame and wakes stream handlers
// when a new one arrives. Frames are only encoded while someone watches.
type FrameHub struct {
	mu      sync.Mutex
	latest  []byte
	notify  chan struct{}
	closed  bool
	viewers atomic.Int32
}

// NewFrameHub creates an empty FrameHub.
func NewFrameHub() *FrameHub {
	return &FrameHub{notify: make(chan struct{})}
}

// Publish encodes frame as JPEG if there are viewers.
func (h *FrameHub) Publish(frame *gocv.Mat) {
	if h.viewers.Load() == 0 || frame == nil || frame.Empty() {
		return
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return
	}
	defer buf.Close()

	h.PublishJPEG(append([]byte(nil), buf.GetBytes()...))
}

// PublishJPEG stores an already encoded frame.
func (h *FrameHub) PublishJPEG(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = data
	close(h.notify)
	h.notify = make(chan struct{})
}

// Viewers returns the number of connected stream clients.
func (h *FrameHub) Viewers() int {
	return int(h.viewers.Load())
}

// Close wakes all handlers and stops accepting frames.
func (h *FrameHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.notify)
}

// wait returns a channel closed on the next publish, and whether the hub is
// still open.
func (h *FrameHub) wait() (<-chan struct{}, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.notify, !h.closed
}

func (h *FrameHub) frame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// StreamHandler serves the hub's frames as MJPEG.
type StreamHandler struct {
	hub *FrameHub
}

// NewStreamHandler creates a new StreamHandler reading from hub.
func NewStreamHandler(hub *FrameHub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// ServeHTTP streams MJPEG frames to the client until it disconnects.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	next, open := h.hub.wait()
	h.hub.viewers.Add(1)
	defer h.hub.viewers.Add(-1)

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flush(w)

	for ; open; next, open = h.hub.wait() {
		select {
		case <-r.Context().Done():
			return
		case <-next:
		}

		data := h.hub.frame()
		if len(data) == 0 {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data))
		if _, err := w.Write(data); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")
		flush(w)
	}
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
