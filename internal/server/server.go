// Package server exposes a local monitor for a running capture loop: health,
// Prometheus metrics, an MJPEG preview and a WebSocket feed of emitted
// signals.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/steerlink/internal/metrics"
)

// Config holds the server configuration.
type Config struct {
	// Loop names the capture loop being monitored ("plate" or "hand").
	Loop    string
	Session string
	Metrics *metrics.Metrics
}

// Server is the monitor HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	frames *FrameHub
	events *EventHub
	http   *http.Server
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
		frames: NewFrameHub(),
		events: NewEventHub(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/stream", NewStreamHandler(s.frames))
	s.mux.Handle("/api/events", s.events)
	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", s.config.Metrics.Handler())
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// PublishFrame offers an annotated frame to stream viewers.
func (s *Server) PublishFrame(frame *gocv.Mat) {
	s.frames.Publish(frame)
}

// PublishSignal broadcasts an emitted payload to event subscribers.
func (s *Server) PublishSignal(payload string) {
	s.events.Broadcast(Event{
		Loop:      s.config.Loop,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Frames returns the frame hub.
func (s *Server) Frames() *FrameHub {
	return s.frames
}

// Events returns the event hub.
func (s *Server) Events() *EventHub {
	return s.events
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "ok",
		"loop":    s.config.Loop,
		"session": s.config.Session,
		"uptime":  time.Since(s.start).String(),
		"viewers": s.frames.Viewers(),
		"clients": s.events.Clients(),
	}
	if last, ok := s.events.Last(); ok {
		response["lastSignal"] = last.Payload
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Start serves on addr in the background until Shutdown.
func (s *Server) Start(addr string) {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("Monitor listening on http://%s", addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Monitor server error: %v", err)
		}
	}()
}

// Shutdown stops the server started by Start and disconnects subscribers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.events.Close()
	s.frames.Close()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
