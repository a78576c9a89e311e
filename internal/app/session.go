package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/steerlink/internal/metrics"
	"github.com/ayusman/steerlink/internal/server"
)

// StartSession tags every log line of this run with a fresh session id and
// returns the id.
func StartSession(name string) string {
	id := uuid.NewString()
	log.SetPrefix("[" + name + " " + id[:8] + "] ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("Session %s", id)
	return id
}

// Monitor starts the monitor server on addr and returns hooks feeding it.
// With an empty addr it returns zero hooks and a no-op stop.
func Monitor(addr, loop, session string, m *metrics.Metrics) (Hooks, func()) {
	if addr == "" {
		return Hooks{}, func() {}
	}

	srv := server.New(server.Config{Loop: loop, Session: session, Metrics: m})
	srv.Start(addr)

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Error stopping monitor: %v", err)
		}
	}
	return Hooks{Frame: srv.PublishFrame, Signal: srv.PublishSignal}, stop
}

// Chain combines two hook sets; both observers run, and emission requires
// both gates.
func Chain(a, b Hooks) Hooks {
	return Hooks{
		Frame: func(f *gocv.Mat) {
			if a.Frame != nil {
				a.Frame(f)
			}
			if b.Frame != nil {
				b.Frame(f)
			}
		},
		Signal: func(p string) {
			if a.Signal != nil {
				a.Signal(p)
			}
			if b.Signal != nil {
				b.Signal(p)
			}
		},
		Enabled: func() bool { return a.enabled() && b.enabled() },
	}
}
