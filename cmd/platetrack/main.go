// Command platetrack locks on the largest circle the webcam sees and writes
// its horizontal direction (left, right or none) to a text file every frame.
package main

import (
	"context"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/ayusman/steerlink/internal/app"
	"github.com/ayusman/steerlink/internal/capture"
	"github.com/ayusman/steerlink/internal/config"
	"github.com/ayusman/steerlink/internal/detector"
	"github.com/ayusman/steerlink/internal/display"
	"github.com/ayusman/steerlink/internal/metrics"
	"github.com/ayusman/steerlink/internal/signal"
	"github.com/ayusman/steerlink/internal/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	session := app.StartSession("platetrack")

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	file := signal.NewFileSink(cfg.DirectionFile)
	sinks := signal.Multi{file}
	if cfg.PlateUDP {
		udp, err := signal.NewUDPSink(cfg.UDPAddr)
		if err != nil {
			log.Fatalf("Failed to open UDP sink: %v", err)
		}
		sinks = append(sinks, udp)
	}
	log.Printf("Writing direction to %s", file.Path())

	m := metrics.New()
	hooks, stopMonitor := app.Monitor(cfg.MonitorAddr, "plate", session, m)
	defer stopMonitor()

	loop := app.NewPlateLoop(app.PlateConfig{
		Camera: capture.NewCamera(capture.Options{
			DeviceID: cfg.CameraID,
			Width:    cfg.FrameWidth,
			Height:   cfg.FrameHeight,
			FPS:      cfg.FPS,
		}),
		Circles: detector.NewHoughDetector(detector.HoughConfig{
			DP:      cfg.HoughDP,
			MinDist: cfg.HoughMinDist,
			Param1:  cfg.HoughParam1,
			Param2:  cfg.HoughParam2,
		}),
		Tracker: tracking.New(tracking.Config{
			MinRadius:          cfg.MinRadius,
			MaxRadius:          cfg.MaxRadius,
			RefineTolerance:    cfg.RefineTolerance,
			BoundsCheck:        cfg.BoundsCheck,
			DirectionThreshold: cfg.DirectionThreshold,
		}),
		Sink:       sinks,
		Display:    display.New(cfg.ShowWindow, display.PlateTitle),
		Metrics:    m,
		Hooks:      hooks,
		BlurKernel: cfg.BlurKernel,
		BlurSigma:  cfg.BlurSigma,
	})

	if err := loop.Run(ctx); err != nil {
		log.Printf("Plate tracking ended: %v", err)
		stopMonitor()
		os.Exit(1)
	}
}
