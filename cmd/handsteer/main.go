// Command handsteer classifies hands seen by the webcam as an open palm or a
// closed fist on the left, center or right of the frame, and sends the
// result to the game over UDP and, optionally, as arrow key presses.
package main

import (
	"context"
	"log"
	"os"
	"os/exec"
	ossignal "os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/ayusman/steerlink/internal/app"
	"github.com/ayusman/steerlink/internal/capture"
	"github.com/ayusman/steerlink/internal/config"
	"github.com/ayusman/steerlink/internal/detector"
	"github.com/ayusman/steerlink/internal/display"
	"github.com/ayusman/steerlink/internal/gesture"
	"github.com/ayusman/steerlink/internal/metrics"
	"github.com/ayusman/steerlink/internal/signal"
	"github.com/ayusman/steerlink/internal/tray"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	session := app.StartSession("handsteer")

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zones, err := gesture.ZoningByCount(cfg.Zones)
	if err != nil {
		log.Fatalf("Invalid zones: %v", err)
	}
	classifier := gesture.NewClassifier(zones)
	classifier.OpenThreshold = cfg.OpenPalmThreshold
	log.Printf("Zones: %s", zones)

	det, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:        cfg.MaxHands,
		MinConfidence:   cfg.MinDetectionConf,
		MinTrackingConf: cfg.MinTrackingConf,
	})
	if err != nil {
		log.Fatalf("MediaPipe not available: %v", err)
	}

	var sinks signal.Multi
	if cfg.UDPEnabled {
		udp, err := signal.NewUDPSink(cfg.UDPAddr)
		if err != nil {
			log.Fatalf("Failed to open UDP sink: %v", err)
		}
		sinks = append(sinks, udp)
		log.Printf("Sending gestures to udp://%s", cfg.UDPAddr)
	}

	var keys *signal.KeyDriver
	if cfg.KeysEnabled {
		mode, err := signal.ParseKeyMode(cfg.KeyMode)
		if err != nil {
			log.Fatalf("Invalid key mode: %v", err)
		}
		keys = signal.NewKeyDriver(signal.NewRobotKeyboard(), mode, nil)
		log.Printf("Driving arrow keys (%s mode)", mode)
	}

	var motion *capture.MotionDetector
	if cfg.MotionThreshold > 0 {
		motion = capture.NewMotionDetector(cfg.MotionThreshold)
	}

	m := metrics.New()
	hooks, stopMonitor := app.Monitor(cfg.MonitorAddr, "hand", session, m)
	defer stopMonitor()

	var tr *tray.Tray
	if cfg.Tray {
		tr = tray.New("steerlink")
		hooks = app.Chain(hooks, app.Hooks{Signal: tr.SetLastSignal, Enabled: tr.IsEnabled})
		tr.OnToggle(func(enabled bool) {
			if enabled {
				log.Println("Sending resumed")
			} else {
				log.Println("Sending paused")
			}
		})
		tr.OnQuit(stop)
		if cfg.MonitorAddr != "" {
			tr.OnMonitor(func() { openBrowser(monitorURL(cfg.MonitorAddr)) })
		}
	}

	loop := app.NewHandLoop(app.HandConfig{
		Camera: capture.NewCamera(capture.Options{
			DeviceID: cfg.CameraID,
			Width:    cfg.FrameWidth,
			Height:   cfg.FrameHeight,
			FPS:      cfg.FPS,
		}),
		Detector:   det,
		Classifier: classifier,
		Sink:       sinks,
		Keys:       keys,
		Display:    display.New(cfg.ShowWindow, display.HandTitle),
		Metrics:    m,
		Hooks:      hooks,
		Motion:     motion,
	})

	if tr == nil {
		if err := loop.Run(ctx); err != nil {
			log.Printf("Hand steering ended: %v", err)
			stopMonitor()
			os.Exit(1)
		}
		return
	}

	// The tray owns the main goroutine; the loop runs beside it, pinned to
	// one OS thread so highgui always sees the same caller.
	done := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		done <- loop.Run(ctx)
		tr.Quit()
	}()
	tr.Run()
	stop()

	if err := <-done; err != nil {
		log.Printf("Hand steering ended: %v", err)
		stopMonitor()
		os.Exit(1)
	}
}

func monitorURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/api/stream"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
