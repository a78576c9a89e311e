// Command steerlisten receives the gesture datagrams handsteer sends and
// logs the speed and turn the game would apply. It stands in for the game
// when testing a camera setup.
package main

import (
	"context"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/ayusman/steerlink/internal/app"
	"github.com/ayusman/steerlink/internal/config"
	"github.com/ayusman/steerlink/internal/gesture"
	"github.com/ayusman/steerlink/internal/signal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app.StartSession("steerlisten")

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := signal.Listen(cfg.UDPAddr)
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}
	defer l.Close()
	log.Printf("Listening on udp://%s", l.Addr())

	var steering gesture.Steering
	err = l.Serve(ctx, func(payload string) {
		prev := steering.Control()
		c := steering.Apply(payload)
		if c != prev {
			log.Printf("%q -> speed %.0f, turn %+.0f", payload, c.Speed, c.Turn)
		}
	})
	if err != nil {
		log.Fatalf("Listener failed: %v", err)
	}
}
