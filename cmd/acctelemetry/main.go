// Command acctelemetry prints the simulator's penalty and flag every few
// seconds until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/srediag/acc-telemetry/internal/app"
	"github.com/srediag/acc-telemetry/internal/config"
	"github.com/srediag/acc-telemetry/internal/logger"
)

func main() {
	log := logger.New("acctelemetry", os.Stderr)
	cfg, err := config.Load()
	if err != nil {
		log.Errorf("load config: %v", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, os.Stdout, app.Options{Logger: log}); err != nil {
		log.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
