// Command accsim publishes synthetic simulator pages so acctelemetry can be
// run without the simulator.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/srediag/acc-telemetry/internal/logger"
	"github.com/srediag/acc-telemetry/internal/sim"
)

type simConfig struct {
	Interval  time.Duration `env:"ACC_SIM_INTERVAL"  envDefault:"1s"`
	Namespace string        `env:"ACC_SIM_NAMESPACE"`
	// Keep leaves the pages in place on exit.
	Keep bool `env:"ACC_SIM_KEEP"`
}

func main() {
	log := logger.New("accsim", os.Stderr)
	var cfg simConfig
	if err := env.Parse(&cfg); err != nil {
		log.Errorf("parse env: %v", err)
		os.Exit(1)
	}
	if cfg.Interval <= 0 {
		log.Errorf("ACC_SIM_INTERVAL must be positive, got %v", cfg.Interval)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg simConfig, log *logger.Logger) error {
	pub, err := sim.NewPublisher(ctx, sim.Options{Namespace: cfg.Namespace, Logger: log})
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warnf("close pages: %v", err)
		}
		if !cfg.Keep {
			if err := pub.Remove(); err != nil {
				log.Warnf("remove pages: %v", err)
			}
		}
	}()
	log.Infof("publishing every %v", cfg.Interval)
	return sim.Run(ctx, pub, cfg.Interval)
}
