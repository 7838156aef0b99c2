// Package app wires the telemetry poller process from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/acc-telemetry/internal/config"
	"github.com/srediag/acc-telemetry/internal/health"
	"github.com/srediag/acc-telemetry/internal/logger"
	"github.com/srediag/acc-telemetry/internal/metrics"
	"github.com/srediag/acc-telemetry/internal/poller"
	"github.com/srediag/acc-telemetry/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Options are process-level settings that are not part of Config.
type Options struct {
	// Namespace is prepended to every page name.
	Namespace string
	Logger    *logger.Logger
	// Meter records the client's read counters. When nil and a metrics
	// address is configured, they are exported on /metrics.
	Meter metric.Meter
	// Tracer records a span per page read. Nil disables tracing.
	Tracer trace.Tracer
}

// Run polls the simulator until ctx is done, writing blocks to out.
func Run(ctx context.Context, cfg *config.Config, out io.Writer, opts Options) (err error) {
	if err := config.VerifyConfig(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logger.New("acctelemetry", nil)
	}
	logger.SetLogLevel(cfg.LogLevel)

	collector := metrics.NewCollector()
	meter := opts.Meter
	if meter == nil && cfg.MetricsAddr != "" {
		mp, err := collector.MeterProvider()
		if err != nil {
			return err
		}
		defer func() {
			if serr := mp.Shutdown(context.Background()); serr != nil {
				log.Warnf("meter provider shutdown: %v", serr)
			}
		}()
		meter = mp.Meter(telemetry.InstrumentationName)
	}

	client, err := telemetry.NewClient(telemetry.Options{
		Create:        cfg.Create,
		AttachTimeout: cfg.AttachTimeout,
		Namespace:     opts.Namespace,
		Meter:         meter,
		Tracer:        opts.Tracer,
		Logger:        log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("detach: %w", cerr))
		}
	}()

	if cfg.MetricsAddr != "" {
		h := health.NewHandler(collector.Registry(), client, cfg.SimProcess)
		srv := metrics.NewServer(cfg.MetricsAddr, collector, h, log)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if serr := srv.Shutdown(sctx); serr != nil {
				log.Warnf("metrics server shutdown: %v", serr)
			}
		}()
	}

	dump, err := cfg.DumpChannels()
	if err != nil {
		return err
	}
	p, err := poller.New(client, out, poller.Options{
		Interval: cfg.Interval,
		Fields:   cfg.Fields,
		Dump:     dump,
		Recorder: collector,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	return p.Run(ctx)
}
