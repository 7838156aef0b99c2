// Package metrics exposes the poller's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/srediag/acc-telemetry/pkg/acc"
)

const namespace = "acc_telemetry"

// Collector records poll outcomes on a private registry.
type Collector struct {
	registry    *prometheus.Registry
	polls       prometheus.Counter
	fetchErrors *prometheus.CounterVec
	packetID    prometheus.Gauge
	lastPoll    prometheus.Gauge
}

// NewCollector registers the poller collectors, plus the Go runtime and
// process collectors, on a new registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Completed poll iterations.",
		}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed page fetches by channel.",
		}, []string{"channel"}),
		packetID: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graphics_packet_id",
			Help:      "Packet id of the last graphics snapshot.",
		}),
		lastPoll: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_poll_timestamp_seconds",
			Help:      "Unix time of the last completed poll iteration.",
		}),
	}
	c.registry.MustRegister(
		c.polls,
		c.fetchErrors,
		c.packetID,
		c.lastPoll,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, ch := range acc.Channels {
		c.fetchErrors.WithLabelValues(ch.String())
	}
	return c
}

// Registry returns the registry the collectors live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObservePoll records a completed iteration.
func (c *Collector) ObservePoll(g *acc.Graphics, at time.Time) {
	c.polls.Inc()
	if g != nil {
		c.packetID.Set(float64(g.PacketID))
	}
	c.lastPoll.Set(float64(at.UnixNano()) / 1e9)
}

// ObserveFetchError records a failed fetch of ch.
func (c *Collector) ObserveFetchError(ch acc.Channel) {
	c.fetchErrors.WithLabelValues(ch.String()).Inc()
}
