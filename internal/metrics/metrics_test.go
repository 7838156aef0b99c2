package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/srediag/acc-telemetry/pkg/acc"
)

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	_ = c.Write(m)
	return m.GetCounter().GetValue()
}

func gaugeValue(g prometheus.Gauge) float64 {
	m := &dto.Metric{}
	_ = g.Write(m)
	return m.GetGauge().GetValue()
}

func TestObservePoll(t *testing.T) {
	c := NewCollector()
	at := time.Unix(1700000000, 500000000)
	c.ObservePoll(&acc.Graphics{PacketID: 42}, at)
	c.ObservePoll(&acc.Graphics{PacketID: 43}, at.Add(time.Second))

	assert.Equal(t, float64(2), counterValue(c.polls))
	assert.Equal(t, float64(43), gaugeValue(c.packetID))
	assert.InDelta(t, 1700000001.5, gaugeValue(c.lastPoll), 1e-3)
}

func TestObserveFetchError(t *testing.T) {
	c := NewCollector()
	c.ObserveFetchError(acc.ChannelGraphics)
	c.ObserveFetchError(acc.ChannelGraphics)

	assert.Equal(t, float64(2), counterValue(c.fetchErrors.WithLabelValues("graphics")))
	assert.Equal(t, float64(0), counterValue(c.fetchErrors.WithLabelValues("physics")))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() == "acc_telemetry_fetch_errors_total" {
			found = true
			assert.Len(t, mf.GetMetric(), len(acc.Channels))
		}
	}
	assert.True(t, found)
}

func TestServerServesMetricsAndHealth(t *testing.T) {
	c := NewCollector()
	c.ObservePoll(&acc.Graphics{PacketID: 7}, time.Now())

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("always-ok", func() error { return nil })
	health.AddReadinessCheck("never-ready", func() error { return assert.AnError })

	srv := NewServer("127.0.0.1:0", c, health, nil)
	require.NoError(t, srv.Start())
	defer func() { _ = srv.Shutdown(context.Background()) }()
	base := "http://" + srv.Addr()

	resp, err := http.Get(base + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "acc_telemetry_graphics_packet_id 7")
	assert.Contains(t, string(body), "acc_telemetry_polls_total 1")

	resp, err = http.Get(base + "/live")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/ready")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMeterProviderExportsOnRegistry(t *testing.T) {
	c := NewCollector()
	mp, err := c.MeterProvider()
	require.NoError(t, err)
	defer func() { _ = mp.Shutdown(context.Background()) }()

	reads, err := mp.Meter("test").Int64Counter("acc.telemetry.reads")
	require.NoError(t, err)
	reads.Add(context.Background(), 3, metric.WithAttributes(attribute.String("channel", "graphics")))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	var found *dto.MetricFamily
	for _, f := range families {
		if strings.Contains(f.GetName(), "reads") && strings.HasSuffix(f.GetName(), "_total") {
			found = f
		}
	}
	require.NotNil(t, found, "otel counter missing from the registry")
	require.Len(t, found.GetMetric(), 1)
	m := found.GetMetric()[0]
	assert.Equal(t, float64(3), m.GetCounter().GetValue())
	var channel string
	for _, l := range m.GetLabel() {
		if l.GetName() == "channel" {
			channel = l.GetValue()
		}
	}
	assert.Equal(t, "graphics", channel)
}
