package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srediag/acc-telemetry/pkg/acc"
)

type fakeProbe struct {
	attached bool
	status   acc.Status
	seen     bool
}

func (f *fakeProbe) Attached() bool                    { return f.attached }
func (f *fakeProbe) SessionStatus() (acc.Status, bool) { return f.status, f.seen }

func TestSharedMemoryCheck(t *testing.T) {
	p := &fakeProbe{}
	check := SharedMemoryCheck(p)
	assert.True(t, errors.Is(check(), ErrDetached))
	p.attached = true
	assert.NoError(t, check())
}

func TestSessionLiveCheck(t *testing.T) {
	p := &fakeProbe{}
	check := SessionLiveCheck(p)
	assert.True(t, errors.Is(check(), ErrNoSession))

	p.seen = true
	err := check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Off")

	p.status = acc.StatusLive
	assert.NoError(t, check())
	p.status = acc.StatusPause
	assert.NoError(t, check())
}

func TestProcessCheck(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	assert.NoError(t, ProcessCheck(filepath.Base(exe))())

	err = ProcessCheck("no-such-simulator-process.exe")()
	assert.True(t, errors.Is(err, ErrSimNotRunning))
}

func TestHandlerEndpoints(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := &fakeProbe{}
	h := NewHandler(reg, p, "no-such-simulator-process.exe")

	get := func(path string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if path == "/live" {
			h.LiveEndpoint(rec, req)
		} else {
			h.ReadyEndpoint(rec, req)
		}
		return rec.Code
	}

	assert.Equal(t, http.StatusServiceUnavailable, get("/live"))
	p.attached = true
	assert.Equal(t, http.StatusOK, get("/live"))
	// the simulator is never running under test
	p.seen, p.status = true, acc.StatusLive
	assert.Equal(t, http.StatusServiceUnavailable, get("/ready"))

	families, err := reg.Gather()
	require.NoError(t, err)
	checks := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "acc_telemetry_healthcheck_status" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "check" {
					checks[l.GetValue()] = m.GetGauge().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{
		"shared-memory":     0,
		"simulator-process": 1,
		"session-live":      0,
	}, checks)
}
