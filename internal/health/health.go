// Package health builds the liveness and readiness probes of the poller.
package health

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/srediag/acc-telemetry/pkg/acc"
)

const checkTimeout = 2 * time.Second

var (
	ErrDetached      = errors.New("shared-memory pages not attached")
	ErrNoSession     = errors.New("no graphics snapshot read yet")
	ErrSimNotRunning = errors.New("simulator process not running")
)

// Probe is the view of the telemetry client the checks need.
type Probe interface {
	Attached() bool
	SessionStatus() (acc.Status, bool)
}

// NewHandler returns a healthcheck handler whose check results are also
// exported on reg.
//
//	live:  shared-memory
//	ready: simulator-process, session-live
func NewHandler(reg prometheus.Registerer, probe Probe, simProcess string) healthcheck.Handler {
	h := healthcheck.NewMetricsHandler(reg, "acc_telemetry")
	h.AddLivenessCheck("shared-memory", SharedMemoryCheck(probe))
	h.AddReadinessCheck("simulator-process", healthcheck.Timeout(ProcessCheck(simProcess), checkTimeout))
	h.AddReadinessCheck("session-live", SessionLiveCheck(probe))
	return h
}

// SharedMemoryCheck fails while any page is detached.
func SharedMemoryCheck(probe Probe) healthcheck.Check {
	return func() error {
		if !probe.Attached() {
			return ErrDetached
		}
		return nil
	}
}

// SessionLiveCheck fails until a graphics snapshot reports a session that
// is not off.
func SessionLiveCheck(probe Probe) healthcheck.Check {
	return func() error {
		status, ok := probe.SessionStatus()
		if !ok {
			return ErrNoSession
		}
		if status == acc.StatusOff {
			return fmt.Errorf("session status is %s", status)
		}
		return nil
	}
}

// ProcessCheck fails unless a process called name is running. Names compare
// case-insensitively, as on Windows.
func ProcessCheck(name string) healthcheck.Check {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		procs, err := process.ProcessesWithContext(ctx)
		if err != nil {
			return fmt.Errorf("list processes: %w", err)
		}
		for _, p := range procs {
			n, err := p.NameWithContext(ctx)
			if err != nil {
				continue
			}
			if strings.EqualFold(n, name) {
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrSimNotRunning, name)
	}
}
