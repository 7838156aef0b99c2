// Package telemetry attaches to the simulator's shared-memory pages and
// returns decoded snapshots of them.
//
// The three pages are attached by InitPhysics, InitGraphics and InitStatic
// and read by PhysicsData, GraphicsData and StaticData. Each read copies the
// page and decodes the copy, so returned records never alias shared memory
// and are safe to keep.
package telemetry

import (
	"context"
	"errors"

	"github.com/srediag/acc-telemetry/pkg/acc"
)

// ErrNotInitialized is returned by a getter whose page was never attached.
var ErrNotInitialized = errors.New("telemetry: channel not initialized")

// Source is the simulator telemetry as the poller consumes it.
type Source interface {
	InitPhysics(ctx context.Context) error
	InitGraphics(ctx context.Context) error
	InitStatic(ctx context.Context) error

	PhysicsData(ctx context.Context) (*acc.Physics, error)
	GraphicsData(ctx context.Context) (*acc.Graphics, error)
	StaticData(ctx context.Context) (*acc.Static, error)
}
