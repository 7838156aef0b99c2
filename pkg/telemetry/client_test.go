//go:build linux

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	internalshm "github.com/srediag/acc-telemetry/internal/shm"
	"github.com/srediag/acc-telemetry/internal/sim"
	"github.com/srediag/acc-telemetry/pkg/acc"
)

type ClientTestSuite struct {
	suite.Suite
	ns  string
	pub *sim.Publisher
}

func (s *ClientTestSuite) SetupTest() {
	s.ns = fmt.Sprintf("telemetry_test_%d_%d_", os.Getpid(), time.Now().UnixNano())
	s.pub = nil
}

func (s *ClientTestSuite) TearDownTest() {
	if s.pub != nil {
		_ = s.pub.Close()
		_ = s.pub.Remove()
	}
}

func (s *ClientTestSuite) publish(n int) {
	if s.pub == nil {
		pub, err := sim.NewPublisher(context.Background(), sim.Options{Namespace: s.ns})
		s.Require().NoError(err)
		s.pub = pub
	}
	ph, g := sim.Frame(n)
	s.Require().NoError(s.pub.Publish(ph, g, sim.Session()))
}

func (s *ClientTestSuite) newClient(opts Options) *Client {
	opts.Namespace = s.ns
	c, err := NewClient(opts)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = c.Close() })
	return c
}

func (s *ClientTestSuite) initAll(c *Client) {
	ctx := context.Background()
	s.Require().NoError(c.InitPhysics(ctx))
	s.Require().NoError(c.InitGraphics(ctx))
	s.Require().NoError(c.InitStatic(ctx))
}

func (s *ClientTestSuite) TestReadBeforeInit() {
	c := s.newClient(Options{})
	ctx := context.Background()

	_, err := c.PhysicsData(ctx)
	s.True(errors.Is(err, ErrNotInitialized))
	_, err = c.GraphicsData(ctx)
	s.True(errors.Is(err, ErrNotInitialized))
	_, err = c.StaticData(ctx)
	s.True(errors.Is(err, ErrNotInitialized))

	_, seen := c.SessionStatus()
	s.False(seen)
	s.False(c.Attached())
}

func (s *ClientTestSuite) TestReadsPublishedPages() {
	s.publish(0)
	c := s.newClient(Options{})
	s.initAll(c)
	s.True(c.Attached())
	ctx := context.Background()

	g, err := c.GraphicsData(ctx)
	s.Require().NoError(err)
	s.Equal(acc.PenaltyNone, g.Penalty)
	s.Equal(acc.FlagGreen, g.Flag)
	s.Equal(int32(1), g.PacketID)

	status, seen := c.SessionStatus()
	s.True(seen)
	s.Equal(acc.StatusLive, status)

	ph, err := c.PhysicsData(ctx)
	s.Require().NoError(err)
	s.Equal(int32(4), ph.Gear)

	st, err := c.StaticData(ctx)
	s.Require().NoError(err)
	s.Equal("porsche_991ii_gt3_r", st.CarModel.String())

	// every read is a fresh snapshot
	s.publish(2)
	g2, err := c.GraphicsData(ctx)
	s.Require().NoError(err)
	s.Equal(int32(2), g2.PacketID)
	s.Equal(acc.FlagYellow, g2.Flag)
	s.Equal(acc.PenaltyDriveThroughCutting, g2.Penalty)
	s.Equal(acc.FlagGreen, g.Flag, "earlier snapshot must not change")
}

func (s *ClientTestSuite) TestInitIsIdempotent() {
	s.publish(0)
	c := s.newClient(Options{})
	ctx := context.Background()
	s.Require().NoError(c.InitGraphics(ctx))
	s.Require().NoError(c.InitGraphics(ctx))
	_, err := c.GraphicsData(ctx)
	s.NoError(err)
}

func (s *ClientTestSuite) TestAttachMissingWithoutCreate() {
	c := s.newClient(Options{})
	err := c.InitPhysics(context.Background())
	s.Require().Error(err)
	s.True(errors.Is(err, os.ErrNotExist), err)
}

func (s *ClientTestSuite) TestAttachCreatesMissingPage() {
	c := s.newClient(Options{Create: true})
	s.initAll(c)
	defer func() {
		for _, ch := range acc.Channels {
			_ = os.Remove("/dev/shm/" + s.ns + ch.PageName())
		}
	}()

	g, err := c.GraphicsData(context.Background())
	s.Require().NoError(err)
	s.Equal(acc.FlagNone, g.Flag)
	s.Equal(acc.PenaltyNone, g.Penalty)
	s.Equal(acc.StatusOff, g.Status)
}

func (s *ClientTestSuite) TestAttachRetriesUntilPublished() {
	c := s.newClient(Options{AttachTimeout: 10 * time.Second})
	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(200 * time.Millisecond)
		pub, err := sim.NewPublisher(context.Background(), sim.Options{Namespace: s.ns})
		if err == nil {
			s.pub = pub
		}
	}()
	err := c.InitGraphics(context.Background())
	<-done
	s.Require().NotNil(s.pub)
	s.NoError(err)
}

func (s *ClientTestSuite) TestAttachRetryStopsOnCancel() {
	c := s.newClient(Options{AttachTimeout: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := c.InitStatic(ctx)
	s.Require().Error(err)
	s.True(errors.Is(err, context.DeadlineExceeded), err)
}

func (s *ClientTestSuite) TestReadHonoursCancelledContext() {
	s.publish(0)
	c := s.newClient(Options{})
	s.initAll(c)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GraphicsData(ctx)
	s.True(errors.Is(err, context.Canceled))
}

func (s *ClientTestSuite) TestCloseDetaches() {
	s.publish(0)
	c := s.newClient(Options{})
	s.initAll(c)
	s.Require().NoError(c.Close())
	s.NoError(c.Close())
	s.False(c.Attached())
	_, err := c.GraphicsData(context.Background())
	s.True(errors.Is(err, ErrNotInitialized))
}

// counts sums an Int64 counter's data points by their channel attribute.
func (s *ClientTestSuite) counts(reader *sdkmetric.ManualReader, name string) map[string]int64 {
	var rm metricdata.ResourceMetrics
	s.Require().NoError(reader.Collect(context.Background(), &rm))
	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			s.Require().True(ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				ch, _ := dp.Attributes.Value(attribute.Key("channel"))
				out[ch.AsString()] += dp.Value
			}
		}
	}
	return out
}

func (s *ClientTestSuite) TestReadsAreInstrumented() {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	defer func() {
		_ = mp.Shutdown(context.Background())
		_ = tp.Shutdown(context.Background())
	}()

	c := s.newClient(Options{
		Meter:  mp.Meter(InstrumentationName),
		Tracer: tp.Tracer(InstrumentationName),
	})
	ctx := context.Background()

	_, err := c.GraphicsData(ctx)
	s.Require().True(errors.Is(err, ErrNotInitialized))
	ended := spans.Ended()
	s.Require().Len(ended, 1)
	s.Equal("telemetry.read graphics", ended[0].Name())
	s.Equal(codes.Error, ended[0].Status().Code)
	s.Equal(map[string]int64{"graphics": 1}, s.counts(reader, "acc.telemetry.read_errors"))
	s.Empty(s.counts(reader, "acc.telemetry.reads"))

	s.publish(0)
	s.initAll(c)
	_, err = c.GraphicsData(ctx)
	s.Require().NoError(err)
	_, err = c.PhysicsData(ctx)
	s.Require().NoError(err)

	ended = spans.Ended()
	s.Require().Len(ended, 3)
	s.Equal("telemetry.read graphics", ended[1].Name())
	s.Equal("telemetry.read physics", ended[2].Name())
	s.Equal(codes.Unset, ended[1].Status().Code)
	s.Equal(map[string]int64{"graphics": 1, "physics": 1}, s.counts(reader, "acc.telemetry.reads"))
	s.Equal(map[string]int64{"graphics": 1}, s.counts(reader, "acc.telemetry.read_errors"))
}

func (s *ClientTestSuite) TestAttachGivesUpOnPermanentErrors() {
	s.True(isPermanent(fmt.Errorf("open: %w", internalshm.ErrInvalidSize)))
	s.True(isPermanent(context.Canceled))
	s.False(isPermanent(os.ErrNotExist))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
