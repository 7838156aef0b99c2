package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/srediag/acc-telemetry/internal/logger"
	internalshm "github.com/srediag/acc-telemetry/internal/shm"
	"github.com/srediag/acc-telemetry/pkg/acc"
	"github.com/srediag/acc-telemetry/pkg/shm"
)

// InstrumentationName names the Meter and Tracer the Client records with.
const InstrumentationName = "github.com/srediag/acc-telemetry/pkg/telemetry"

// Options configures a Client. The zero value attaches once, without
// creating missing pages, and records nothing.
type Options struct {
	// Create makes a missing page instead of failing the attach.
	Create bool
	// AttachTimeout is how long Init* keeps retrying with exponential
	// backoff. Zero makes a single attempt.
	AttachTimeout time.Duration
	// MaxRetries bounds the re-copies of a page that changes mid-read.
	MaxRetries int
	// Namespace is prepended to every page name. The simulator uses none.
	Namespace string
	// Meter and Tracer default to no-op providers.
	Meter  metric.Meter
	Tracer trace.Tracer
	// Logger defaults to a stderr logger named "telemetry".
	Logger *logger.Logger
}

// Client reads the three simulator pages.
type Client struct {
	opts   Options
	log    *logger.Logger
	tracer trace.Tracer

	reads  metric.Int64Counter
	errors metric.Int64Counter

	mu    sync.Mutex
	pages [3]*shm.Page
	bufs  [3][]byte

	status atomic.Int32
	seen   atomic.Bool
}

var _ Source = (*Client)(nil)

// NewClient returns a Client with no page attached.
func NewClient(opts Options) (*Client, error) {
	if opts.Meter == nil {
		opts.Meter = metricnoop.NewMeterProvider().Meter(InstrumentationName)
	}
	if opts.Tracer == nil {
		opts.Tracer = tracenoop.NewTracerProvider().Tracer(InstrumentationName)
	}
	if opts.Logger == nil {
		opts.Logger = logger.New("telemetry", nil)
	}
	reads, err := opts.Meter.Int64Counter("acc.telemetry.reads",
		metric.WithDescription("Page snapshots decoded"))
	if err != nil {
		return nil, fmt.Errorf("create reads counter: %w", err)
	}
	errs, err := opts.Meter.Int64Counter("acc.telemetry.read_errors",
		metric.WithDescription("Page snapshots that failed"))
	if err != nil {
		return nil, fmt.Errorf("create errors counter: %w", err)
	}
	return &Client{
		opts:   opts,
		log:    opts.Logger,
		tracer: opts.Tracer,
		reads:  reads,
		errors: errs,
	}, nil
}

func (c *Client) InitPhysics(ctx context.Context) error  { return c.attach(ctx, acc.ChannelPhysics) }
func (c *Client) InitGraphics(ctx context.Context) error { return c.attach(ctx, acc.ChannelGraphics) }
func (c *Client) InitStatic(ctx context.Context) error   { return c.attach(ctx, acc.ChannelStatic) }

func (c *Client) attach(ctx context.Context, ch acc.Channel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pages[ch] != nil {
		return nil
	}

	open := func() (*shm.Page, error) {
		page, err := shm.Open(ctx, shm.OpenOptions{
			Name:       c.opts.Namespace + ch.PageName(),
			Size:       ch.PageSize(),
			Create:     c.opts.Create,
			SeqOffset:  ch.SeqOffset(),
			MaxRetries: c.opts.MaxRetries,
		})
		if err != nil && isPermanent(err) {
			return nil, backoff.Permanent(err)
		}
		return page, err
	}

	var (
		page *shm.Page
		err  error
	)
	if c.opts.AttachTimeout <= 0 {
		page, err = open()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
	} else {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = c.opts.AttachTimeout
		page, err = backoff.RetryNotifyWithData[*shm.Page](open, backoff.WithContext(b, ctx),
			func(err error, next time.Duration) {
				c.log.Warnf("attach %s failed, retrying in %v: %v", ch, next, err)
			})
	}
	if err != nil {
		return fmt.Errorf("telemetry: attach %s: %w", ch, err)
	}
	c.pages[ch] = page
	c.log.Infof("attached %s (%d bytes)", page.Name(), page.Size())
	return nil
}

func isPermanent(err error) bool {
	return errors.Is(err, internalshm.ErrUnsupportedPlatform) ||
		errors.Is(err, internalshm.ErrInvalidSize) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) PhysicsData(ctx context.Context) (*acc.Physics, error) {
	var out *acc.Physics
	err := c.read(ctx, acc.ChannelPhysics, func(b []byte) (err error) {
		out, err = acc.DecodePhysics(b)
		return err
	})
	return out, err
}

func (c *Client) GraphicsData(ctx context.Context) (*acc.Graphics, error) {
	var out *acc.Graphics
	err := c.read(ctx, acc.ChannelGraphics, func(b []byte) (err error) {
		out, err = acc.DecodeGraphics(b)
		return err
	})
	if err == nil {
		c.status.Store(int32(out.Status))
		c.seen.Store(true)
	}
	return out, err
}

func (c *Client) StaticData(ctx context.Context) (*acc.Static, error) {
	var out *acc.Static
	err := c.read(ctx, acc.ChannelStatic, func(b []byte) (err error) {
		out, err = acc.DecodeStatic(b)
		return err
	})
	return out, err
}

func (c *Client) read(ctx context.Context, ch acc.Channel, decode func([]byte) error) (err error) {
	attrs := metric.WithAttributes(attribute.String("channel", ch.String()))
	ctx, span := c.tracer.Start(ctx, "telemetry.read "+ch.String(),
		trace.WithAttributes(attribute.String("acc.page", c.opts.Namespace+ch.PageName())))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.errors.Add(ctx, 1, attrs)
		} else {
			c.reads.Add(ctx, 1, attrs)
		}
		span.End()
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	page := c.pages[ch]
	if page == nil {
		return fmt.Errorf("%w: %s", ErrNotInitialized, ch)
	}
	c.bufs[ch], err = page.Snapshot(c.bufs[ch])
	if err != nil {
		return fmt.Errorf("telemetry: read %s: %w", ch, err)
	}
	if err = decode(c.bufs[ch]); err != nil {
		return fmt.Errorf("telemetry: decode %s: %w", ch, err)
	}
	return nil
}

// Attached reports whether all three pages are attached.
func (c *Client) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pages {
		if p == nil || !p.Attached() {
			return false
		}
	}
	return true
}

// SessionStatus returns the status of the last graphics read, and false when
// no graphics page has been read yet.
func (c *Client) SessionStatus() (acc.Status, bool) {
	return acc.Status(c.status.Load()), c.seen.Load()
}

// Close detaches every page. The client may be initialized again afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for i, p := range c.pages {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", p.Name(), err))
		}
		c.pages[i] = nil
	}
	return errors.Join(errs...)
}
