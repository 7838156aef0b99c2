/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package poller drives the read-print-wait loop over a telemetry source.
//
// Every iteration fetches physics, graphics and static in that order, then
// writes one block to the output:
//
//	<blank line>
//	<value of each configured graphics field, one per line>
//	<blank line>
//
// With the default fields the block is "\n<penalty>\n<flag>\n\n".
package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/srediag/acc-telemetry/internal/logger"
	"github.com/srediag/acc-telemetry/pkg/acc"
	"github.com/srediag/acc-telemetry/pkg/telemetry"
)

// DefaultInterval is the wait between two iterations.
const DefaultInterval = 5 * time.Second

// DefaultFields are printed when Options.Fields is empty.
var DefaultFields = []string{"penalty", "flag"}

// Recorder receives poll outcomes, typically the metrics collector.
type Recorder interface {
	ObservePoll(g *acc.Graphics, at time.Time)
	ObserveFetchError(ch acc.Channel)
}

// Options configures a Poller.
type Options struct {
	// Interval is the wait after each block. Zero selects DefaultInterval.
	Interval time.Duration
	// Fields are the graphics fields printed, in order.
	Fields []string
	// Dump lists channels whose full listing follows each block.
	Dump     []acc.Channel
	Recorder Recorder
	Logger   *logger.Logger
}

// Poller reads a Source and writes blocks to an io.Writer.
type Poller struct {
	src      telemetry.Source
	out      io.Writer
	interval time.Duration
	fields   []string
	dump     []acc.Channel
	rec      Recorder
	log      *logger.Logger
}

type nopRecorder struct{}

func (nopRecorder) ObservePoll(*acc.Graphics, time.Time) {}
func (nopRecorder) ObserveFetchError(acc.Channel)        {}

// New returns a Poller. Unknown field names are rejected.
func New(src telemetry.Source, out io.Writer, opts Options) (*Poller, error) {
	if src == nil {
		return nil, errors.New("poller: nil source")
	}
	if out == nil {
		return nil, errors.New("poller: nil output")
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("poller: negative interval %v", opts.Interval)
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if len(opts.Fields) == 0 {
		opts.Fields = DefaultFields
	}
	for _, name := range opts.Fields {
		if !acc.IsGraphicsField(name) {
			return nil, fmt.Errorf("poller: %w: %q", acc.ErrUnknownField, name)
		}
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.New("poller", nil)
	}
	return &Poller{
		src:      src,
		out:      out,
		interval: opts.Interval,
		fields:   append([]string(nil), opts.Fields...),
		dump:     append([]acc.Channel(nil), opts.Dump...),
		rec:      opts.Recorder,
		log:      opts.Logger,
	}, nil
}

// Init attaches the physics, graphics and static channels, in that order.
func (p *Poller) Init(ctx context.Context) error {
	if err := p.src.InitPhysics(ctx); err != nil {
		return fmt.Errorf("init %s: %w", acc.ChannelPhysics, err)
	}
	if err := p.src.InitGraphics(ctx); err != nil {
		return fmt.Errorf("init %s: %w", acc.ChannelGraphics, err)
	}
	if err := p.src.InitStatic(ctx); err != nil {
		return fmt.Errorf("init %s: %w", acc.ChannelStatic, err)
	}
	return nil
}

// Run initializes the source and polls until ctx is done. It returns nil on
// cancellation and the first init, fetch or write error otherwise.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Init(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	p.log.Infof("polling every %v, fields %v", p.interval, p.fields)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	for {
		if err := p.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		timer.Reset(p.interval)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// Poll runs one iteration: three fetches, then one write of the block.
// Nothing is written when a fetch fails.
func (p *Poller) Poll(ctx context.Context) error {
	physics, err := p.src.PhysicsData(ctx)
	if err != nil {
		return p.fetchFailed(acc.ChannelPhysics, err)
	}
	graphics, err := p.src.GraphicsData(ctx)
	if err != nil {
		return p.fetchFailed(acc.ChannelGraphics, err)
	}
	static, err := p.src.StaticData(ctx)
	if err != nil {
		return p.fetchFailed(acc.ChannelStatic, err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('\n')
	for _, name := range p.fields {
		v, _ := graphics.Field(name)
		_, _ = fmt.Fprintln(buf, v)
	}
	_ = buf.WriteByte('\n')

	for _, ch := range p.dump {
		switch ch {
		case acc.ChannelPhysics:
			writeDump(buf, ch, physics.Fields())
		case acc.ChannelGraphics:
			writeDump(buf, ch, graphics.Fields())
		case acc.ChannelStatic:
			writeDump(buf, ch, static.Fields())
		}
	}

	if _, err := p.out.Write(buf.B); err != nil {
		return fmt.Errorf("write block: %w", err)
	}
	p.rec.ObservePoll(graphics, time.Now())
	p.log.Debugf("graphics packet %d printed", graphics.PacketID)
	return nil
}

func (p *Poller) fetchFailed(ch acc.Channel, err error) error {
	p.rec.ObserveFetchError(ch)
	return fmt.Errorf("fetch %s: %w", ch, err)
}
