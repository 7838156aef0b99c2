// Package sim publishes synthetic telemetry pages in place of the simulator.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/srediag/acc-telemetry/internal/logger"
	"github.com/srediag/acc-telemetry/pkg/acc"
	"github.com/srediag/acc-telemetry/pkg/shm"
)

// Options configures a Publisher.
type Options struct {
	// Namespace is prepended to every page name.
	Namespace string
	Logger    *logger.Logger
}

// Publisher owns writable mappings of the three pages.
type Publisher struct {
	opts   Options
	log    *logger.Logger
	pages  [3]*shm.Page
	packet int32
}

// NewPublisher creates, or attaches to, the three pages for writing.
func NewPublisher(ctx context.Context, opts Options) (*Publisher, error) {
	if opts.Logger == nil {
		opts.Logger = logger.New("accsim", nil)
	}
	p := &Publisher{opts: opts, log: opts.Logger}
	for _, ch := range acc.Channels {
		page, err := shm.Open(ctx, shm.OpenOptions{
			Name:      opts.Namespace + ch.PageName(),
			Size:      ch.PageSize(),
			Create:    true,
			Writable:  true,
			SeqOffset: ch.SeqOffset(),
		})
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("open %s: %w", ch, err)
		}
		p.pages[ch] = page
	}
	p.log.Infof("publishing pages with namespace %q", opts.Namespace)
	return p, nil
}

// Publish writes one update of each page. Physics and graphics get the next
// packet id; nil records leave their page untouched.
func (p *Publisher) Publish(ph *acc.Physics, g *acc.Graphics, st *acc.Static) error {
	p.packet++
	if ph != nil {
		ph.PacketID = p.packet
		if err := p.write(acc.ChannelPhysics, ph); err != nil {
			return err
		}
	}
	if g != nil {
		g.PacketID = p.packet
		if err := p.write(acc.ChannelGraphics, g); err != nil {
			return err
		}
	}
	if st != nil {
		if err := p.write(acc.ChannelStatic, st); err != nil {
			return err
		}
	}
	p.log.Tracef("published packet %d", p.packet)
	return nil
}

// Packet returns the last packet id written.
func (p *Publisher) Packet() int32 { return p.packet }

func (p *Publisher) write(ch acc.Channel, v interface{}) error {
	page := p.pages[ch]
	if page == nil {
		return fmt.Errorf("write %s: %w", ch, shm.ErrClosed)
	}
	data, err := acc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ch, err)
	}
	if err := page.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", ch, err)
	}
	return nil
}

// Close unmaps the pages. They stay visible to readers until Remove.
func (p *Publisher) Close() error {
	var errs []error
	for i, page := range p.pages {
		if page == nil {
			continue
		}
		if err := page.Close(); err != nil {
			errs = append(errs, err)
		}
		p.pages[i] = nil
	}
	return errors.Join(errs...)
}

// Remove unlinks the pages where the platform keeps them after Close.
func (p *Publisher) Remove() error {
	var errs []error
	for _, ch := range acc.Channels {
		if err := shm.Remove(p.opts.Namespace + ch.PageName()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
