package shm

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	internalshm "github.com/srediag/acc-telemetry/internal/shm"
)

const defaultMaxRetries = 3

var (
	// ErrClosed is returned by operations on a closed Page.
	ErrClosed = errors.New("shm: page closed")
	// ErrTornRead is returned when the sequence word kept changing during every copy attempt.
	ErrTornRead = errors.New("shm: page changed while being copied")
	// ErrReadOnly is returned by Write on a page opened without Writable.
	ErrReadOnly = errors.New("shm: page is read-only")
)

// Page is one mapped shared-memory object.
type Page struct {
	mu         sync.RWMutex
	region     *internalshm.MappedRegion
	name       string
	size       int
	writable   bool
	seqOffset  int
	maxRetries int
}

// OpenOptions defines options for attaching to a shared memory page.
type OpenOptions struct {
	// Name is the identifier for the shared memory region.
	Name string
	// Size is the page size in bytes.
	Size int
	// Create indicates whether to create (if not exists) or open existing.
	Create bool
	// Writable maps the page read-write, for publishers.
	Writable bool
	// SeqOffset is the byte offset of an int32 the writer bumps on every
	// update, or -1 when the page has none.
	SeqOffset int
	// MaxRetries bounds the extra copies Snapshot makes while the sequence
	// word moves. Zero selects the default.
	MaxRetries int
}

// Open creates or opens a shared memory page with the given options.
func Open(ctx context.Context, opts OpenOptions) (*Page, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: %d", internalshm.ErrInvalidSize, opts.Size)
	}
	if opts.SeqOffset+4 > opts.Size {
		return nil, fmt.Errorf("%w: sequence offset %d outside %d byte page",
			internalshm.ErrInvalidSize, opts.SeqOffset, opts.Size)
	}
	region, err := internalshm.MapRegion(ctx, internalshm.MapOptions{
		Name:     opts.Name,
		Size:     opts.Size,
		Create:   opts.Create,
		Writable: opts.Writable,
	})
	if err != nil {
		return nil, err
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	return &Page{
		region:     region,
		name:       opts.Name,
		size:       opts.Size,
		writable:   opts.Writable,
		seqOffset:  opts.SeqOffset,
		maxRetries: retries,
	}, nil
}

// Name returns the shared-memory object name.
func (p *Page) Name() string { return p.name }

// Size returns the mapped size in bytes.
func (p *Page) Size() int { return p.size }

// Attached reports whether the page is still mapped.
func (p *Page) Attached() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.region != nil
}

// Sequence returns the current sequence word, or 0 for pages without one.
func (p *Page) Sequence() (int32, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.region == nil {
		return 0, ErrClosed
	}
	if p.seqOffset < 0 {
		return 0, nil
	}
	return internalshm.LoadInt32(p.region.Addr, p.seqOffset), nil
}

// Snapshot copies the page into dst, growing it when needed, and returns the
// copy. The copy is retried while the sequence word changes underneath it.
func (p *Page) Snapshot(dst []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.region == nil {
		return dst, ErrClosed
	}
	if cap(dst) < p.size {
		dst = make([]byte, p.size)
	}
	dst = dst[:p.size]
	err := consistentCopy(dst, p.region.Addr, p.seqOffset, p.maxRetries, internalshm.LoadInt32)
	return dst, err
}

func consistentCopy(dst, mem []byte, seqOffset, retries int, load func([]byte, int) int32) error {
	if seqOffset < 0 {
		copy(dst, mem)
		return nil
	}
	for i := 0; i <= retries; i++ {
		before := load(mem, seqOffset)
		copy(dst, mem)
		if load(mem, seqOffset) == before {
			return nil
		}
	}
	return ErrTornRead
}

// Write replaces the page content with data. The sequence word, when the page
// has one, is stored last. Tear detection in Snapshot is best-effort: a reader
// that copies while the body is half written, and checks the word before it
// is stored, still accepts the copy. The simulator has the same window.
func (p *Page) Write(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.region == nil {
		return ErrClosed
	}
	if !p.writable {
		return ErrReadOnly
	}
	mem := p.region.Addr
	if p.seqOffset < 0 || len(data) < p.seqOffset+4 {
		copy(mem, data)
		return nil
	}
	copy(mem[:p.seqOffset], data)
	copy(mem[p.seqOffset+4:], data[p.seqOffset+4:])
	internalshm.StoreInt32(mem, p.seqOffset, int32(binary.LittleEndian.Uint32(data[p.seqOffset:])))
	return nil
}

// Close unmaps the page. Closing twice is a no-op.
func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.region == nil {
		return nil
	}
	err := internalshm.UnmapRegion(context.Background(), p.region)
	p.region = nil
	return err
}

// Remove unlinks the named object where the platform keeps one.
func Remove(name string) error {
	return internalshm.RemoveRegion(name)
}
