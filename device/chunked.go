package device

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// ChunkedOptions configures a Chunked device.
type ChunkedOptions struct {
	// MaxIO is the largest single request sent to the inner device.
	// Default: 1MB
	MaxIO int

	// Concurrency bounds the number of chunk reads in flight.
	// Writes are always issued in order, one at a time.
	// Default: 4
	Concurrency int
}

// DefaultChunkedOptions returns the default chunking settings.
func DefaultChunkedOptions() ChunkedOptions {
	return ChunkedOptions{
		MaxIO:       1 << 20,
		Concurrency: 4,
	}
}

// Chunked splits operations on an inner Device into requests of at most
// MaxIO bytes. Results are reassembled in address order, so callers see
// the same bytes as from a single unbounded request.
type Chunked struct {
	inner Device
	opts  ChunkedOptions
}

// NewChunked wraps inner.
func NewChunked(inner Device, optFns ...func(*ChunkedOptions)) *Chunked {
	opts := DefaultChunkedOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxIO <= 0 {
		opts.MaxIO = DefaultChunkedOptions().MaxIO
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Chunked{inner: inner, opts: opts}
}

// Get reads n bytes at addr, fetching chunks concurrently.
func (c *Chunked) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if n <= c.opts.MaxIO {
		return c.inner.Get(ctx, addr, n)
	}

	out := make([]byte, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)

	for off := 0; off < n; off += c.opts.MaxIO {
		size := min(c.opts.MaxIO, n-off)
		g.Go(func() error {
			b, err := c.inner.Get(gctx, addr+uint64(off), size)
			if err != nil {
				return err
			}
			if len(b) != size {
				return fmt.Errorf("chunk at %d: got %d of %d bytes: %w", addr+uint64(off), len(b), size, io.ErrUnexpectedEOF)
			}
			copy(out[off:], b)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Put writes p at addr in ascending chunk order.
func (c *Chunked) Put(ctx context.Context, addr uint64, p []byte) error {
	return ForEachChunk(len(p), c.opts.MaxIO, func(off, size int) error {
		return c.inner.Put(ctx, addr+uint64(off), p[off:off+size])
	})
}
