package device

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ReaderWriterAt is both an io.ReaderAt and an io.WriterAt.
type ReaderWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// ReadWriterAt adapts an io.ReaderAt/io.WriterAt pair to the Device contract.
//
// io.EOF from the reader is treated as end-of-store and the remainder of the
// request is zero filled. Whether writes past the end zero-fill the gap is up
// to the underlying writer; *os.File does.
type ReadWriterAt struct {
	rw    ReaderWriterAt
	maxIO int
}

// NewReadWriterAt creates a Device over rw. Single ReadAt/WriteAt calls are
// capped at maxIO bytes; maxIO <= 0 disables chunking.
func NewReadWriterAt(rw ReaderWriterAt, maxIO int) *ReadWriterAt {
	return &ReadWriterAt{rw: rw, maxIO: maxIO}
}

// errEndOfStore stops chunk iteration once the reader hit io.EOF.
var errEndOfStore = errors.New("end of store")

// Get reads n bytes at addr.
func (d *ReadWriterAt) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}

	out := make([]byte, n)
	err := ForEachChunk(n, d.maxIO, func(off, size int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := d.rw.ReadAt(out[off:off+size], int64(addr)+int64(off))
		if errors.Is(err, io.EOF) {
			// Whatever was not read is still zero.
			return errEndOfStore
		}
		return err
	})
	if err != nil && !errors.Is(err, errEndOfStore) {
		return nil, err
	}
	return out, nil
}

// Put writes p at addr.
func (d *ReadWriterAt) Put(ctx context.Context, addr uint64, p []byte) error {
	return ForEachChunk(len(p), d.maxIO, func(off, size int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := d.rw.WriteAt(p[off:off+size], int64(addr)+int64(off))
		if err != nil {
			return err
		}
		if n != size {
			return fmt.Errorf("wrote %d of %d bytes: %w", n, size, io.ErrShortWrite)
		}
		return nil
	})
}
