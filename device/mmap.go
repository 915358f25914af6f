package device

import (
	"context"
	"math"
	"sync"

	"github.com/hupe1980/devbitmap/internal/mmap"
)

// Mmap is a Device backed by a shared memory mapping of a file.
// Writes past the end grow the file and remap it.
type Mmap struct {
	mu     sync.RWMutex
	m      *mmap.Mapping
	closed bool
}

// OpenMmap maps the file at path, creating it if it does not exist.
func OpenMmap(path string) (*Mmap, error) {
	m, err := mmap.OpenRW(path)
	if err != nil {
		return nil, err
	}
	// Bitmap probes jump around; readahead mostly wastes page cache.
	if err := m.Advise(mmap.AccessRandom); err != nil {
		_ = m.Close()
		return nil, err
	}
	return &Mmap{m: m}, nil
}

// Get reads n bytes at addr.
func (d *Mmap) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return nil, ErrClosed
	}

	out := make([]byte, n)
	if data := d.m.Bytes(); addr < uint64(len(data)) {
		copy(out, data[addr:])
	}
	return out, nil
}

// Put writes p at addr, growing the mapping when needed.
func (d *Mmap) Put(ctx context.Context, addr uint64, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	end := addr + uint64(len(p))
	if end > math.MaxInt {
		return mmap.ErrInvalidSize
	}
	if err := d.m.Grow(int(end)); err != nil {
		return err
	}
	copy(d.m.Bytes()[addr:end], p)
	return nil
}

// Size returns the mapped size in bytes.
func (d *Mmap) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.m.Size()
}

// Sync flushes dirty pages to the file.
func (d *Mmap) Sync() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}
	return d.m.Sync()
}

// Close unmaps and closes the file. It is safe to call more than once.
func (d *Mmap) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.m.Close()
}
