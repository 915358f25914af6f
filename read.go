package devbitmap

import (
	"context"
	"time"

	"github.com/hupe1980/devbitmap/device"
)

// Read returns the bits of r, MSB-first within each byte.
// The result has exactly r.Len() elements.
func (e *Engine) Read(ctx context.Context, dev device.Device, base uint64, r Range) (_ []bool, err error) {
	defer func(start time.Time) { e.observeRead(ctx, base, r, start, err) }(time.Now())
	return readBits(ctx, dev, base, r)
}

// ReadAt returns the single bit at index i.
func (e *Engine) ReadAt(ctx context.Context, dev device.Device, base, i uint64) (bool, error) {
	bits, err := e.Read(ctx, dev, base, Bit(i))
	if err != nil {
		return false, err
	}
	return bits[0], nil
}

// readBytes fetches every byte overlapped by r.
func readBytes(ctx context.Context, dev device.Device, base uint64, r Range) ([]byte, span, error) {
	if err := r.Validate(); err != nil {
		return nil, span{}, err
	}
	s := decompose(r)
	buf, err := get(ctx, dev, base+s.byte1, s.bytes())
	if err != nil {
		return nil, span{}, err
	}
	return buf, s, nil
}

func readBits(ctx context.Context, dev device.Device, base uint64, r Range) ([]bool, error) {
	buf, s, err := readBytes(ctx, dev, base, r)
	if err != nil {
		return nil, err
	}

	n := r.Len()
	out := make([]bool, n)
	// rel is the bit offset from the start of buf.
	rel := uint64(s.bit1)
	for k := range n {
		out[k] = bitAt(buf[rel/8], uint(rel%8))
		rel++
	}
	return out, nil
}

// Read returns the bits of r using the default engine.
func Read(ctx context.Context, dev device.Device, base uint64, r Range) ([]bool, error) {
	return defaultEngine.Read(ctx, dev, base, r)
}

// ReadAt returns the bit at index i using the default engine.
func ReadAt(ctx context.Context, dev device.Device, base, i uint64) (bool, error) {
	return defaultEngine.ReadAt(ctx, dev, base, i)
}
