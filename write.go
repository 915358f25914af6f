package devbitmap

import (
	"context"
	"time"

	"github.com/hupe1980/devbitmap/device"
)

// WriteRange sets every bit of r to value and leaves all other bits alone.
//
// Only the boundary bytes are read. Interior bytes are overwritten wholesale
// and the whole span goes to the device as one contiguous Put.
func (e *Engine) WriteRange(ctx context.Context, dev device.Device, base uint64, r Range, value bool) (err error) {
	defer func(start time.Time) { e.observeWrite(ctx, base, r, value, start, err) }(time.Now())

	if err := r.Validate(); err != nil {
		return err
	}

	s := decompose(r)
	addr1 := base + s.byte1
	addr2 := base + s.byte2

	if s.byte1 == s.byte2 {
		b, err := get(ctx, dev, addr1, 1)
		if err != nil {
			return err
		}
		b[0] = applyMask(b[0], rangeMask(s.bit1, s.bit2), value)
		return put(ctx, dev, addr1, b)
	}

	first, err := get(ctx, dev, addr1, 1)
	if err != nil {
		return err
	}
	last, err := get(ctx, dev, addr2, 1)
	if err != nil {
		return err
	}

	buf := make([]byte, s.bytes())
	buf[0] = applyMask(first[0], rangeMask(s.bit1, 7), value)
	if fill := fillByte(value); fill != 0 {
		for i := 1; i < len(buf)-1; i++ {
			buf[i] = fill
		}
	}
	buf[len(buf)-1] = applyMask(last[0], rangeMask(0, s.bit2), value)

	return put(ctx, dev, addr1, buf)
}

// Set sets every bit of r to 1.
func (e *Engine) Set(ctx context.Context, dev device.Device, base uint64, r Range) error {
	return e.WriteRange(ctx, dev, base, r, true)
}

// Clear sets every bit of r to 0.
func (e *Engine) Clear(ctx context.Context, dev device.Device, base uint64, r Range) error {
	return e.WriteRange(ctx, dev, base, r, false)
}

// SetAt sets bit i.
func (e *Engine) SetAt(ctx context.Context, dev device.Device, base, i uint64) error {
	return e.WriteRange(ctx, dev, base, Bit(i), true)
}

// ClearAt clears bit i.
func (e *Engine) ClearAt(ctx context.Context, dev device.Device, base, i uint64) error {
	return e.WriteRange(ctx, dev, base, Bit(i), false)
}

// WriteRange sets every bit of r to value using the default engine.
func WriteRange(ctx context.Context, dev device.Device, base uint64, r Range, value bool) error {
	return defaultEngine.WriteRange(ctx, dev, base, r, value)
}

// Set sets every bit of r using the default engine.
func Set(ctx context.Context, dev device.Device, base uint64, r Range) error {
	return defaultEngine.Set(ctx, dev, base, r)
}

// Clear clears every bit of r using the default engine.
func Clear(ctx context.Context, dev device.Device, base uint64, r Range) error {
	return defaultEngine.Clear(ctx, dev, base, r)
}

// SetAt sets bit i using the default engine.
func SetAt(ctx context.Context, dev device.Device, base, i uint64) error {
	return defaultEngine.SetAt(ctx, dev, base, i)
}

// ClearAt clears bit i using the default engine.
func ClearAt(ctx context.Context, dev device.Device, base, i uint64) error {
	return defaultEngine.ClearAt(ctx, dev, base, i)
}
