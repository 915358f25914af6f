package devbitmap

import (
	"context"
	"math/bits"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/devbitmap/device"
)

// All returns, in ascending order, every index in r whose bit equals target.
func (e *Engine) All(ctx context.Context, dev device.Device, base uint64, r Range, target bool) (out []uint64, err error) {
	defer func(start time.Time) { e.observeScan(ctx, "all", base, r, len(out), start, err) }(time.Now())
	return all(ctx, dev, base, r, target)
}

func all(ctx context.Context, dev device.Device, base uint64, r Range, target bool) ([]uint64, error) {
	bs, err := readBits(ctx, dev, base, r)
	if err != nil {
		return nil, err
	}
	var out []uint64
	for k, b := range bs {
		if b == target {
			out = append(out, r.Start+uint64(k))
		}
	}
	return out, nil
}

// Find returns the lowest index in r whose bit equals target.
// ok is false when there is none.
func (e *Engine) Find(ctx context.Context, dev device.Device, base uint64, r Range, target bool) (idx uint64, ok bool, err error) {
	defer func(start time.Time) {
		matches := 0
		if ok {
			matches = 1
		}
		e.observeScan(ctx, "find", base, r, matches, start, err)
	}(time.Now())

	bs, err := readBits(ctx, dev, base, r)
	if err != nil {
		return 0, false, err
	}
	if k := slices.Index(bs, target); k >= 0 {
		return r.Start + uint64(k), true, nil
	}
	return 0, false, nil
}

// Search returns, in ascending order, every index i in r such that the
// len(pattern) bits starting at i equal pattern. Matches may overlap and
// must lie entirely within r.
func (e *Engine) Search(ctx context.Context, dev device.Device, base uint64, r Range, pattern []bool) (out []uint64, err error) {
	defer func(start time.Time) { e.observeScan(ctx, "search", base, r, len(out), start, err) }(time.Now())

	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	bs, err := readBits(ctx, dev, base, r)
	if err != nil {
		return nil, err
	}
	for k := 0; k+len(pattern) <= len(bs); k++ {
		if slices.Equal(bs[k:k+len(pattern)], pattern) {
			out = append(out, r.Start+uint64(k))
		}
	}
	return out, nil
}

// Count returns how many bits of r equal target.
func (e *Engine) Count(ctx context.Context, dev device.Device, base uint64, r Range, target bool) (n uint64, err error) {
	defer func(start time.Time) { e.observeScan(ctx, "count", base, r, int(n), start, err) }(time.Now())

	buf, s, err := readBytes(ctx, dev, base, r)
	if err != nil {
		return 0, err
	}

	// Drop the bits outside r from the boundary bytes before counting.
	last := len(buf) - 1
	if last == 0 {
		buf[0] &= rangeMask(s.bit1, s.bit2)
	} else {
		buf[0] &= rangeMask(s.bit1, 7)
		buf[last] &= rangeMask(0, s.bit2)
	}

	var ones uint64
	for _, b := range buf {
		ones += uint64(bits.OnesCount8(b))
	}
	if target {
		return ones, nil
	}
	return r.Len() - ones, nil
}

// Collect is All returning a compressed roaring bitmap, which stays small
// for long runs of matching bits.
func (e *Engine) Collect(ctx context.Context, dev device.Device, base uint64, r Range, target bool) (rb *roaring64.Bitmap, err error) {
	defer func(start time.Time) {
		matches := 0
		if rb != nil {
			matches = int(rb.GetCardinality())
		}
		e.observeScan(ctx, "collect", base, r, matches, start, err)
	}(time.Now())

	indices, err := all(ctx, dev, base, r, target)
	if err != nil {
		return nil, err
	}
	rb = roaring64.New()
	rb.AddMany(indices)
	return rb, nil
}

// All returns every index in r whose bit equals target using the default engine.
func All(ctx context.Context, dev device.Device, base uint64, r Range, target bool) ([]uint64, error) {
	return defaultEngine.All(ctx, dev, base, r, target)
}

// Find returns the lowest index in r whose bit equals target using the default engine.
func Find(ctx context.Context, dev device.Device, base uint64, r Range, target bool) (uint64, bool, error) {
	return defaultEngine.Find(ctx, dev, base, r, target)
}

// Search returns every start index of pattern in r using the default engine.
func Search(ctx context.Context, dev device.Device, base uint64, r Range, pattern []bool) ([]uint64, error) {
	return defaultEngine.Search(ctx, dev, base, r, pattern)
}

// Count returns how many bits of r equal target using the default engine.
func Count(ctx context.Context, dev device.Device, base uint64, r Range, target bool) (uint64, error) {
	return defaultEngine.Count(ctx, dev, base, r, target)
}

// Collect returns All as a roaring bitmap using the default engine.
func Collect(ctx context.Context, dev device.Device, base uint64, r Range, target bool) (*roaring64.Bitmap, error) {
	return defaultEngine.Collect(ctx, dev, base, r, target)
}
