package devbitmap

import (
	"context"
	"iter"

	"github.com/hupe1980/devbitmap/device"
)

// DefaultChunkBytes is the device read size used by Bits when none is given.
const DefaultChunkBytes = 4096

// BitIterator streams the bits of a range without materialising them.
//
// Each call to All starts a fresh pass that re-reads the device
// (restartable-with-refetch). The first device error ends the pass and is
// reported by Err.
type BitIterator struct {
	ctx        context.Context
	dev        device.Device
	base       uint64
	r          Range
	chunkBytes int
	err        error
}

// Bits returns an iterator over the bits of r that reads the device in pieces
// of chunkBytes bytes. chunkBytes <= 0 selects DefaultChunkBytes.
func Bits(ctx context.Context, dev device.Device, base uint64, r Range, chunkBytes int) *BitIterator {
	if chunkBytes <= 0 {
		chunkBytes = DefaultChunkBytes
	}
	return &BitIterator{
		ctx:        ctx,
		dev:        dev,
		base:       base,
		r:          r,
		chunkBytes: chunkBytes,
	}
}

// Err returns the error that ended the most recent pass, if any.
func (it *BitIterator) Err() error {
	return it.err
}

// All yields (index, bit) pairs in ascending index order.
func (it *BitIterator) All() iter.Seq2[uint64, bool] {
	return func(yield func(uint64, bool) bool) {
		it.err = it.r.Validate()
		if it.err != nil {
			return
		}

		s := decompose(it.r)
		for off := s.byte1; off <= s.byte2; off += uint64(it.chunkBytes) {
			size := int(min(uint64(it.chunkBytes), s.byte2-off+1))
			buf, err := get(it.ctx, it.dev, it.base+off, size)
			if err != nil {
				it.err = err
				return
			}

			for j, b := range buf {
				first := (off + uint64(j)) * 8
				for p := uint(0); p < 8; p++ {
					idx := first + uint64(p)
					if idx < it.r.Start {
						continue
					}
					if idx > it.r.End {
						return
					}
					if !yield(idx, bitAt(b, p)) {
						return
					}
				}
			}
		}
	}
}
