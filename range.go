package devbitmap

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Range is an inclusive range of bit indices relative to a bitmap's base
// address.
type Range struct {
	Start uint64
	End   uint64
}

// Bit returns the single-bit range (i, i).
func Bit(i uint64) Range {
	return Range{Start: i, End: i}
}

// NewRange converts integer bounds of any width into a Range.
//
// Negative bounds and Start > End return ErrInvalidRange; values are never
// truncated.
func NewRange[T constraints.Integer](start, end T) (Range, error) {
	if start < 0 || end < 0 {
		return Range{}, fmt.Errorf("%w: negative bound (%d, %d)", ErrInvalidRange, start, end)
	}
	r := Range{Start: uint64(start), End: uint64(end)}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Narrow converts engine indices to a narrower integer type. It returns
// ErrIndexOverflow instead of truncating.
func Narrow[T constraints.Integer](indices []uint64) ([]T, error) {
	out := make([]T, len(indices))
	for i, v := range indices {
		t := T(v)
		if t < 0 || uint64(t) != v {
			return nil, fmt.Errorf("%w: %d", ErrIndexOverflow, v)
		}
		out[i] = t
	}
	return out, nil
}

// Len returns the number of bits in the range.
func (r Range) Len() uint64 {
	return r.End - r.Start + 1
}

// size is Len for valid ranges and 0 otherwise.
func (r Range) size() uint64 {
	if r.Start > r.End {
		return 0
	}
	return r.Len()
}

// Validate reports whether the engine can operate on r.
func (r Range) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("%w: start %d > end %d", ErrInvalidRange, r.Start, r.End)
	}
	if r.End-r.Start >= math.MaxInt {
		return fmt.Errorf("%w: (%d, %d) is too large", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// span is a Range decomposed into byte/bit coordinates.
type span struct {
	byte1, byte2 uint64 // first and last byte offsets relative to base
	bit1, bit2   uint   // bit positions within those bytes, 0 = MSB
}

func decompose(r Range) span {
	return span{
		byte1: r.Start / 8,
		bit1:  uint(r.Start % 8),
		byte2: r.End / 8,
		bit2:  uint(r.End % 8),
	}
}

// bytes returns the number of bytes touched by the span.
func (s span) bytes() int {
	return int(s.byte2 - s.byte1 + 1)
}
