package device

import (
	"context"
	"fmt"
)

// Offset exposes the part of an inner Device starting at a fixed byte offset.
type Offset struct {
	inner  Device
	offset uint64
}

// NewOffset creates a view of inner whose address 0 is inner's offset.
func NewOffset(inner Device, offset uint64) *Offset {
	return &Offset{inner: inner, offset: offset}
}

// Get reads n bytes at addr+offset of the inner device.
func (o *Offset) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	b, err := o.inner.Get(ctx, o.offset+addr, n)
	if err != nil {
		return nil, fmt.Errorf(
			"reading additional offset `%d` from base offset `%d`: %w",
			addr,
			o.offset,
			err,
		)
	}
	return b, nil
}

// Put writes p at addr+offset of the inner device.
func (o *Offset) Put(ctx context.Context, addr uint64, p []byte) error {
	if err := o.inner.Put(ctx, o.offset+addr, p); err != nil {
		return fmt.Errorf(
			"writing additional offset `%d` from base offset `%d`: %w",
			addr,
			o.offset,
			err,
		)
	}
	return nil
}
