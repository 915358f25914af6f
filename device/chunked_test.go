package device

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunked_MatchesUnboundedDevice(t *testing.T) {
	ctx := context.Background()

	data := make([]byte, 37)
	for i := range data {
		data[i] = byte(i * 7)
	}

	inner := &recorder{Device: NewMemory(nil)}
	dev := NewChunked(inner, func(o *ChunkedOptions) {
		o.MaxIO = 8
		o.Concurrency = 3
	})

	require.NoError(t, dev.Put(ctx, 5, data))
	assert.Equal(t, []int{8, 8, 8, 8, 5}, inner.puts)

	got, err := dev.Get(ctx, 0, 50)
	require.NoError(t, err)

	want := make([]byte, 50)
	copy(want[5:], data)
	assert.Equal(t, want, got)

	assert.Len(t, inner.gets, 7)
	for _, n := range inner.gets {
		assert.LessOrEqual(t, n, 8)
	}
}

func TestChunked_SmallRequestsPassThrough(t *testing.T) {
	inner := &recorder{Device: NewMemory([]byte{1, 2, 3})}
	dev := NewChunked(inner)

	got, err := dev.Get(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, []int{3}, inner.gets)
}

func TestChunked_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	inner := &faulty{Device: NewMemory(bytes.Repeat([]byte{0xFF}, 64)), from: 40}
	dev := NewChunked(inner, func(o *ChunkedOptions) {
		o.MaxIO = 16
	})

	_, err := dev.Get(ctx, 0, 64)
	assert.ErrorIs(t, err, errInjected)

	err = dev.Put(ctx, 0, make([]byte, 64))
	assert.ErrorIs(t, err, errInjected)

	// Chunks before the failing one were written in order.
	got, err := inner.Device.Get(ctx, 0, 64)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), got[:32])
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 32), got[32:])

	_, err = dev.Get(ctx, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestChunked_Defaults(t *testing.T) {
	dev := NewChunked(NewMemory(nil), func(o *ChunkedOptions) {
		o.MaxIO = 0
		o.Concurrency = -1
	})
	assert.Equal(t, DefaultChunkedOptions().MaxIO, dev.opts.MaxIO)
	assert.Equal(t, 1, dev.opts.Concurrency)
}
