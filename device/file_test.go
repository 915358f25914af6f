package device

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRW records ReadAt/WriteAt request sizes on top of a file.
type countingRW struct {
	*os.File
	reads  []int
	writes []int
}

func (c *countingRW) ReadAt(p []byte, off int64) (int, error) {
	c.reads = append(c.reads, len(p))
	return c.File.ReadAt(p, off)
}

func (c *countingRW) WriteAt(p []byte, off int64) (int, error) {
	c.writes = append(c.writes, len(p))
	return c.File.WriteAt(p, off)
}

// shortWriter accepts one byte less than requested.
type shortWriter struct {
	io.ReaderAt
}

func (shortWriter) WriteAt(p []byte, _ int64) (int, error) {
	return len(p) - 1, nil
}

func TestFile_Lifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "volume.img")

	dev, err := OpenFile(path)
	require.NoError(t, err)

	// Fresh file reads as zeros.
	got, err := dev.Get(ctx, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, got)

	require.NoError(t, dev.Put(ctx, 0, []byte{0xAB, 0xCD}))
	got, err = dev.Get(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD, 0, 0, 0}, got)

	// Write past the end leaves a zero gap.
	require.NoError(t, dev.Put(ctx, 6, []byte{0x11}))
	size, err := dev.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)

	got, err = dev.Get(ctx, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD, 0, 0, 0, 0, 0x11}, got)

	require.NoError(t, dev.Sync())
	require.NoError(t, dev.Close())
	require.NoError(t, dev.Close())

	_, err = dev.Get(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, dev.Put(ctx, 0, []byte{1}), ErrClosed)
	assert.ErrorIs(t, dev.Sync(), ErrClosed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD, 0, 0, 0, 0, 0x11}, data)
}

func TestFile_MaxIO(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chunked.img")

	dev, err := OpenFile(path, func(o *FileOptions) {
		o.MaxIO = 3
	})
	require.NoError(t, err)
	defer dev.Close()

	data := []byte("0123456789")
	require.NoError(t, dev.Put(ctx, 0, data))

	got, err := dev.Get(ctx, 0, len(data)+2)
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte{}, data...), 0, 0), got)
}

func TestReadWriterAt_Chunking(t *testing.T) {
	ctx := context.Background()
	f, err := os.Create(filepath.Join(t.TempDir(), "rw.img"))
	require.NoError(t, err)
	defer f.Close()

	rw := &countingRW{File: f}
	dev := NewReadWriterAt(rw, 4)

	payload := bytes.Repeat([]byte{0x5A}, 10)
	require.NoError(t, dev.Put(ctx, 2, payload))
	assert.Equal(t, []int{4, 4, 2}, rw.writes)

	got, err := dev.Get(ctx, 0, 18)
	require.NoError(t, err)

	want := make([]byte, 18)
	copy(want[2:], payload)
	assert.Equal(t, want, got)

	// The fourth chunk starts at EOF; the fifth is never requested.
	assert.Equal(t, []int{4, 4, 4, 4}, rw.reads)
}

func TestReadWriterAt_ShortWrite(t *testing.T) {
	dev := NewReadWriterAt(shortWriter{ReaderAt: bytes.NewReader(nil)}, 0)

	err := dev.Put(context.Background(), 0, []byte{1, 2, 3})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestReadWriterAt_InvalidLength(t *testing.T) {
	dev := NewReadWriterAt(shortWriter{ReaderAt: bytes.NewReader(nil)}, 0)

	_, err := dev.Get(context.Background(), 0, -1)
	assert.ErrorIs(t, err, ErrInvalidLength)
}
