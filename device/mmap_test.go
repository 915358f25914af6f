//go:build unix

package device

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap_GrowAndPersist(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bitmap.img")

	dev, err := OpenMmap(path)
	require.NoError(t, err)
	assert.Equal(t, 0, dev.Size())

	got, err := dev.Get(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, got)

	require.NoError(t, dev.Put(ctx, 3, []byte{0xF0, 0x0F}))
	assert.Equal(t, 5, dev.Size())

	got, err = dev.Get(ctx, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0xF0, 0x0F, 0, 0, 0}, got)

	require.NoError(t, dev.Put(ctx, 0, []byte{0x80}))
	require.NoError(t, dev.Sync())
	require.NoError(t, dev.Close())
	require.NoError(t, dev.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0, 0, 0xF0, 0x0F}, data)

	reopened, err := OpenMmap(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err = reopened.Get(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x0F}, got)
}

func TestMmap_Closed(t *testing.T) {
	ctx := context.Background()
	dev, err := OpenMmap(filepath.Join(t.TempDir(), "closed.img"))
	require.NoError(t, err)
	require.NoError(t, dev.Close())

	_, err = dev.Get(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, dev.Put(ctx, 0, []byte{1}), ErrClosed)
	assert.ErrorIs(t, dev.Sync(), ErrClosed)
}
