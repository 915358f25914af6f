package device

import (
	"context"
	"errors"
)

var (
	// ErrInvalidLength is returned by Get when a negative length is requested.
	ErrInvalidLength = errors.New("device: invalid length")
	// ErrClosed is returned when a closed store is accessed.
	ErrClosed = errors.New("device: closed")
)

// Device is a synchronous, random-access byte store.
//
// Implementations must satisfy the following:
//   - Get returns exactly n bytes. Bytes past the end of the store are zero.
//   - Put overwrites exactly [addr, addr+len(p)) and extends the store as
//     needed. Any gap between the previous end and addr reads as zero.
//   - Operations larger than a backend's single-request limit are split
//     transparently; callers observe one unbounded operation.
type Device interface {
	// Get reads n bytes starting at addr.
	Get(ctx context.Context, addr uint64, n int) ([]byte, error)
	// Put writes p starting at addr.
	Put(ctx context.Context, addr uint64, p []byte) error
}

// ForEachChunk calls fn for consecutive pieces of [0, n), each at most
// maxSize bytes long. maxSize <= 0 means unbounded. Iteration stops at the
// first error, which is returned.
func ForEachChunk(n, maxSize int, fn func(off, size int) error) error {
	if maxSize <= 0 {
		maxSize = n
	}
	for off := 0; off < n; off += maxSize {
		if err := fn(off, min(maxSize, n-off)); err != nil {
			return err
		}
	}
	return nil
}
