package device

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
)

// DefaultMaxIO caps a single pread/pwrite issued by File.
// Linux transfers at most 0x7ffff000 bytes per call.
const DefaultMaxIO = 1 << 30

// FileOptions configures a File device.
type FileOptions struct {
	// MaxIO is the largest single read or write issued to the OS.
	// Default: DefaultMaxIO
	MaxIO int

	// Perm is used when the file is created.
	// Default: 0o644
	Perm os.FileMode
}

// File is a Device backed by a regular file or block device.
//
// Writes past the end of a regular file leave a hole, which the OS reads back
// as zeros.
type File struct {
	f      *os.File
	rw     *ReadWriterAt
	closed atomic.Bool
}

// OpenFile opens (creating if necessary) the file at path for reading and
// writing.
func OpenFile(path string, optFns ...func(*FileOptions)) (*File, error) {
	opts := FileOptions{
		MaxIO: DefaultMaxIO,
		Perm:  0o644,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, opts.Perm)
	if err != nil {
		return nil, err
	}
	return NewFile(f, opts.MaxIO), nil
}

// NewFile wraps an already open file. The File takes ownership of f.
func NewFile(f *os.File, maxIO int) *File {
	return &File{f: f, rw: NewReadWriterAt(f, maxIO)}
}

// Get reads n bytes at addr.
func (d *File) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	b, err := d.rw.Get(ctx, addr, n)
	if err != nil {
		return nil, fmt.Errorf("reading file `%s` at offset `%d`: %w", d.f.Name(), addr, err)
	}
	return b, nil
}

// Put writes p at addr.
func (d *File) Put(ctx context.Context, addr uint64, p []byte) error {
	if d.closed.Load() {
		return ErrClosed
	}
	if err := d.rw.Put(ctx, addr, p); err != nil {
		return fmt.Errorf("writing file `%s` at offset `%d`: %w", d.f.Name(), addr, err)
	}
	return nil
}

// Name returns the path of the underlying file.
func (d *File) Name() string {
	return d.f.Name()
}

// Size returns the current file size in bytes.
func (d *File) Size() (int64, error) {
	fi, err := d.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Sync flushes written data to stable storage.
func (d *File) Sync() error {
	if d.closed.Load() {
		return ErrClosed
	}
	return d.f.Sync()
}

// Close closes the file. It is safe to call more than once.
func (d *File) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}
	return d.f.Close()
}
