package mmap

import (
	"errors"
	"math"
	"os"
)

// Mapping is a shared read-write mapping of a file.
// It is not safe for concurrent use; callers serialise access.
type Mapping struct {
	f       *os.File
	data    []byte
	pattern AccessPattern
	closed  bool
}

// Indirections over the OS calls so tests can inject failures.
var (
	mapFile       = osMap
	unmapFile     = osUnmap
	adviseMapping = osAdvise
)

// OpenRW maps the file at path, creating it if it does not exist.
// An empty file is valid and yields an empty mapping.
func OpenRW(path string) (*Mapping, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fi.Size() > math.MaxInt {
		_ = f.Close()
		return nil, ErrInvalidSize
	}

	m := &Mapping{f: f}
	if err := m.remap(int(fi.Size())); err != nil {
		_ = f.Close()
		return nil, err
	}
	return m, nil
}

// remap replaces the mapping with one of size bytes. The new region is
// mapped before the old one is released, so on failure the previous
// mapping stays intact and usable.
func (m *Mapping) remap(size int) error {
	if size == 0 {
		return nil
	}
	data, err := mapFile(m.f, size)
	if err != nil {
		return err
	}
	if m.pattern != AccessDefault {
		if err := adviseMapping(data, m.pattern); err != nil {
			_ = unmapFile(data)
			return err
		}
	}

	old := m.data
	m.data = data
	if old != nil {
		return unmapFile(old)
	}
	return nil
}

// Bytes returns the mapped memory. The slice is valid until the next Grow or Close.
func (m *Mapping) Bytes() []byte {
	if m.closed {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// Grow extends the file to size bytes and remaps it. The new region reads as
// zero. Sizes not larger than the current one are a no-op.
func (m *Mapping) Grow(size int) error {
	if m.closed {
		return ErrClosed
	}
	if size < 0 {
		return ErrInvalidSize
	}
	if size <= len(m.data) {
		return nil
	}
	if err := m.f.Truncate(int64(size)); err != nil {
		return err
	}
	return m.remap(size)
}

// Advise provides hints to the kernel about how the memory will be accessed.
// The pattern is kept and re-applied whenever Grow remaps.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed {
		return ErrClosed
	}
	m.pattern = pattern
	if m.data == nil {
		return nil
	}
	return adviseMapping(m.data, pattern)
}

// Sync flushes modified pages to the file.
func (m *Mapping) Sync() error {
	if m.closed {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osSync(m.data)
}

// Close unmaps the memory and closes the file. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.data != nil {
		err = unmapFile(m.data)
		m.data = nil
	}
	return errors.Join(err, m.f.Close())
}
