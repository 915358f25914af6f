// Package mmap provides shared, read-write memory mappings of files that can
// grow in place.
//
// # Usage
//
//	m, err := mmap.OpenRW("bitmap.img")
//	if err != nil { ... }
//	defer m.Close()
//
//	if err := m.Grow(1 << 20); err != nil { ... }
//	copy(m.Bytes()[4096:], block)
//	_ = m.Sync()
//
// Grow extends the file with ftruncate and remaps it, so any slice obtained
// from Bytes before Grow must not be used afterwards.
//
// # Platform Support
//
// Unix platforms use mmap(2), msync(2) and madvise(2) via golang.org/x/sys/unix.
// Other platforms return errors.ErrUnsupported as soon as a non-empty region
// has to be mapped.
package mmap
