// Package devbitmap implements a bit-addressable bitmap on top of a
// random-access byte device.
//
// A bitmap is not an in-memory object: it is the sequence of bits stored at
// device addresses base, base+1, base+2, ..., each byte expanded MSB-first
// (bit 0 of a byte is 0x80, bit 7 is 0x01). Bit i of the byte at base+a is
// index a*8+i. There is no header, checksum or length; the caller decides
// where a bitmap lives and how many bits it has.
//
// # Quick Start
//
//	dev := device.NewMemory(nil)
//	ctx := context.Background()
//
//	// Mark blocks 3..12 as used.
//	_ = devbitmap.Set(ctx, dev, 0, devbitmap.Range{Start: 3, End: 12})
//
//	// First free block in [0, 1023].
//	idx, ok, _ := devbitmap.Find(ctx, dev, 0, devbitmap.Range{End: 1023}, false)
//
// # Operations
//
//   - Read, ReadAt: bits of a range or a single bit
//   - WriteRange, Set, Clear, SetAt, ClearAt: masked read-modify-write
//   - All, Find, Count, Collect: indices (or number) of bits equal to a value
//   - Search: start indices of a bit pattern (overlapping matches)
//   - Bits: lazy, chunked iteration over a range
//
// Package-level functions use a default Engine without logging or metrics.
// Create an Engine with New to attach a Logger or MetricsCollector.
//
// # Ranges and Index Types
//
// Ranges are inclusive and use uint64 indices. Use NewRange to convert from
// other integer types and Narrow to convert results back; neither truncates.
// Ranges with Start > End are rejected with ErrInvalidRange. Overflow of
// base plus byte offset is not checked.
//
// # Concurrency
//
// Operations are synchronous and hold no locks. Concurrent writes to
// overlapping bit ranges, or to ranges sharing a boundary byte, race.
package devbitmap
