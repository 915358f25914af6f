// Package device provides the byte-addressable storage contract that bitmaps
// are laid out on, together with in-process stores and composable wrappers.
//
// A Device exposes two operations:
//
//	type Device interface {
//	    Get(ctx, addr, n) ([]byte, error) // exactly n bytes, zero padded past the end
//	    Put(ctx, addr, p) error           // overwrite [addr, addr+len(p)), extending the store
//	}
//
// # Built-in Stores
//
//   - Memory: growable in-memory buffer (tests, scratch volumes)
//   - File: *os.File with chunked pread/pwrite
//   - Mmap: shared read-write memory mapping that grows on demand
//   - ReadWriterAt: adapter for any io.ReaderAt + io.WriterAt
//
// Remote stores live in sub-packages: device/s3, device/minio and
// device/dynamodb.
//
// # Wrappers
//
//   - Chunked: splits large operations into bounded pieces (parallel reads)
//   - Offset: shifts every address, e.g. to expose one partition of a volume
//   - Throttled: byte-rate and in-flight limits for shared backends
//
// # Zero Padding and Gaps
//
// Reads never fail because the store is too short; the missing tail is
// returned as zero bytes. Writes past the current end extend the store and
// the gap between the old end and the write offset reads as zero.
package device
