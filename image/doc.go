// Package image exports and imports a byte range of a device as a
// self-describing, checksummed and optionally compressed blob.
//
// # Format
//
//	offset  size  field
//	0       4     magic "DBMI"
//	4       1     version (1)
//	5       1     codec (0 none, 1 lz4, 2 zstd)
//	6       8     raw length, little endian
//	14      4     CRC32-Castagnoli of the raw bytes, little endian
//	18      8     payload length, little endian
//	26      ...   payload
//
// # Usage
//
//	var buf bytes.Buffer
//	err := image.Export(ctx, &buf, dev, 0, 4096, image.WithCodec(image.CodecZSTD))
//
//	n, err := image.Import(ctx, &buf, other, 0)
package image
