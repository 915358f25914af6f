// Package s3 provides a device.Device backed by a single Amazon S3 object.
//
// # Usage
//
//	dev, err := s3.New(ctx, "my-bucket", "bitmaps/free.bin",
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = devbitmap.Set(ctx, dev, 0, devbitmap.Range{Start: 0, End: 127})
//
// # Semantics
//
//   - Get issues ranged GetObject calls of at most MaxRangeSize bytes and
//     zero pads past the end of the object. A missing object reads as zeros.
//   - Put rewrites the whole object (S3 objects are immutable), zero filling
//     any gap, and uploads it with the multipart uploader.
//
// Put is a read-modify-write of the object. Puts through one Device are
// serialised; concurrent writers on different hosts are not coordinated.
package s3
