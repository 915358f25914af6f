// Package minio provides a device.Device backed by a single object in MinIO
// or any other S3-compatible storage.
//
// # Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	dev := devminio.NewDevice(client, "bitmaps", "free.bin")
//
// Semantics match the s3 device: ranged reads, zero padding past the end of
// the object, and whole-object rewrites on Put.
package minio
