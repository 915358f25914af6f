package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/devbitmap/device"
	"github.com/minio/minio-go/v7"
)

// DefaultMaxRangeSize is the largest ranged GET issued by a Device.
const DefaultMaxRangeSize = 8 * 1024 * 1024

type options struct {
	maxRangeSize int
}

// Option configures a Device.
type Option func(*options)

// WithMaxRangeSize caps the size of a single ranged GetObject.
func WithMaxRangeSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRangeSize = n
		}
	}
}

// Device is a device.Device stored in one MinIO object.
type Device struct {
	client *minio.Client
	bucket string
	key    string
	opts   options

	mu sync.Mutex // serialises Put
}

var _ device.Device = (*Device)(nil)

// NewDevice creates a Device for bucket/key.
func NewDevice(client *minio.Client, bucket, key string, opts ...Option) *Device {
	o := options{maxRangeSize: DefaultMaxRangeSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Device{
		client: client,
		bucket: bucket,
		key:    key,
		opts:   o,
	}
}

// Get reads n bytes at addr.
func (d *Device) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, device.ErrInvalidLength
	}

	size, err := d.size(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]byte, n)
	if addr >= size || n == 0 {
		return out, nil
	}
	avail := int(min(uint64(n), size-addr))
	if err := d.read(ctx, addr, out[:avail]); err != nil {
		return nil, err
	}
	return out, nil
}

// Put writes p at addr by rewriting the object.
func (d *Device) Put(ctx context.Context, addr uint64, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	size, err := d.size(ctx)
	if err != nil {
		return err
	}

	end := addr + uint64(len(p))
	body := make([]byte, max(size, end))
	if err := d.read(ctx, 0, body[:size]); err != nil {
		return err
	}
	copy(body[addr:end], p)

	_, err = d.client.PutObject(ctx, d.bucket, d.key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", d.bucket, d.key, err)
	}
	return nil
}

func (d *Device) size(ctx context.Context) (uint64, error) {
	info, err := d.client.StatObject(ctx, d.bucket, d.key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to stat %s/%s: %w", d.bucket, d.key, err)
	}
	return uint64(info.Size), nil
}

func (d *Device) read(ctx context.Context, off uint64, p []byte) error {
	return device.ForEachChunk(len(p), d.opts.maxRangeSize, func(o, size int) error {
		start := int64(off) + int64(o)

		opts := minio.GetObjectOptions{}
		if err := opts.SetRange(start, start+int64(size)-1); err != nil {
			return err
		}
		obj, err := d.client.GetObject(ctx, d.bucket, d.key, opts)
		if err != nil {
			return fmt.Errorf("failed to read %s/%s at %d: %w", d.bucket, d.key, start, err)
		}
		defer func() { _ = obj.Close() }()

		if _, err := io.ReadFull(obj, p[o:o+size]); err != nil {
			return fmt.Errorf("failed to read %s/%s at %d: %w", d.bucket, d.key, start, err)
		}
		return nil
	})
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	default:
		return false
	}
}
