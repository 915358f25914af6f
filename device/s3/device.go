package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/devbitmap/device"
)

// Client is the subset of the S3 API used by Device.
// *s3.Client satisfies it.
type Client interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Device is a device.Device stored in one S3 object.
type Device struct {
	client   Client
	bucket   string
	key      string
	opts     options
	uploader *manager.Uploader

	mu sync.Mutex // serialises Put
}

var _ device.Device = (*Device)(nil)

// New creates a Device using credentials from the default AWS config chain.
func New(ctx context.Context, bucket, key string, opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var cfgOpts []func(*config.LoadOptions) error
	if o.region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewDevice(s3.NewFromConfig(cfg), bucket, key, opts...), nil
}

// NewDevice creates a Device over an existing client.
func NewDevice(client Client, bucket, key string, opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Device{
		client: client,
		bucket: bucket,
		key:    key,
		opts:   o,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = o.partSize
		}),
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

	_, err = d.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(d.bucket),
		Key:               aws.String(d.key),
		Body:              bytes.NewReader(body),
		ChecksumAlgorithm: types.ChecksumAlgorithmCrc32c,
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", d.bucket, d.key, err)
	}
	return nil
}

// size returns the object size, 0 if it does not exist.
func (d *Device) size(ctx context.Context) (uint64, error) {
	head, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to stat s3://%s/%s: %w", d.bucket, d.key, err)
	}
	return uint64(aws.ToInt64(head.ContentLength)), nil
}

// read fills p from the object starting at off. The range must lie inside
// the object.
func (d *Device) read(ctx context.Context, off uint64, p []byte) error {
	return device.ForEachChunk(len(p), d.opts.maxRangeSize, func(o, size int) error {
		start := off + uint64(o)
		resp, err := d.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(d.bucket),
			Key:    aws.String(d.key),
			Range:  aws.String(fmt.Sprintf("bytes=%d-%d", start, start+uint64(size)-1)),
		})
		if err != nil {
			return fmt.Errorf("failed to read s3://%s/%s at %d: %w", d.bucket, d.key, start, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if _, err := io.ReadFull(resp.Body, p[o:o+size]); err != nil {
			return fmt.Errorf("failed to read s3://%s/%s at %d: %w", d.bucket, d.key, start, err)
		}
		return nil
	})
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}
