package s3

// DefaultMaxRangeSize is the largest ranged GET issued by a Device.
const DefaultMaxRangeSize = 8 * 1024 * 1024

// DefaultPartSize is the multipart upload part size.
const DefaultPartSize = 8 * 1024 * 1024

type options struct {
	maxRangeSize int
	partSize     int64
	region       string
}

func defaultOptions() options {
	return options{
		maxRangeSize: DefaultMaxRangeSize,
		partSize:     DefaultPartSize,
	}
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

// WithPartSize sets the multipart upload part size (minimum 5 MiB, enforced
// by the uploader).
func WithPartSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.partSize = n
		}
	}
}

// WithRegion overrides the region loaded from the environment. Only used by New.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}
