package device

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottleConfig holds the limits applied by a Throttled device.
type ThrottleConfig struct {
	// BytesPerSec caps the transfer rate of Get and Put combined.
	// If 0, unlimited.
	BytesPerSec int64

	// Burst is the largest number of bytes admitted at once.
	// Default: BytesPerSec
	Burst int

	// MaxInFlight bounds concurrent operations on the inner device.
	// If 0, unlimited.
	MaxInFlight int64
}

// Throttled limits the I/O rate and concurrency against an inner Device.
// Waiting honours context cancellation.
type Throttled struct {
	inner   Device
	limiter *rate.Limiter       // nil if unlimited
	sem     *semaphore.Weighted // nil if unlimited
}

// NewThrottled wraps inner with the given limits.
func NewThrottled(inner Device, cfg ThrottleConfig) *Throttled {
	t := &Throttled{inner: inner}

	if cfg.BytesPerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.BytesPerSec)
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), burst)
	}
	if cfg.MaxInFlight > 0 {
		t.sem = semaphore.NewWeighted(cfg.MaxInFlight)
	}
	return t
}

// Get reads n bytes at addr once the limits admit it.
func (t *Throttled) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	release, err := t.admit(ctx, n)
	if err != nil {
		return nil, err
	}
	defer release()

	return t.inner.Get(ctx, addr, n)
}

// Put writes p at addr once the limits admit it.
func (t *Throttled) Put(ctx context.Context, addr uint64, p []byte) error {
	release, err := t.admit(ctx, len(p))
	if err != nil {
		return err
	}
	defer release()

	return t.inner.Put(ctx, addr, p)
}

func (t *Throttled) admit(ctx context.Context, n int) (func(), error) {
	release := func() {}
	if t.sem != nil {
		if err := t.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		release = func() { t.sem.Release(1) }
	}

	if t.limiter != nil {
		// WaitN rejects requests larger than the burst, so wait in slices.
		burst := t.limiter.Burst()
		for n > 0 {
			k := min(n, burst)
			if err := t.limiter.WaitN(ctx, k); err != nil {
				release()
				return nil, err
			}
			n -= k
		}
	}
	return release, nil
}
