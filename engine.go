package devbitmap

import (
	"context"
	"time"

	"github.com/hupe1980/devbitmap/device"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger used for per-operation logging.
// Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &devbitmap.BasicMetricsCollector{}
//	eng := devbitmap.New(devbitmap.WithMetricsCollector(metrics))
//	// ... perform operations ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// Engine performs bit-range operations against devices.
//
// An Engine holds no device state: every call reads and writes the device
// passed to it and keeps nothing afterwards. It is safe for concurrent use,
// but concurrent writes to overlapping ranges race at the device.
type Engine struct {
	logger  *Logger
	metrics MetricsCollector
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

var defaultEngine = New()

// get reads n bytes at addr and wraps device failures.
func get(ctx context.Context, dev device.Device, addr uint64, n int) ([]byte, error) {
	b, err := dev.Get(ctx, addr, n)
	if err != nil {
		return nil, &DeviceError{Op: "get", Addr: addr, Len: n, Err: err}
	}
	return b, nil
}

// put writes p at addr and wraps device failures.
func put(ctx context.Context, dev device.Device, addr uint64, p []byte) error {
	if err := dev.Put(ctx, addr, p); err != nil {
		return &DeviceError{Op: "put", Addr: addr, Len: len(p), Err: err}
	}
	return nil
}

func (e *Engine) observeRead(ctx context.Context, base uint64, r Range, start time.Time, err error) {
	e.metrics.RecordRead(r.size(), time.Since(start), err)
	e.logger.LogRead(ctx, base, r, err)
}

func (e *Engine) observeWrite(ctx context.Context, base uint64, r Range, value bool, start time.Time, err error) {
	e.metrics.RecordWrite(r.size(), time.Since(start), err)
	e.logger.LogWrite(ctx, base, r, value, err)
}

func (e *Engine) observeScan(ctx context.Context, op string, base uint64, r Range, matches int, start time.Time, err error) {
	e.metrics.RecordScan(r.size(), matches, time.Since(start), err)
	e.logger.LogScan(ctx, op, base, r, matches, err)
}
