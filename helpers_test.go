package devbitmap

import (
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/devbitmap/device"
	"github.com/hupe1980/devbitmap/testutil"
)

var errBoom = errors.New("boom")

type call struct {
	op   string
	addr uint64
	n    int
}

// tracingDevice records every call made to the wrapped device.
type tracingDevice struct {
	inner device.Device

	mu    sync.Mutex
	calls []call
}

func newTracingDevice(initial []byte) *tracingDevice {
	return &tracingDevice{inner: device.NewMemory(initial)}
}

func (d *tracingDevice) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	d.record("get", addr, n)
	return d.inner.Get(ctx, addr, n)
}

func (d *tracingDevice) Put(ctx context.Context, addr uint64, p []byte) error {
	d.record("put", addr, len(p))
	return d.inner.Put(ctx, addr, p)
}

func (d *tracingDevice) record(op string, addr uint64, n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call{op: op, addr: addr, n: n})
}

func (d *tracingDevice) count(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (d *tracingDevice) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// failingGets returns a device whose Gets all fail with errBoom.
func failingGets() device.Device {
	return testutil.NewFaultyDevice(nil, testutil.Fault{FailAfterBytes: -1, FailGet: true, Err: errBoom})
}

// failingPuts returns a zero-filled device whose Puts all fail with errBoom.
func failingPuts() device.Device {
	return testutil.NewFaultyDevice(nil, testutil.Fault{FailAfterBytes: 0, Err: errBoom})
}

func bools(s string) []bool {
	out := make([]bool, 0, len(s))
	for _, c := range s {
		switch c {
		case '1':
			out = append(out, true)
		case '0':
			out = append(out, false)
		}
	}
	return out
}
