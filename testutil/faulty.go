package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/devbitmap/device"
)

// ErrInjected is the default error returned by a FaultyDevice.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail puts once this many bytes were written. -1 to disable.
	FailGet        bool
	Err            error // Defaults to ErrInjected.
}

// FaultyDevice is a device.Device wrapper that can inject errors.
type FaultyDevice struct {
	dev device.Device

	mu      sync.Mutex
	fault   Fault
	written int64
}

// NewFaultyDevice wraps dev (a fresh Memory device if nil).
func NewFaultyDevice(dev device.Device, fault Fault) *FaultyDevice {
	if dev == nil {
		dev = device.NewMemory(nil)
	}
	return &FaultyDevice{dev: dev, fault: fault}
}

// SetFault replaces the active fault.
func (f *FaultyDevice) SetFault(fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fault = fault
}

// Written returns the number of bytes successfully written.
func (f *FaultyDevice) Written() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

func (f *FaultyDevice) err() error {
	if f.fault.Err != nil {
		return f.fault.Err
	}
	return ErrInjected
}

// Get implements device.Device.
func (f *FaultyDevice) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	f.mu.Lock()
	fail := f.fault.FailGet
	err := f.err()
	f.mu.Unlock()

	if fail {
		return nil, err
	}
	return f.dev.Get(ctx, addr, n)
}

// Put implements device.Device.
func (f *FaultyDevice) Put(ctx context.Context, addr uint64, p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fault.FailAfterBytes >= 0 && f.written+int64(len(p)) > f.fault.FailAfterBytes {
		return f.err()
	}
	if err := f.dev.Put(ctx, addr, p); err != nil {
		return err
	}
	f.written += int64(len(p))
	return nil
}
