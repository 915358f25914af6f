package device

import (
	"context"
	"errors"
	"sync"
)

var errInjected = errors.New("injected failure")

// recorder wraps a Device and remembers every request size.
type recorder struct {
	Device

	mu   sync.Mutex
	gets []int
	puts []int
}

func (r *recorder) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	r.mu.Lock()
	r.gets = append(r.gets, n)
	r.mu.Unlock()
	return r.Device.Get(ctx, addr, n)
}

func (r *recorder) Put(ctx context.Context, addr uint64, p []byte) error {
	r.mu.Lock()
	r.puts = append(r.puts, len(p))
	r.mu.Unlock()
	return r.Device.Put(ctx, addr, p)
}

// faulty fails every operation touching [from, ∞).
type faulty struct {
	Device
	from uint64
}

func (f *faulty) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if addr+uint64(n) > f.from {
		return nil, errInjected
	}
	return f.Device.Get(ctx, addr, n)
}

func (f *faulty) Put(ctx context.Context, addr uint64, p []byte) error {
	if addr+uint64(len(p)) > f.from {
		return errInjected
	}
	return f.Device.Put(ctx, addr, p)
}
