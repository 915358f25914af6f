package device

import (
	"context"
	"sync"
)

// Memory is an in-memory Device.
// It grows on writes past its end and is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemory creates a Memory device holding a copy of initial.
func NewMemory(initial []byte) *Memory {
	data := make([]byte, len(initial))
	copy(data, initial)
	return &Memory{data: data}
}

// Get reads n bytes at addr, zero padding past the end of the buffer.
func (m *Memory) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]byte, n)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if addr < uint64(len(m.data)) {
		copy(out, m.data[addr:])
	}
	return out, nil
}

// Put writes p at addr. Writing past the end zero-fills the gap.
func (m *Memory) Put(ctx context.Context, addr uint64, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	end := addr + uint64(len(p))
	if end > uint64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-uint64(len(m.data)))...)
	}
	copy(m.data[addr:end], p)
	return nil
}

// Len returns the current size of the store in bytes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Bytes returns a copy of the store contents.
func (m *Memory) Bytes() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
