package testutil

// RefBitmap is a naive MSB-first bitmap held in memory.
// Indices past the end read as false; Set grows the bitmap.
type RefBitmap struct {
	data []byte
}

// NewRefBitmap creates a reference bitmap over a copy of initial.
func NewRefBitmap(initial []byte) *RefBitmap {
	data := make([]byte, len(initial))
	copy(data, initial)
	return &RefBitmap{data: data}
}

// Get returns bit i.
func (b *RefBitmap) Get(i uint64) bool {
	if i/8 >= uint64(len(b.data)) {
		return false
	}
	return b.data[i/8]&(0b1000_0000>>(i%8)) != 0
}

// Set sets bit i to v.
func (b *RefBitmap) Set(i uint64, v bool) {
	for i/8 >= uint64(len(b.data)) {
		b.data = append(b.data, 0)
	}
	if v {
		b.data[i/8] |= 0b1000_0000 >> (i % 8)
	} else {
		b.data[i/8] &^= 0b1000_0000 >> (i % 8)
	}
}

// SetRange sets bits start..end (inclusive) to v.
func (b *RefBitmap) SetRange(start, end uint64, v bool) {
	for i := start; i <= end; i++ {
		b.Set(i, v)
	}
}

// Slice returns bits start..end (inclusive).
func (b *RefBitmap) Slice(start, end uint64) []bool {
	out := make([]bool, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, b.Get(i))
	}
	return out
}

// Bytes returns a copy of the underlying bytes.
func (b *RefBitmap) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}
