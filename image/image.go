package image

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/devbitmap/device"
	"github.com/hupe1980/devbitmap/internal/hash"
)

const (
	magic      = "DBMI"
	version    = 1
	headerSize = 4 + 1 + 1 + 8 + 4 + 8

	// MaxRawSize is the largest raw length Decode and Import accept.
	MaxRawSize = 1 << 32

	// lz4MaxRatio bounds the output of an lz4 block per input byte.
	lz4MaxRatio = 255
)

var (
	// ErrBadMagic is returned when the input is not an image.
	ErrBadMagic = errors.New("image: bad magic")
	// ErrUnsupportedVersion is returned for images written by a newer format.
	ErrUnsupportedVersion = errors.New("image: unsupported version")
	// ErrChecksum is returned when the decoded bytes do not match the stored
	// checksum.
	ErrChecksum = errors.New("image: checksum mismatch")
	// ErrUnknownCodec is returned for a codec byte this package cannot handle.
	ErrUnknownCodec = errors.New("image: unknown codec")
	// ErrCorrupt is returned when the header lengths are impossible for the
	// codec or exceed MaxRawSize.
	ErrCorrupt = errors.New("image: corrupt header")
)

type options struct {
	codec Codec
}

// Option configures Encode and Export.
type Option func(*options)

// WithCodec selects the payload compression. Default: CodecZSTD.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// header is the fixed-size prefix of an image.
type header struct {
	codec      Codec
	rawLen     uint64
	checksum   uint32
	payloadLen uint64
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], magic)
	buf[4] = version
	buf[5] = byte(h.codec)
	binary.LittleEndian.PutUint64(buf[6:14], h.rawLen)
	binary.LittleEndian.PutUint32(buf[14:18], h.checksum)
	binary.LittleEndian.PutUint64(buf[18:26], h.payloadLen)
	return buf
}

func unmarshalHeader(buf []byte) (header, error) {
	if len(buf) < headerSize || string(buf[0:4]) != magic {
		return header{}, ErrBadMagic
	}
	if buf[4] != version {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, buf[4])
	}
	h := header{
		codec:      Codec(buf[5]),
		rawLen:     binary.LittleEndian.Uint64(buf[6:14]),
		checksum:   binary.LittleEndian.Uint32(buf[14:18]),
		payloadLen: binary.LittleEndian.Uint64(buf[18:26]),
	}
	if h.codec > CodecZSTD {
		return header{}, fmt.Errorf("%w: %s", ErrUnknownCodec, h.codec)
	}
	if err := h.validate(); err != nil {
		return header{}, err
	}
	return h, nil
}

// validate rejects lengths the codec could not have produced, before any
// buffer is sized from them.
func (h header) validate() error {
	if h.rawLen > MaxRawSize || h.rawLen > math.MaxInt {
		return fmt.Errorf("%w: raw length %d exceeds %d", ErrCorrupt, h.rawLen, uint64(MaxRawSize))
	}
	switch h.codec {
	case CodecNone:
		if h.rawLen != h.payloadLen {
			return fmt.Errorf("%w: raw length %d != payload length %d", ErrCorrupt, h.rawLen, h.payloadLen)
		}
	case CodecLZ4:
		if h.payloadLen < h.rawLen/lz4MaxRatio {
			return fmt.Errorf("%w: raw length %d too large for %d lz4 bytes", ErrCorrupt, h.rawLen, h.payloadLen)
		}
	}
	return nil
}

// Encode wraps raw in an image.
func Encode(raw []byte, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf, raw, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode returns the raw bytes held by an image.
func Decode(data []byte) ([]byte, error) {
	return read(bytes.NewReader(data))
}

// Export reads n bytes at addr from dev and writes them to w as an image.
func Export(ctx context.Context, w io.Writer, dev device.Device, addr uint64, n int, opts ...Option) error {
	raw, err := dev.Get(ctx, addr, n)
	if err != nil {
		return fmt.Errorf("export %d bytes at %d: %w", n, addr, err)
	}
	return write(w, raw, opts...)
}

// Import reads an image from r and writes its bytes to dev at addr.
// It returns the number of bytes written.
func Import(ctx context.Context, r io.Reader, dev device.Device, addr uint64) (int, error) {
	raw, err := read(r)
	if err != nil {
		return 0, err
	}
	if err := dev.Put(ctx, addr, raw); err != nil {
		return 0, fmt.Errorf("import %d bytes at %d: %w", len(raw), addr, err)
	}
	return len(raw), nil
}

func write(w io.Writer, raw []byte, opts ...Option) error {
	o := options{codec: CodecZSTD}
	for _, opt := range opts {
		opt(&o)
	}

	payload, err := compress(o.codec, raw)
	if err != nil {
		return err
	}

	h := header{
		codec:      o.codec,
		rawLen:     uint64(len(raw)),
		checksum:   hash.CRC32C(raw),
		payloadLen: uint64(len(payload)),
	}
	if _, err := w.Write(h.marshal()); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

func read(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, err
	}
	h, err := unmarshalHeader(buf)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(io.LimitReader(r, int64(h.payloadLen)))
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) != h.payloadLen {
		return nil, fmt.Errorf("image: payload truncated (%d of %d bytes): %w", len(payload), h.payloadLen, io.ErrUnexpectedEOF)
	}

	raw, err := decompress(h.codec, payload, int(h.rawLen))
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != h.rawLen || !hash.Verify(raw, h.checksum) {
		return nil, ErrChecksum
	}
	return raw, nil
}
