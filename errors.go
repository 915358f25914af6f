package devbitmap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a range has Start > End, a negative
	// bound, or spans more bytes than fit in an int.
	ErrInvalidRange = errors.New("invalid bit range")

	// ErrEmptyPattern is returned by Search for a zero-length pattern.
	ErrEmptyPattern = errors.New("search pattern must not be empty")

	// ErrIndexOverflow is returned by Narrow when an index does not fit the
	// requested integer type.
	ErrIndexOverflow = errors.New("bit index overflows target type")
)

// DeviceError reports a failed device operation issued by the engine.
//
// The device's own error is available via errors.Unwrap, errors.Is and
// errors.As, unchanged.
type DeviceError struct {
	Op   string // "get" or "put"
	Addr uint64
	Len  int
	Err  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device %s at address %d (%d bytes): %v", e.Op, e.Addr, e.Len, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }
