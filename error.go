package rawout

import (
	"errors"
	"fmt"
)

var (
	ErrOverflow            = errors.New("buffer overflow")
	ErrOutOfRange          = errors.New("out of range")
	ErrInvalidBufferSize   = errors.New("invalid buffer size")
	ErrInvalidGrowthFactor = errors.New("invalid growth factor")
	ErrClosed              = errors.New("closed")
	ErrNoSpace             = errors.New("no space")
)

// OverflowError is returned when a reservation cannot be satisfied
// within the maximum capacity.
type OverflowError struct {
	Requested   int // bytes asked for
	Available   int // max capacity minus position at the time of the request
	MaxCapacity int
}

func (e *OverflowError) Error() string {
	if e.Requested > e.MaxCapacity {
		return fmt.Sprintf("buffer overflow: max capacity %d, required %d", e.MaxCapacity, e.Requested)
	}
	return fmt.Sprintf("buffer overflow: available %d, required %d", e.Available, e.Requested)
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// SinkError wraps an error reported by the sink during a flush.
type SinkError struct {
	Flushed int // bytes accepted by the sink before the failure
	Err     error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink: flushed %d bytes: %v", e.Flushed, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
