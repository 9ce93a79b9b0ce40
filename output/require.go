// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"math"
)

// Require ensures that n bytes starting at Position can be written.
// It flushes to the sink first, if one is attached, and grows the storage
// when flushing is not enough. Growth never exceeds the capacity bound, or
// math.MaxInt when unbounded; when it would, an *OverflowError is returned
// and the Output is unchanged.
//
// Growth reallocates storage, so slices seen through View are stale afterwards.
func (out *Output) Require(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: require %d", ErrOutOfRange, n)
	}
	if out.closed {
		return ErrClosed
	}
	if len(out.buffer)-out.position >= n {
		return nil
	}
	return out.require(n)
}

func (out *Output) require(n int) error {
	if out.sink != nil {
		if err := out.Flush(); err != nil {
			return err
		}
		if len(out.buffer)-out.position >= n {
			return nil
		}
	}

	limit := math.MaxInt
	if out.bounded {
		limit = out.limit
	}
	if n > limit-out.position {
		err := &OverflowError{
			Requested:   n,
			Available:   limit - out.position,
			MaxCapacity: limit,
		}
		out.observer.OnOverflow(err)
		return err
	}

	capacity := len(out.buffer)
	switch {
	case capacity == 0:
		capacity = minGrowth
	case capacity > math.MaxInt/out.factor:
		capacity = math.MaxInt
	default:
		capacity *= out.factor
	}
	capacity = max(capacity, out.position+n)
	if out.bounded {
		capacity = min(capacity, out.limit)
	}
	out.grow(capacity)
	return nil
}

func (out *Output) grow(capacity int) {
	buffer := make([]byte, capacity)
	copy(buffer, out.buffer[:out.position])
	from := len(out.buffer)
	out.buffer = buffer
	out.observer.OnGrow(from, capacity)
	if !out.owned {
		out.owned = true
		out.observer.OnOwn(capacity)
	}
}

// Flush sends the buffered bytes to the sink and resets Position to 0.
// Without a sink it does nothing.
//
// If the sink fails, the bytes it accepted are dropped from the front of the
// buffer and the rest stay buffered; the error is a *SinkError.
func (out *Output) Flush() error {
	if out.sink == nil || out.position == 0 {
		return nil
	}
	n, err := out.sink.Write(out.buffer[:out.position])
	n = min(max(n, 0), out.position)
	if err == nil && n < out.position {
		err = io.ErrShortWrite
	}
	out.total += int64(n)
	out.observer.OnFlush(n, err)
	if err != nil {
		copy(out.buffer, out.buffer[n:out.position])
		out.position -= n
		return &SinkError{Flushed: n, Err: err}
	}
	out.position = 0
	return nil
}
