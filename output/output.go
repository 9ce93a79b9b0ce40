// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package output implements a growable write buffer that stores primitive
// values in the host's native byte order and optionally drains to a sink.
//
// Multi-byte values are not converted: data written on a little-endian host
// cannot be read back on a big-endian one.
//
// An Output is owned by a single goroutine. Any slice obtained from it
// (through View) is invalidated by the next write.
package output

import (
	"fmt"
	"io"

	"github.com/dacapoday/rawout"
)

// Output accumulates bytes in a contiguous region of capacity bytes.
// The zero value is not usable; construct it with New, Borrow or NewWriter.
type Output struct {
	buffer   []byte // len(buffer) is the capacity
	position int
	total    int64 // bytes accepted by the sink
	owned    bool  // false while buffer is caller storage
	closed   bool
	settings
}

// New returns an Output over freshly allocated storage.
// opt may implement BufferSize, MaxBufferSize, Unbounded, GrowthFactor,
// SinkOption and ObserverOption; nil uses defaults.
func New(opt any) (*Output, error) {
	s, err := resolve(opt, DefaultBufferSize, false)
	if err != nil {
		return nil, err
	}
	return &Output{
		buffer:   make([]byte, s.size),
		owned:    true,
		settings: s,
	}, nil
}

// Borrow returns an Output that writes into backing without copying it.
// The capacity is len(backing). backing stays in use until the first growth,
// at which point it is replaced by owned storage and the observer's OnOwn is called.
func Borrow(backing []byte, opt any) (*Output, error) {
	s, err := resolve(opt, len(backing), true)
	if err != nil {
		return nil, err
	}
	return &Output{
		buffer:   backing,
		settings: s,
	}, nil
}

// NewWriter returns an Output that flushes to w whenever it fills up.
func NewWriter(w io.Writer, opt any) (*Output, error) {
	out, err := New(opt)
	if err != nil {
		return nil, err
	}
	out.sink = w
	return out, nil
}

// Position returns the offset of the next write.
func (out *Output) Position() int { return out.position }

// SetPosition moves the write offset. Bytes past it are kept but will be overwritten.
func (out *Output) SetPosition(position int) error {
	if position < 0 || position > len(out.buffer) {
		return fmt.Errorf("%w: position %d, capacity %d", ErrOutOfRange, position, len(out.buffer))
	}
	out.position = position
	return nil
}

// Capacity returns the size of the current storage.
func (out *Output) Capacity() int { return len(out.buffer) }

// MaxCapacity returns the capacity bound. ok is false when unbounded.
func (out *Output) MaxCapacity() (limit int, ok bool) {
	return out.limit, out.bounded
}

// Total returns the number of bytes written since construction or the last
// Reset, including bytes already flushed.
func (out *Output) Total() int64 { return out.total + int64(out.position) }

// Owned reports whether the storage was allocated by the Output.
func (out *Output) Owned() bool { return out.owned }

// Sink returns the attached sink, or nil.
func (out *Output) Sink() io.Writer { return out.sink }

// SetSink attaches w (nil detaches) and discards buffered bytes.
func (out *Output) SetSink(w io.Writer) {
	out.sink = w
	out.Reset()
}

// SetBuffer replaces the storage with backing, borrowed as in Borrow.
// Sink and observer are kept unless opt provides new ones.
func (out *Output) SetBuffer(backing []byte, opt any) error {
	s, err := resolve(opt, len(backing), true)
	if err != nil {
		return err
	}
	if s.sink == nil {
		s.sink = out.sink
	}
	if _, ok := s.observer.(rawout.NopObserver); ok {
		s.observer = out.observer
	}
	out.settings = s
	out.buffer = backing
	out.owned = false
	out.closed = false
	out.Reset()
	return nil
}

// Reset discards buffered bytes and zeroes the total. Storage is kept.
func (out *Output) Reset() {
	out.position = 0
	out.total = 0
}

// Bytes returns a copy of the buffered bytes [0, position).
func (out *Output) Bytes() []byte {
	b := make([]byte, out.position)
	copy(b, out.buffer)
	return b
}

// View calls fn with the buffered bytes without copying.
// fn must not retain the slice or write to the Output.
func (out *Output) View(fn func(buffered []byte)) {
	fn(out.buffer[:out.position:out.position])
}

// Close flushes buffered bytes and closes the sink if it is an io.Closer.
// Writes after Close fail with ErrClosed.
//
// If the flush fails, nothing is closed and the unsent bytes stay buffered,
// so Close may be called again.
func (out *Output) Close() (err error) {
	if out.closed {
		return nil
	}
	if err = out.Flush(); err != nil {
		return
	}
	out.closed = true
	if c, ok := out.sink.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return
}
