// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"unsafe"
)

var (
	_ io.Writer     = (*Output)(nil)
	_ io.ReaderFrom = (*Output)(nil)
)

// Fixed lists the element types whose in-memory representation is
// copied verbatim by WriteSlice.
type Fixed interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// WriteRaw copies src[off:off+count] into the buffer.
//
// Whatever fits is copied first, then the buffer is flushed or grown and the
// copy continues. If that fails, the bytes copied so far stay in the buffer
// and Position reflects them.
func (out *Output) WriteRaw(src []byte, off, count int) error {
	if off < 0 || count < 0 || off > len(src) || count > len(src)-off {
		return fmt.Errorf("%w: offset %d, count %d, length %d", ErrOutOfRange, off, count, len(src))
	}
	_, err := out.writeRaw(src[off : off+count])
	return err
}

func (out *Output) writeRaw(p []byte) (n int, err error) {
	if out.closed {
		return 0, ErrClosed
	}
	for {
		c := copy(out.buffer[out.position:], p)
		out.position += c
		n += c
		p = p[c:]
		if len(p) == 0 {
			return
		}
		// the buffer is full here; ask for at most one capacity worth
		if err = out.require(max(1, min(len(out.buffer), len(p)))); err != nil {
			return
		}
	}
}

// WriteBytes writes p. See WriteRaw for the failure behavior.
func (out *Output) WriteBytes(p []byte) error {
	_, err := out.writeRaw(p)
	return err
}

// Write implements io.Writer. On failure n counts the bytes that were buffered.
func (out *Output) Write(p []byte) (n int, err error) {
	return out.writeRaw(p)
}

// ReadFrom reads r until EOF directly into the buffer.
func (out *Output) ReadFrom(r io.Reader) (n int64, err error) {
	if out.closed {
		return 0, ErrClosed
	}
	for {
		if out.position == len(out.buffer) {
			if err = out.require(1); err != nil {
				return
			}
		}
		c, rerr := r.Read(out.buffer[out.position:])
		out.position += c
		n += int64(c)
		if rerr != nil {
			if rerr != io.EOF {
				err = rerr
			}
			return
		}
	}
}

// WriteSlice writes the memory of s, len(s)*sizeof(T) bytes, in native byte order.
// A bool occupies one byte.
func WriteSlice[T Fixed](out *Output, s []T) error {
	var zero T
	size := len(s) * int(unsafe.Sizeof(zero))
	_, err := out.writeRaw(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), size))
	return err
}

func (out *Output) WriteBools(s []bool) error       { return WriteSlice(out, s) }
func (out *Output) WriteInt16s(s []int16) error     { return WriteSlice(out, s) }
func (out *Output) WriteChars(s []uint16) error     { return WriteSlice(out, s) }
func (out *Output) WriteInt32s(s []int32) error     { return WriteSlice(out, s) }
func (out *Output) WriteInt64s(s []int64) error     { return WriteSlice(out, s) }
func (out *Output) WriteFloat32s(s []float32) error { return WriteSlice(out, s) }
func (out *Output) WriteFloat64s(s []float64) error { return WriteSlice(out, s) }
