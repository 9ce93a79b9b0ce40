// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/binary"
	"io"
	"math"
)

var native = binary.NativeEndian

var _ io.ByteWriter = (*Output)(nil)

// WriteByte writes a single byte.
func (out *Output) WriteByte(b byte) error {
	if err := out.Require(1); err != nil {
		return err
	}
	out.buffer[out.position] = b
	out.position++
	return nil
}

// WriteBool writes 1 for true and 0 for false.
func (out *Output) WriteBool(v bool) error {
	var b byte
	if v {
		b = 1
	}
	return out.WriteByte(b)
}

func (out *Output) WriteInt8(v int8) error { return out.WriteByte(byte(v)) }

func (out *Output) WriteUint16(v uint16) error {
	if err := out.Require(2); err != nil {
		return err
	}
	native.PutUint16(out.buffer[out.position:], v)
	out.position += 2
	return nil
}

func (out *Output) WriteInt16(v int16) error { return out.WriteUint16(uint16(v)) }

// WriteChar writes a 16-bit code unit.
func (out *Output) WriteChar(c uint16) error { return out.WriteUint16(c) }

func (out *Output) WriteUint32(v uint32) error {
	if err := out.Require(4); err != nil {
		return err
	}
	native.PutUint32(out.buffer[out.position:], v)
	out.position += 4
	return nil
}

func (out *Output) WriteInt32(v int32) error { return out.WriteUint32(uint32(v)) }

func (out *Output) WriteFloat32(v float32) error { return out.WriteUint32(math.Float32bits(v)) }

func (out *Output) WriteUint64(v uint64) error {
	if err := out.Require(8); err != nil {
		return err
	}
	native.PutUint64(out.buffer[out.position:], v)
	out.position += 8
	return nil
}

func (out *Output) WriteInt64(v int64) error { return out.WriteUint64(uint64(v)) }

func (out *Output) WriteFloat64(v float64) error { return out.WriteUint64(math.Float64bits(v)) }
