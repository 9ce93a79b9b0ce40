// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package mem

import (
	"io"

	"github.com/dacapoday/rawout"
)

// Buffer is a byte slice sink whose capacity is a hard limit.
// The length is the amount written so far.
type Buffer []byte

var _ io.Writer = (*Buffer)(nil)

// Write appends p, or nothing if p does not fit in the remaining capacity.
func (buffer *Buffer) Write(p []byte) (n int, err error) {
	b := *buffer
	n = len(p)
	if n+len(b) > cap(b) {
		return 0, rawout.ErrNoSpace
	}
	*buffer = append(b, p...)
	return
}

// Reset empties the buffer, keeping its capacity.
func (buffer *Buffer) Reset() { *buffer = (*buffer)[:0] }
