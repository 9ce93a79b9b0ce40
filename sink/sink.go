// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package sink adapts destinations for flushed output ranges.
package sink

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest passes ranges to an underlying writer and hashes every accepted byte.
// A nil writer only hashes.
type Digest struct {
	w      io.Writer
	digest *xxhash.Digest
	size   int64
}

// NewDigest returns a Digest over w.
func NewDigest(w io.Writer) *Digest {
	return &Digest{w: w, digest: xxhash.New()}
}

func (d *Digest) Write(p []byte) (n int, err error) {
	n = len(p)
	if d.w != nil {
		n, err = d.w.Write(p)
	}
	d.digest.Write(p[:n])
	d.size += int64(n)
	return
}

// Sum64 returns the xxhash of all accepted bytes.
func (d *Digest) Sum64() uint64 { return d.digest.Sum64() }

// Size returns the number of accepted bytes.
func (d *Digest) Size() int64 { return d.size }

// Close closes the underlying writer if it is an io.Closer.
func (d *Digest) Close() error {
	if c, ok := d.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Func adapts a function to a sink. The function accepts the whole range or fails.
type Func func(p []byte) error

func (f Func) Write(p []byte) (int, error) {
	if err := f(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Counter records the size of every range it receives and discards the data.
type Counter struct {
	Ranges []int
	Bytes  int64
}

func (c *Counter) Write(p []byte) (int, error) {
	c.Ranges = append(c.Ranges, len(p))
	c.Bytes += int64(len(p))
	return len(p), nil
}

// Flushes returns the number of ranges received.
func (c *Counter) Flushes() int { return len(c.Ranges) }
