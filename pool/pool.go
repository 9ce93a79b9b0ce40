// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package pool recycles fixed-width backing arrays for borrowed outputs.
package pool

import (
	"github.com/oxtoacart/bpool"

	"github.com/dacapoday/rawout/output"
)

// Pool hands out outputs that borrow pooled storage of a fixed width.
// It is safe for concurrent use; each Lease belongs to one goroutine.
type Pool struct {
	bytes *bpool.BytePool
	width int
	opt   any
}

// New returns a Pool keeping at most size idle arrays of width bytes.
// opt configures every leased output as in output.Borrow.
func New(size, width int, opt any) *Pool {
	return &Pool{
		bytes: bpool.NewBytePool(size, width),
		width: width,
		opt:   opt,
	}
}

// Lease is an output over pooled storage.
type Lease struct {
	*output.Output
	pool    *Pool
	backing []byte
}

// Get leases an output. Release it when done.
func (p *Pool) Get() (*Lease, error) {
	backing := p.bytes.Get()
	out, err := output.Borrow(backing, p.opt)
	if err != nil {
		p.bytes.Put(backing)
		return nil, err
	}
	return &Lease{Output: out, pool: p, backing: backing}, nil
}

// Release returns the pooled array. The output must not be used afterwards.
// If the output outgrew the array, the array is still returned since the
// output no longer references it.
func (l *Lease) Release() {
	if l.backing == nil {
		return
	}
	l.pool.bytes.Put(l.backing)
	l.backing = nil
}

// Idle returns the number of arrays waiting in the pool.
func (p *Pool) Idle() int { return p.bytes.NumPooled() }

// Width returns the size of pooled arrays.
func (p *Pool) Width() int { return p.width }
