// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"

	"github.com/dacapoday/rawout"
)

// DefaultBufferSize is used when no BufferSize option is given.
const DefaultBufferSize = 4096

// minGrowth is the capacity an empty buffer grows to before scaling.
const minGrowth = 16

// BufferSize sets the initial capacity.
type BufferSize interface {
	BufferSize() int
}

// MaxBufferSize bounds the capacity. Without it (and without Unbounded)
// the bound is the initial capacity.
type MaxBufferSize interface {
	MaxBufferSize() int
}

// Unbounded removes the capacity bound when it returns true.
type Unbounded interface {
	Unbounded() bool
}

// GrowthFactor sets the capacity multiplier applied on growth. Default 2.
type GrowthFactor interface {
	GrowthFactor() int
}

// SinkOption attaches a sink at construction.
type SinkOption interface {
	Sink() io.Writer
}

// ObserverOption attaches an observer at construction.
type ObserverOption interface {
	Observer() rawout.Observer
}

// Config is a concrete option carrying every setting.
// Zero fields fall back to defaults.
type Config struct {
	Size    int // initial capacity; 0 means DefaultBufferSize
	Max     int // capacity bound; 0 means the initial capacity
	NoLimit bool
	Factor  int // 0 means 2
	Writer  io.Writer
	Hook    rawout.Observer
}

func (c Config) BufferSize() int           { return c.Size }
func (c Config) MaxBufferSize() int        { return c.Max }
func (c Config) Unbounded() bool           { return c.NoLimit }
func (c Config) GrowthFactor() int         { return c.Factor }
func (c Config) Sink() io.Writer           { return c.Writer }
func (c Config) Observer() rawout.Observer { return c.Hook }

// settings is the resolved form of an option.
type settings struct {
	size     int
	limit    int
	bounded  bool
	factor   int
	sink     io.Writer
	observer rawout.Observer
}

// resolve probes opt for the optional interfaces above.
// When fixed is set the initial capacity is size regardless of opt.
func resolve(opt any, size int, fixed bool) (s settings, err error) {
	s.size = size
	if o, ok := opt.(BufferSize); ok && !fixed {
		if n := o.BufferSize(); n != 0 {
			s.size = n
		}
	}
	if s.size < 0 {
		err = fmt.Errorf("%w: %d", ErrInvalidBufferSize, s.size)
		return
	}

	s.bounded = true
	s.limit = s.size
	if o, ok := opt.(MaxBufferSize); ok {
		if n := o.MaxBufferSize(); n != 0 {
			s.limit = n
		}
	}
	if o, ok := opt.(Unbounded); ok && o.Unbounded() {
		s.bounded = false
		s.limit = 0
	}
	if s.bounded && s.limit < s.size {
		err = fmt.Errorf("%w: max %d is less than %d", ErrInvalidBufferSize, s.limit, s.size)
		return
	}

	s.factor = 2
	if o, ok := opt.(GrowthFactor); ok {
		if n := o.GrowthFactor(); n != 0 {
			s.factor = n
		}
	}
	if s.factor < 2 {
		err = fmt.Errorf("%w: %d", ErrInvalidGrowthFactor, s.factor)
		return
	}

	if o, ok := opt.(SinkOption); ok {
		s.sink = o.Sink()
	}
	if o, ok := opt.(ObserverOption); ok {
		s.observer = o.Observer()
	}
	if s.observer == nil {
		s.observer = rawout.NopObserver{}
	}
	return
}
