// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package rawout defines the shared interfaces and errors of a native byte order
// write buffer. The buffer itself lives in package output.
package rawout

import "io"

// Sink receives finished byte ranges when a buffer is flushed.
// Write must accept the whole range or return an error;
// the range is only valid for the duration of the call.
//
// Any io.Writer satisfies this interface.
type Sink = io.Writer

// Observer is notified of buffer lifecycle events.
// Methods are called synchronously on the writing goroutine.
type Observer interface {
	// OnGrow reports that storage was reallocated from one capacity to another.
	OnGrow(from, to int)

	// OnFlush reports a flush of n bytes to the sink. err is the sink error, if any.
	OnFlush(n int, err error)

	// OnOwn reports that borrowed storage was replaced by owned storage of the given capacity.
	OnOwn(capacity int)

	// OnOverflow reports a reservation that could not be satisfied.
	OnOverflow(err *OverflowError)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) OnGrow(from, to int)           {}
func (NopObserver) OnFlush(n int, err error)      {}
func (NopObserver) OnOwn(capacity int)            {}
func (NopObserver) OnOverflow(err *OverflowError) {}
