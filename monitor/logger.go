// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package monitor reports output buffer lifecycle events to logs and metrics.
package monitor

import (
	"go.uber.org/zap"

	"github.com/dacapoday/rawout"
)

// Logger writes lifecycle events to a zap logger.
type Logger struct {
	logger *zap.Logger
}

var _ rawout.Observer = (*Logger)(nil)

// NewLogger returns a Logger. A nil logger discards everything.
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger}
}

func (l *Logger) OnGrow(from, to int) {
	l.logger.Debug("buffer grown", zap.Int("from", from), zap.Int("to", to))
}

func (l *Logger) OnFlush(n int, err error) {
	if err != nil {
		l.logger.Error("flush failed", zap.Int("flushed", n), zap.Error(err))
		return
	}
	l.logger.Debug("buffer flushed", zap.Int("bytes", n))
}

func (l *Logger) OnOwn(capacity int) {
	l.logger.Info("borrowed storage replaced", zap.Int("capacity", capacity))
}

func (l *Logger) OnOverflow(err *rawout.OverflowError) {
	l.logger.Warn("buffer overflow",
		zap.Int("requested", err.Requested),
		zap.Int("available", err.Available),
		zap.Int("max_capacity", err.MaxCapacity),
	)
}

// Multi fans events out to several observers in order.
type Multi []rawout.Observer

func (m Multi) OnGrow(from, to int) {
	for _, o := range m {
		o.OnGrow(from, to)
	}
}

func (m Multi) OnFlush(n int, err error) {
	for _, o := range m {
		o.OnFlush(n, err)
	}
}

func (m Multi) OnOwn(capacity int) {
	for _, o := range m {
		o.OnOwn(capacity)
	}
}

func (m Multi) OnOverflow(err *rawout.OverflowError) {
	for _, o := range m {
		o.OnOverflow(err)
	}
}
