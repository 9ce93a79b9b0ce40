// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dacapoday/rawout"
)

// Metrics counts lifecycle events with prometheus collectors.
// One Metrics may be shared by many outputs.
type Metrics struct {
	grows       prometheus.Counter
	flushes     prometheus.Counter
	flushBytes  prometheus.Counter
	flushErrors prometheus.Counter
	overflows   prometheus.Counter
	owns        prometheus.Counter
	capacity    prometheus.Gauge
}

var _ rawout.Observer = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg, if not nil.
// Registration is all or nothing.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		grows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rawout_grow_total",
			Help: "Number of storage reallocations.",
		}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rawout_flush_total",
			Help: "Number of flushes to a sink.",
		}),
		flushBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rawout_flush_bytes_total",
			Help: "Bytes accepted by sinks.",
		}),
		flushErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rawout_flush_errors_total",
			Help: "Number of failed flushes.",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rawout_overflow_total",
			Help: "Number of reservations rejected by the capacity bound.",
		}),
		owns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rawout_own_total",
			Help: "Number of borrowed buffers replaced by owned storage.",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rawout_capacity_bytes",
			Help: "Capacity after the most recent growth.",
		}),
	}
	if reg != nil {
		collectors := m.collectors()
		for i, c := range collectors {
			if err := reg.Register(c); err != nil {
				for _, r := range collectors[:i] {
					reg.Unregister(r)
				}
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.grows, m.flushes, m.flushBytes, m.flushErrors, m.overflows, m.owns, m.capacity}
}

func (m *Metrics) OnGrow(from, to int) {
	m.grows.Inc()
	m.capacity.Set(float64(to))
}

func (m *Metrics) OnFlush(n int, err error) {
	m.flushes.Inc()
	m.flushBytes.Add(float64(n))
	if err != nil {
		m.flushErrors.Inc()
	}
}

func (m *Metrics) OnOwn(capacity int) { m.owns.Inc() }

func (m *Metrics) OnOverflow(err *rawout.OverflowError) { m.overflows.Inc() }
