package buffer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/streambuf/metric"
)

// bufferMetrics holds Prometheus metrics for buffer operations.
type bufferMetrics struct {
	// Counter metrics - incremented alongside the always-on statistics
	written     prometheus.Counter
	read        prometheus.Counter
	discarded   prometheus.Counter
	shortWrites prometheus.Counter
	grows       prometheus.Counter
	evictions   prometheus.Counter

	// Gauge metrics - updated on mutating operations
	length      prometheus.Gauge
	utilization prometheus.Gauge
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry *metric.MetricsRegistry, prefix string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		written: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "written_total",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Total number of elements committed into the buffer",
		}),
		read: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "read_total",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Total number of elements copied out of the buffer",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "discarded_total",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Total number of elements removed from the buffer",
		}),
		shortWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "short_writes_total",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Total number of writes that accepted fewer elements than requested",
		}),
		grows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "extents_allocated_total",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Total number of extents allocated by the dynamic buffer",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "extents_released_total",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Total number of drained extents released by the dynamic buffer",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "len",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Current number of unread elements in the buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "streambuf",
			Subsystem:   "buffer",
			Name:        "utilization",
			ConstLabels: prometheus.Labels{"buffer": prefix},
			Help:        "Fill level relative to capacity (0.0 to 1.0); fixed-capacity buffers only",
		}),
	}

	// Register all metrics with the registry
	if err := registry.RegisterCounter(prefix, "buffer_written", m.written); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_read", m.read); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_discarded", m.discarded); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_short_writes", m.shortWrites); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_extents_allocated", m.grows); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_extents_released", m.evictions); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_len", m.length); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_utilization", m.utilization); err != nil {
		return nil, err
	}

	return m, nil
}

// recordWritten adds n to the written counter and refreshes the gauges.
func (m *bufferMetrics) recordWritten(n, length, capacity int) {
	m.written.Add(float64(n))
	m.updateLen(length, capacity)
}

// recordRead adds n to the read counter.
func (m *bufferMetrics) recordRead(n int) {
	m.read.Add(float64(n))
}

// recordDiscarded adds n to the discarded counter and refreshes the gauges.
func (m *bufferMetrics) recordDiscarded(n, length, capacity int) {
	m.discarded.Add(float64(n))
	m.updateLen(length, capacity)
}

// recordShortWrite increments the short-write counter.
func (m *bufferMetrics) recordShortWrite() {
	m.shortWrites.Inc()
}

// recordGrow increments the extent allocation counter.
func (m *bufferMetrics) recordGrow() {
	m.grows.Inc()
}

// recordEvict increments the extent release counter.
func (m *bufferMetrics) recordEvict() {
	m.evictions.Inc()
}

// updateLen sets the length gauge and, when capacity is known, utilization.
func (m *bufferMetrics) updateLen(length, capacity int) {
	m.length.Set(float64(length))
	if capacity > 0 {
		m.utilization.Set(float64(length) / float64(capacity))
	}
}
