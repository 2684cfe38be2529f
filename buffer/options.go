package buffer

import (
	"github.com/c360/streambuf/metric"
)

// DefaultExtentSize is the per-extent element count used by DynamicBuffer
// when WithExtentSize is not given.
const DefaultExtentSize = 4096

// Option configures buffer behavior using the functional options pattern.
type Option[T any] func(*bufferOptions[T])

// bufferOptions holds internal configuration for buffer instances.
// Stats are ALWAYS collected - they are not optional.
// Metrics are optional and enabled via WithMetrics().
type bufferOptions[T any] struct {
	// Dynamic buffer sizing. minFreeSet distinguishes an explicit
	// WithMinFree from the extentSize/2 default.
	extentSize int
	minFree    int
	minFreeSet bool

	// metricsReg is optional - if provided, buffer stats are also exposed
	// as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the buffer label for Prometheus metrics
	metricsPrefix string
}

// WithExtentSize sets the per-extent element count for DynamicBuffer.
// Ignored by CircularBuffer. Defaults to DefaultExtentSize.
func WithExtentSize[T any](size int) Option[T] {
	return func(opts *bufferOptions[T]) {
		opts.extentSize = size
	}
}

// WithMinFree sets the low-water mark for DynamicBuffer: the minimum
// writable space kept available in the active write extent before a new
// extent is appended. Defaults to half the extent size. Ignored by
// CircularBuffer.
func WithMinFree[T any](minFree int) Option[T] {
	return func(opts *bufferOptions[T]) {
		opts.minFree = minFree
		opts.minFreeSet = true
	}
}

// WithMetrics enables Prometheus metrics export for buffer statistics.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics[T any](registry *metric.MetricsRegistry, prefix string) Option[T] {
	return func(opts *bufferOptions[T]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// applyOptions applies functional options to create final buffer configuration.
// This is an internal helper used by buffer constructors.
func applyOptions[T any](options ...Option[T]) *bufferOptions[T] {
	opts := &bufferOptions[T]{
		// Default values
		extentSize: DefaultExtentSize,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
