// Package buffer provides in-memory staging buffers for moving data between
// I/O producers and consumers without unnecessary copying.
//
// # Overview
//
// The package implements two buffer shapes behind one capability contract
// (the Buffer interface), so higher-level I/O code can be written once and
// used with either:
//
//   - CircularBuffer: a fixed-capacity buffer that reads and writes
//     indefinitely by wrapping around its backing storage. It never needs a
//     reset, but it can never hold more than its capacity at once.
//
//   - DynamicBuffer: an unbounded buffer built from a queue of fixed-capacity
//     extents. It grows by appending extents and shrinks by evicting fully
//     drained ones, so long-lived accumulation never copies existing data.
//
// Both shapes are single-owner and perform no locking: a buffer instance
// belongs to exactly one logical owner at a time, and concurrent access must
// be serialized by the caller (one buffer per connection is the usual
// arrangement). No operation blocks or performs I/O; each completes in time
// proportional to the data moved, not to total buffer size.
//
// # Quick Start
//
// Basic buffer creation:
//
//	buf, err := buffer.NewCircular[byte](4096)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	n := buf.Write(payload)   // may be short when full
//	m := buf.Read(scratch)    // may be short when empty
//
// An unbounded buffer with a custom extent size:
//
//	acc, err := buffer.NewDynamic[byte](
//	    buffer.WithExtentSize[byte](1024),
//	)
//	acc.Write(chunk) // always accepts everything; the buffer grows
//
// # Zero-Copy Operation
//
// The ranges/commit/discard primitives let callers move data directly
// between the backing storage and a system call, with no intermediate copy:
//
//	for _, span := range buf.WritableRanges() {
//	    n, err := conn.Read(span)
//	    buf.Commit(n)
//	    ...
//	}
//
//	for _, span := range buf.ReadableRanges() {
//	    n, err := conn.Write(span)
//	    buf.Discard(n)
//	    ...
//	}
//
// Ranges alias the buffer's storage and are valid only until the next
// mutating call on the same buffer. A ranges query on the dynamic buffer can
// itself mutate (it tops up write space), so treat every call that is not a
// pure accessor as invalidating.
//
// # Error Semantics
//
// Short writes and short reads are normal conditions communicated through
// returned counts, never through errors. Construction misuse (zero or
// negative capacities) is rejected at construction with a classified error.
// Caller defects - negative counts, or committing beyond the dynamic
// buffer's true writable space - panic rather than silently truncating,
// because callers rely on the dynamic buffer's never-truncate guarantee and
// continuing would corrupt subsequent reads and writes.
//
// # Observability
//
// Statistics are always collected (atomic counters, zero configuration) and
// available via Stats(). Prometheus metrics are optional:
//
//	registry := metric.NewMetricsRegistry()
//	buf, err := buffer.NewCircular[byte](4096,
//	    buffer.WithMetrics[byte](registry, "udp-input"),
//	)
//
// # Adapters
//
// SliceBuffer presents an existing slice as a one-shot buffer (a source
// when wrapped readable, a sink when wrapped writable). Stream wraps any
// Buffer[byte] as an io.Reader/io.Writer for code that only deals in raw
// byte streams.
//
// # Configuration
//
// All sizing is fixed at construction: circular capacity, dynamic extent
// size and the low-water mark (minfree) that controls when a fresh extent is
// appended. Config carries these values with yaml tags for file-driven
// tooling; see ParseConfig.
package buffer
