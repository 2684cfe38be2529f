// Package streambuf provides in-memory staging buffers for moving data
// between I/O producers and consumers without unnecessary copying.
//
// Two buffer shapes share one contract: a fixed-capacity ring buffer that
// wraps around its storage indefinitely, and an unbounded dynamic buffer
// built from a queue of fixed-size extents. Both expose their storage
// directly through readable/writable range queries so data can be moved in
// and out by external I/O calls with no intermediate copy.
//
// The root package is organizational; the implementation lives in:
//
//   - buffer: the buffer contract, both implementations, the slice and
//     byte-stream adapters, statistics, and configuration
//   - errors: classified errors distinguishing caller misuse from
//     internal defects
//   - metric: Prometheus metrics registry shared by instrumented buffers
//   - cmd/bufbench: throughput exercise over the buffer shapes
package streambuf
