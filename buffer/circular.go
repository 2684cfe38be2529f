package buffer

import (
	"fmt"

	"github.com/c360/streambuf/errors"
)

// CircularBuffer is a fixed-capacity buffer that wraps around its backing
// storage, so it can be read and written indefinitely without a reset. It
// can never hold more than its capacity at once.
//
// The backing slice has one slot more than the capacity. That reserved slot
// is what makes "full" and "empty" distinguishable by cursor comparison
// alone: rd == wr always means empty, and full means wr sits exactly one
// slot behind rd (wrapped). Without the spare slot both states would look
// identical.
//
// The two cursors move through four states:
//
//	[...............................]
//	            ^-- rd == wr
//
//	  Empty. The whole storage (minus the reserved slot) is writable.
//
//	[...............................]
//	   rd --^       ^-- wr
//
//	  wr is ahead of rd: readable data is the single span [rd, wr);
//	  writable space runs from wr to the end of storage and, after
//	  wrapping, from the start of storage up to rd-1.
//
//	[...............................]
//	      ^-- wr    ^-- rd
//
//	  wr has wrapped: writable space is the single span [wr, rd-1);
//	  readable data runs from rd to the end and then from the start to wr.
//
//	[...............................]
//	           ^^-- rd
//	           \-- wr
//
//	  Full. Everything except the reserved slot is readable; nothing is
//	  writable.
//
// A cursor is never left resting exactly at the end of storage; advancement
// past the end snaps back to the start.
type CircularBuffer[T any] struct {
	data []T // length capacity+1
	rd   int
	wr   int

	stats   *Statistics
	metrics *bufferMetrics
}

var _ Buffer[byte] = (*CircularBuffer[byte])(nil)

// NewCircular creates an empty circular buffer holding at most capacity
// elements. Capacity must be at least 1 so the reserved disambiguation slot
// can exist alongside usable space.
func NewCircular[T any](capacity int, options ...Option[T]) (*CircularBuffer[T], error) {
	if capacity < 1 {
		return nil, errors.WrapInvalid(errors.ErrInvalidCapacity,
			"CircularBuffer", "NewCircular", "capacity validation")
	}

	opts := applyOptions(options...)

	var metrics *bufferMetrics
	if opts.metricsReg != nil {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapInvalid(err, "CircularBuffer", "NewCircular",
				"metrics registration")
		}
	}

	return &CircularBuffer[T]{
		data:    make([]T, capacity+1),
		stats:   NewStatistics(),
		metrics: metrics,
	}, nil
}

// Cap returns the maximum number of elements the buffer can hold at once.
func (cb *CircularBuffer[T]) Cap() int {
	return len(cb.data) - 1
}

// Len returns the number of unread elements currently buffered.
func (cb *CircularBuffer[T]) Len() int {
	n := cb.wr - cb.rd
	if n < 0 {
		n += len(cb.data)
	}
	return n
}

// Free returns the number of elements that can be written before the buffer
// is full.
func (cb *CircularBuffer[T]) Free() int {
	return cb.Cap() - cb.Len()
}

// IsEmpty returns true if the buffer contains no readable data.
func (cb *CircularBuffer[T]) IsEmpty() bool {
	return cb.rd == cb.wr
}

// IsFull returns true if no more data can be written.
func (cb *CircularBuffer[T]) IsFull() bool {
	return cb.Len() == cb.Cap()
}

// Stats returns buffer statistics (always available for observability).
func (cb *CircularBuffer[T]) Stats() *Statistics {
	return cb.stats
}

// Clear resets the buffer to empty in O(1), discarding all content. The
// backing storage is retained; capacity does not change.
func (cb *CircularBuffer[T]) Clear() {
	cb.rd = 0
	cb.wr = 0

	cb.stats.UpdateLen(0)
	if cb.metrics != nil {
		cb.metrics.updateLen(0, cb.Cap())
	}
}

// WritableRanges returns zero-copy views of the available write space, front
// to back. The region crosses the physical end of storage at most once, so
// at most two spans are returned.
func (cb *CircularBuffer[T]) WritableRanges() [][]T {
	var ranges [][]T

	wr := cb.wr

	if cb.rd <= wr {
		// Span from the write cursor to the end of storage. When the read
		// cursor sits at the very start, the reserved slot must stay at the
		// end so the write cursor cannot run into the read cursor.
		end := len(cb.data)
		if cb.rd == 0 {
			end--
		}
		if span := cb.data[wr:end]; len(span) > 0 {
			ranges = append(ranges, span)
		}
		wr = end

		// Wrap if storage ran out and there is room at the start.
		if wr == len(cb.data) && cb.rd != 0 {
			wr = 0
		}
	}

	if cb.rd > wr {
		// Wrapped span from the start of storage up to one before the read
		// cursor.
		if span := cb.data[wr : cb.rd-1]; len(span) > 0 {
			ranges = append(ranges, span)
		}
	}

	return ranges
}

// Commit marks n elements at the front of the writable space as containing
// valid data and returns the number actually committed, which may be less
// than n when the buffer fills. It is the caller's responsibility not to
// commit more than was actually written into the writable ranges.
func (cb *CircularBuffer[T]) Commit(n int) int {
	if n < 0 {
		panic(errors.WrapFatal(errors.ErrNegativeCount,
			"CircularBuffer", "Commit", fmt.Sprintf("commit of %d elements", n)))
	}
	if n == 0 {
		return 0
	}

	left := n
	committed := 0

	if cb.rd <= cb.wr {
		end := len(cb.data)
		if cb.rd == 0 {
			end--
		}

		can := min(end-cb.wr, left)
		left -= can
		committed += can
		cb.wr += can

		if cb.wr == len(cb.data) && cb.rd != 0 {
			cb.wr = 0
		}
		// Fall through in case we wrapped and space remains at the start.
	}

	if cb.rd > cb.wr {
		can := min(cb.rd-1-cb.wr, left)
		committed += can
		cb.wr += can
	}

	cb.stats.AddWritten(committed)
	cb.stats.UpdateLen(int64(cb.Len()))
	if cb.metrics != nil {
		cb.metrics.recordWritten(committed, cb.Len(), cb.Cap())
	}

	return committed
}

// Write copies as much of src as fits and returns the number of elements
// accepted, which may be less than len(src) when the buffer fills. It never
// overwrites unread data.
func (cb *CircularBuffer[T]) Write(src []T) int {
	written := 0
	left := src

	for _, span := range cb.WritableRanges() {
		n := copy(span, left)
		left = left[n:]
		written += n

		if len(left) == 0 {
			break
		}
	}

	cb.Commit(written)

	if written < len(src) {
		cb.stats.ShortWrite()
		if cb.metrics != nil {
			cb.metrics.recordShortWrite()
		}
	}

	return written
}

// ReadableRanges returns zero-copy views of the unread data, front to back.
// At most two spans are returned.
func (cb *CircularBuffer[T]) ReadableRanges() [][]T {
	if cb.rd == cb.wr {
		return nil
	}

	var ranges [][]T

	rd := cb.rd

	if rd > cb.wr {
		// Span from the read cursor to the end of storage.
		ranges = append(ranges, cb.data[rd:])
		rd = 0
		// Fall through for the wrapped span at the start.
	}

	if rd < cb.wr {
		ranges = append(ranges, cb.data[rd:cb.wr])
	}

	return ranges
}

// Discard removes up to n elements from the front of the readable data and
// returns the number actually discarded.
func (cb *CircularBuffer[T]) Discard(n int) int {
	if n < 0 {
		panic(errors.WrapFatal(errors.ErrNegativeCount,
			"CircularBuffer", "Discard", fmt.Sprintf("discard of %d elements", n)))
	}
	if cb.rd == cb.wr {
		return 0
	}

	left := n
	discarded := 0

	if cb.rd > cb.wr {
		can := min(len(cb.data)-cb.rd, left)
		left -= can
		discarded += can
		cb.rd += can

		if cb.rd == len(cb.data) {
			cb.rd = 0
		}
		// Fall through in case we wrapped and data remains at the start.
	}

	if cb.rd < cb.wr {
		can := min(cb.wr-cb.rd, left)
		discarded += can
		cb.rd += can
	}

	cb.stats.AddDiscarded(discarded)
	cb.stats.UpdateLen(int64(cb.Len()))
	if cb.metrics != nil {
		cb.metrics.recordDiscarded(discarded, cb.Len(), cb.Cap())
	}

	return discarded
}

// Read copies up to len(dst) elements of buffered data into dst, removes
// them from the buffer, and returns the number copied.
func (cb *CircularBuffer[T]) Read(dst []T) int {
	read := 0
	left := dst

	for _, span := range cb.ReadableRanges() {
		n := copy(left, span)
		left = left[n:]
		read += n

		if len(left) == 0 {
			break
		}
	}

	cb.Discard(read)

	cb.stats.AddRead(read)
	if cb.metrics != nil {
		cb.metrics.recordRead(read)
	}

	return read
}
