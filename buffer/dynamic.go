package buffer

import (
	"fmt"

	"github.com/gammazero/deque"

	"github.com/c360/streambuf/errors"
)

// DynamicBuffer is an unbounded buffer that grows and shrinks as required.
// Growth never copies existing data: the buffer is a queue of fixed-capacity
// extents, and growing means appending a fresh extent at the back while
// fully drained extents are evicted from the front. There is no upper bound
// on the buffered amount other than available memory.
//
// writeIdx is the index of the first extent that can accept new data. Every
// extent before it is spent on the write side (though it may still hold
// unread data); every extent at or after it has writable space, and every
// extent strictly after it is completely empty. Extent indices shift when
// the front is evicted, so writeIdx is adjusted on every eviction.
//
// Unlike CircularBuffer, Write and Commit never return short: Write grows
// the buffer to fit, and committing beyond the true writable space is a
// caller defect that panics rather than truncating.
type DynamicBuffer[T any] struct {
	extents  deque.Deque[*extent[T]]
	writeIdx int

	extentSize int
	minFree    int

	stats   *Statistics
	metrics *bufferMetrics
}

var _ Buffer[byte] = (*DynamicBuffer[byte])(nil)

// NewDynamic creates an empty dynamic buffer. The first extent is allocated
// lazily on first use. Extent size and the minfree low-water mark are fixed
// at construction; minfree defaults to half the extent size.
func NewDynamic[T any](options ...Option[T]) (*DynamicBuffer[T], error) {
	opts := applyOptions(options...)

	if opts.extentSize < 1 {
		return nil, errors.WrapInvalid(errors.ErrInvalidExtentSize,
			"DynamicBuffer", "NewDynamic", "extent size validation")
	}

	minFree := opts.minFree
	if !opts.minFreeSet {
		minFree = max(1, opts.extentSize/2)
	}
	if minFree < 1 || minFree > opts.extentSize {
		return nil, errors.WrapInvalid(errors.ErrInvalidMinFree,
			"DynamicBuffer", "NewDynamic", "minfree validation")
	}

	var metrics *bufferMetrics
	if opts.metricsReg != nil {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapInvalid(err, "DynamicBuffer", "NewDynamic",
				"metrics registration")
		}
	}

	return &DynamicBuffer[T]{
		extentSize: opts.extentSize,
		minFree:    minFree,
		stats:      NewStatistics(),
		metrics:    metrics,
	}, nil
}

// ExtentSize returns the per-extent element count.
func (db *DynamicBuffer[T]) ExtentSize() int {
	return db.extentSize
}

// Len returns the number of unread elements currently buffered.
func (db *DynamicBuffer[T]) Len() int {
	n := 0
	for i := 0; i < db.extents.Len(); i++ {
		n += db.extents.At(i).unread()
	}
	return n
}

// IsEmpty returns true if the buffer contains no readable data.
func (db *DynamicBuffer[T]) IsEmpty() bool {
	return db.Len() == 0
}

// Extents returns the number of extents currently backing the buffer.
func (db *DynamicBuffer[T]) Extents() int {
	return db.extents.Len()
}

// Stats returns buffer statistics (always available for observability).
func (db *DynamicBuffer[T]) Stats() *Statistics {
	return db.stats
}

// grow appends a fresh extent at the back of the queue.
func (db *DynamicBuffer[T]) grow() {
	db.extents.PushBack(newExtent[T](db.extentSize))

	db.stats.Grow()
	if db.metrics != nil {
		db.metrics.recordGrow()
	}
}

// ensureMinFree restores the growth invariant: at least minFree elements of
// write space stay available, so callers asking for writable ranges always
// see usable room. If the previous write extent was filled exactly, the
// write index is moved off it.
func (db *DynamicBuffer[T]) ensureMinFree() {
	if db.extents.Len() == 0 || db.extents.Back().free() < db.minFree {
		db.grow()
	}

	// Make sure writeIdx doesn't point at an exhausted extent.
	if db.extents.At(db.writeIdx).free() == 0 {
		db.writeIdx++
	}
}

// removeFront evicts the front extent once it is dead. Eviction shifts
// every extent index down by one, so writeIdx moves with them.
func (db *DynamicBuffer[T]) removeFront() {
	if db.writeIdx == 0 && db.extents.Front().free() != 0 {
		panic(errors.WrapFatal(errors.ErrCorruptState,
			"DynamicBuffer", "removeFront", "evicting the active write extent"))
	}

	if db.writeIdx > 0 {
		db.writeIdx--
	}
	db.extents.PopFront()

	db.stats.Evict()
	if db.metrics != nil {
		db.metrics.recordEvict()
	}
}

// WritableRanges returns zero-copy views of the available write space, one
// span per extent from the write index to the back of the queue. The growth
// invariant is restored first, so at least minFree elements are always
// returned.
func (db *DynamicBuffer[T]) WritableRanges() [][]T {
	db.ensureMinFree()

	if db.writeIdx < 0 || db.writeIdx >= db.extents.Len() {
		panic(errors.WrapFatal(errors.ErrCorruptState,
			"DynamicBuffer", "WritableRanges",
			fmt.Sprintf("write index %d outside %d extents", db.writeIdx, db.extents.Len())))
	}

	var ranges [][]T
	for i := db.writeIdx; i < db.extents.Len(); i++ {
		ext := db.extents.At(i)

		// Every extent from the write index onward must have free space,
		// and every extent past the write index must be untouched;
		// anything else means data was written ahead of the index.
		if ext.free() == 0 || (i != db.writeIdx && ext.wr != 0) {
			panic(errors.WrapFatal(errors.ErrCorruptState,
				"DynamicBuffer", "WritableRanges",
				fmt.Sprintf("extent %d violates the write index invariant", i)))
		}

		ranges = append(ranges, ext.writable())
	}

	return ranges
}

// Commit marks n elements at the front of the writable space as containing
// valid data and returns n. Committing more than the true remaining
// writable space is a defect, not a short commit: the buffer is unbounded,
// so such a call indicates a logic bug and panics.
func (db *DynamicBuffer[T]) Commit(n int) int {
	if n < 0 {
		panic(errors.WrapFatal(errors.ErrNegativeCount,
			"DynamicBuffer", "Commit", fmt.Sprintf("commit of %d elements", n)))
	}
	if n == 0 {
		return 0
	}

	left := n
	for {
		if db.writeIdx >= db.extents.Len() {
			panic(errors.WrapFatal(errors.ErrOvercommit,
				"DynamicBuffer", "Commit",
				fmt.Sprintf("commit of %d elements with %d uncommitted", n, left)))
		}

		m := db.extents.At(db.writeIdx).commit(left)
		if m == 0 {
			// The write index pointed at a full extent.
			panic(errors.WrapFatal(errors.ErrCorruptState,
				"DynamicBuffer", "Commit", "write index points at a full extent"))
		}

		left -= m
		if left == 0 {
			// Restore the growth invariant here so committing exactly the
			// free space of the last extent does not leave the write index
			// stuck on a full extent.
			db.ensureMinFree()

			db.stats.AddWritten(n)
			db.stats.UpdateLen(int64(db.Len()))
			if db.metrics != nil {
				db.metrics.recordWritten(n, db.Len(), 0)
			}
			return n
		}

		db.writeIdx++
	}
}

// Write copies all of src into the buffer, growing as required, and returns
// len(src). It never returns short.
func (db *DynamicBuffer[T]) Write(src []T) int {
	if len(src) == 0 {
		return 0
	}

	left := src
	for {
		// If we're at the end of the queue, add another extent.
		if db.writeIdx == db.extents.Len() {
			db.grow()
		}

		m := db.extents.At(db.writeIdx).write(left)
		left = left[m:]

		if len(left) == 0 {
			db.ensureMinFree()

			db.stats.AddWritten(len(src))
			db.stats.UpdateLen(int64(db.Len()))
			if db.metrics != nil {
				db.metrics.recordWritten(len(src), db.Len(), 0)
			}
			return len(src)
		}

		db.writeIdx++
	}
}

// ReadableRanges returns zero-copy views of the unread data, one span per
// extent holding any, front to back.
func (db *DynamicBuffer[T]) ReadableRanges() [][]T {
	var ranges [][]T
	for i := 0; i < db.extents.Len(); i++ {
		ext := db.extents.At(i)
		if ext.unread() == 0 {
			continue
		}
		ranges = append(ranges, ext.readable())
	}
	return ranges
}

// Discard removes up to n elements from the front of the readable data and
// returns the number actually discarded. Extents drained on both sides are
// evicted as it goes.
func (db *DynamicBuffer[T]) Discard(n int) int {
	if n < 0 {
		panic(errors.WrapFatal(errors.ErrNegativeCount,
			"DynamicBuffer", "Discard", fmt.Sprintf("discard of %d elements", n)))
	}

	left := n
	discarded := 0

	for {
		if db.extents.Len() == 0 {
			break
		}

		front := db.extents.Front()
		if front.unread() == 0 {
			break
		}

		m := front.discard(left)
		left -= m
		discarded += m

		if front.dead() {
			db.removeFront()
		}

		if discarded == n {
			break
		}
	}

	db.stats.AddDiscarded(discarded)
	db.stats.UpdateLen(int64(db.Len()))
	if db.metrics != nil {
		db.metrics.recordDiscarded(discarded, db.Len(), 0)
	}

	return discarded
}

// Read copies up to len(dst) elements of buffered data into dst, removes
// them from the buffer, and returns the number copied. Extents drained on
// both sides are evicted as it goes.
func (db *DynamicBuffer[T]) Read(dst []T) int {
	if len(dst) == 0 {
		return 0
	}

	read := 0
	left := dst

	for {
		if db.extents.Len() == 0 {
			break
		}

		front := db.extents.Front()
		if front.unread() == 0 {
			break
		}

		m := front.read(left)
		left = left[m:]
		read += m

		if front.dead() {
			db.removeFront()
		}

		if read == len(dst) {
			break
		}
	}

	db.stats.AddRead(read)
	db.stats.AddDiscarded(read)
	db.stats.UpdateLen(int64(db.Len()))
	if db.metrics != nil {
		db.metrics.recordRead(read)
		db.metrics.recordDiscarded(read, db.Len(), 0)
	}

	return read
}
