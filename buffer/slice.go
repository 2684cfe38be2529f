package buffer

import (
	"fmt"

	"github.com/c360/streambuf/errors"
)

// SliceBuffer presents an existing contiguous slice as a one-shot buffer.
// It does not own or grow its storage: the read and write cursors only move
// forward, so once a region has been consumed it is gone. Use WrapReadable
// to drain an existing block of data into another buffer, or WrapWritable
// to fill a caller-provided block from one.
type SliceBuffer[T any] struct {
	data []T
	rd   int
	wr   int

	stats *Statistics
}

var _ Buffer[byte] = (*SliceBuffer[byte])(nil)

// WrapReadable wraps data as a fully written, unread buffer. The entire
// slice is readable and nothing is writable.
func WrapReadable[T any](data []T) *SliceBuffer[T] {
	return &SliceBuffer[T]{
		data:  data,
		wr:    len(data),
		stats: NewStatistics(),
	}
}

// WrapWritable wraps data as an empty buffer. The entire slice is writable;
// data becomes readable as it is written or committed.
func WrapWritable[T any](data []T) *SliceBuffer[T] {
	return &SliceBuffer[T]{
		data:  data,
		stats: NewStatistics(),
	}
}

// Len returns the number of unread elements.
func (sb *SliceBuffer[T]) Len() int {
	return sb.wr - sb.rd
}

// Free returns the number of elements that can still be written.
func (sb *SliceBuffer[T]) Free() int {
	return len(sb.data) - sb.wr
}

// Stats returns buffer statistics.
func (sb *SliceBuffer[T]) Stats() *Statistics {
	return sb.stats
}

// WritableRanges returns the remaining write space as at most one span.
func (sb *SliceBuffer[T]) WritableRanges() [][]T {
	if sb.wr == len(sb.data) {
		return nil
	}
	return [][]T{sb.data[sb.wr:]}
}

// ReadableRanges returns the unread data as at most one span.
func (sb *SliceBuffer[T]) ReadableRanges() [][]T {
	if sb.rd == sb.wr {
		return nil
	}
	return [][]T{sb.data[sb.rd:sb.wr]}
}

// Commit marks up to n elements of write space as containing valid data and
// returns the number actually committed, short once the slice is exhausted.
func (sb *SliceBuffer[T]) Commit(n int) int {
	if n < 0 {
		panic(errors.WrapFatal(errors.ErrNegativeCount,
			"SliceBuffer", "Commit", fmt.Sprintf("commit of %d elements", n)))
	}

	n = min(n, sb.Free())
	sb.wr += n

	sb.stats.AddWritten(n)
	sb.stats.UpdateLen(int64(sb.Len()))

	return n
}

// Discard removes up to n elements from the front of the unread data and
// returns the number actually discarded.
func (sb *SliceBuffer[T]) Discard(n int) int {
	if n < 0 {
		panic(errors.WrapFatal(errors.ErrNegativeCount,
			"SliceBuffer", "Discard", fmt.Sprintf("discard of %d elements", n)))
	}

	n = min(n, sb.Len())
	sb.rd += n

	sb.stats.AddDiscarded(n)
	sb.stats.UpdateLen(int64(sb.Len()))

	return n
}

// Write copies as much of src as fits into the remaining write space and
// returns the number of elements copied.
func (sb *SliceBuffer[T]) Write(src []T) int {
	n := copy(sb.data[sb.wr:], src)
	sb.wr += n

	sb.stats.AddWritten(n)
	sb.stats.UpdateLen(int64(sb.Len()))
	if n < len(src) {
		sb.stats.ShortWrite()
	}

	return n
}

// Read copies up to len(dst) unread elements into dst, removes them, and
// returns the number copied.
func (sb *SliceBuffer[T]) Read(dst []T) int {
	n := copy(dst, sb.data[sb.rd:sb.wr])
	sb.rd += n

	sb.stats.AddRead(n)
	sb.stats.AddDiscarded(n)
	sb.stats.UpdateLen(int64(sb.Len()))

	return n
}
