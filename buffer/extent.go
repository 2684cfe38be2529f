package buffer

// extent is a single fixed-capacity, non-wrapping segment of a
// DynamicBuffer: one contiguous region with independent read and write
// offsets. Readable data is data[rd:wr], writable space is data[wr:].
// Unlike CircularBuffer the offsets only move forward; once both reach the
// end the extent is dead and gets evicted by its owning buffer.
type extent[T any] struct {
	data []T
	rd   int
	wr   int
}

func newExtent[T any](size int) *extent[T] {
	return &extent[T]{data: make([]T, size)}
}

// readable returns the span of unread data.
func (e *extent[T]) readable() []T {
	return e.data[e.rd:e.wr]
}

// writable returns the span of remaining write space.
func (e *extent[T]) writable() []T {
	return e.data[e.wr:]
}

// unread returns the number of readable elements.
func (e *extent[T]) unread() int {
	return e.wr - e.rd
}

// free returns the number of writable elements.
func (e *extent[T]) free() int {
	return len(e.data) - e.wr
}

// dead reports whether the extent has been fully written and fully read,
// and can be evicted.
func (e *extent[T]) dead() bool {
	return e.unread() == 0 && e.free() == 0
}

// commit marks up to n elements of write space as valid data and returns
// the number marked.
func (e *extent[T]) commit(n int) int {
	can := min(n, e.free())
	e.wr += can
	return can
}

// discard removes up to n elements from the front of the readable data and
// returns the number removed.
func (e *extent[T]) discard(n int) int {
	can := min(n, e.unread())
	e.rd += can
	return can
}

// write copies as much of src as fits and returns the number copied.
func (e *extent[T]) write(src []T) int {
	n := copy(e.data[e.wr:], src)
	e.wr += n
	return n
}

// read copies up to len(dst) unread elements into dst, removes them, and
// returns the number copied.
func (e *extent[T]) read(dst []T) int {
	n := copy(dst, e.data[e.rd:e.wr])
	e.rd += n
	return n
}
