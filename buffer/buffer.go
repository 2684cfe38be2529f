package buffer

// Buffer is the capability contract shared by every buffer variant.
// The buffer is parameterized by element type T for type safety.
//
// A producer either calls Write, or obtains WritableRanges, fills them
// directly (for example from a system call) and then calls Commit. A consumer
// either calls Read, or obtains ReadableRanges, drains them directly and then
// calls Discard. Write and Read are convenience wrappers implemented purely
// in terms of the range, commit and discard primitives.
//
// Range views returned by ReadableRanges and WritableRanges alias the
// buffer's backing storage and are valid only until the next mutating call
// on the same buffer (Write, Read, Commit, Discard, Clear, or another ranges
// query that triggers growth or eviction). Callers must not retain them
// across such calls.
//
// Short writes and short reads are signaled through returned counts, never
// through errors. Negative counts are caller defects and panic.
type Buffer[T any] interface {
	// Write copies as much of src as fits and returns the number of
	// elements accepted. CircularBuffer may return short when capacity is
	// exhausted; DynamicBuffer grows instead and always returns len(src).
	Write(src []T) int

	// Read copies up to len(dst) elements of buffered data into dst and
	// removes them from the buffer, returning the number copied. May be
	// short when less data is buffered, never long.
	Read(dst []T) int

	// ReadableRanges returns zero-copy views of the current unread data,
	// front to back. Writing more data does not invalidate the views;
	// a Discard covering them does.
	ReadableRanges() [][]T

	// WritableRanges returns zero-copy views of the currently available
	// write space, front to back.
	WritableRanges() [][]T

	// Commit marks n elements at the front of the writable ranges as now
	// containing valid data and returns the number actually committed.
	// DynamicBuffer never short-commits: committing beyond the available
	// writable space is a defect and panics.
	Commit(n int) int

	// Discard removes up to n elements from the front of the readable
	// data and returns the number actually discarded.
	Discard(n int) int

	// Len returns the number of unread elements currently buffered.
	Len() int

	// Stats returns buffer statistics (always available for observability).
	Stats() *Statistics
}
