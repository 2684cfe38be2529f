package buffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks buffer activity. All counters are in elements, not
// operations: ItemsWritten is the total number of elements committed into
// the buffer, ItemsRead the total copied out via Read, and ItemsDiscarded
// the total removed (whether by Read or by an explicit Discard).
type Statistics struct {
	// Atomic counters for thread-safe updates
	itemsWritten   int64
	itemsRead      int64
	itemsDiscarded int64
	shortWrites    int64
	grows          int64
	evictions      int64

	// Protected by mutex
	mu         sync.RWMutex
	startTime  time.Time
	currentLen int64
	maxLen     int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// AddWritten records n elements committed into the buffer.
func (s *Statistics) AddWritten(n int) {
	atomic.AddInt64(&s.itemsWritten, int64(n))
}

// AddRead records n elements copied out of the buffer.
func (s *Statistics) AddRead(n int) {
	atomic.AddInt64(&s.itemsRead, int64(n))
}

// AddDiscarded records n elements removed from the buffer.
func (s *Statistics) AddDiscarded(n int) {
	atomic.AddInt64(&s.itemsDiscarded, int64(n))
}

// ShortWrite records a write that accepted fewer elements than requested.
func (s *Statistics) ShortWrite() {
	atomic.AddInt64(&s.shortWrites, 1)
}

// Grow records an extent allocation.
func (s *Statistics) Grow() {
	atomic.AddInt64(&s.grows, 1)
}

// Evict records an extent eviction.
func (s *Statistics) Evict() {
	atomic.AddInt64(&s.evictions, 1)
}

// UpdateLen updates the current buffered element count.
func (s *Statistics) UpdateLen(n int64) {
	s.mu.Lock()
	s.currentLen = n
	if n > s.maxLen {
		s.maxLen = n
	}
	s.mu.Unlock()
}

// ItemsWritten returns the total number of elements committed.
func (s *Statistics) ItemsWritten() int64 {
	return atomic.LoadInt64(&s.itemsWritten)
}

// ItemsRead returns the total number of elements copied out via Read.
func (s *Statistics) ItemsRead() int64 {
	return atomic.LoadInt64(&s.itemsRead)
}

// ItemsDiscarded returns the total number of elements removed.
func (s *Statistics) ItemsDiscarded() int64 {
	return atomic.LoadInt64(&s.itemsDiscarded)
}

// ShortWrites returns the number of writes that returned short.
func (s *Statistics) ShortWrites() int64 {
	return atomic.LoadInt64(&s.shortWrites)
}

// Grows returns the number of extents allocated.
func (s *Statistics) Grows() int64 {
	return atomic.LoadInt64(&s.grows)
}

// Evictions returns the number of extents evicted.
func (s *Statistics) Evictions() int64 {
	return atomic.LoadInt64(&s.evictions)
}

// CurrentLen returns the current buffered element count.
func (s *Statistics) CurrentLen() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLen
}

// MaxLen returns the largest buffered element count observed.
func (s *Statistics) MaxLen() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxLen
}

// WriteThroughput returns the average number of elements written per second.
func (s *Statistics) WriteThroughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	return float64(s.ItemsWritten()) / elapsed.Seconds()
}

// ReadThroughput returns the average number of elements read per second.
func (s *Statistics) ReadThroughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	return float64(s.ItemsRead()) / elapsed.Seconds()
}

// Utilization returns the current fill level relative to capacity
// (0.0 to 1.0). Only meaningful for fixed-capacity buffers.
func (s *Statistics) Utilization(capacity int64) float64 {
	if capacity == 0 {
		return 0.0
	}

	return float64(s.CurrentLen()) / float64(capacity)
}

// Uptime returns how long the buffer has existed.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.itemsWritten, 0)
	atomic.StoreInt64(&s.itemsRead, 0)
	atomic.StoreInt64(&s.itemsDiscarded, 0)
	atomic.StoreInt64(&s.shortWrites, 0)
	atomic.StoreInt64(&s.grows, 0)
	atomic.StoreInt64(&s.evictions, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentLen = 0
	s.maxLen = 0
	s.mu.Unlock()
}

// StatsSummary is a snapshot of all statistics.
type StatsSummary struct {
	ItemsWritten    int64         `json:"items_written"`
	ItemsRead       int64         `json:"items_read"`
	ItemsDiscarded  int64         `json:"items_discarded"`
	ShortWrites     int64         `json:"short_writes"`
	Grows           int64         `json:"grows"`
	Evictions       int64         `json:"evictions"`
	CurrentLen      int64         `json:"current_len"`
	MaxLen          int64         `json:"max_len"`
	WriteThroughput float64       `json:"write_throughput"`
	ReadThroughput  float64       `json:"read_throughput"`
	Uptime          time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		ItemsWritten:    s.ItemsWritten(),
		ItemsRead:       s.ItemsRead(),
		ItemsDiscarded:  s.ItemsDiscarded(),
		ShortWrites:     s.ShortWrites(),
		Grows:           s.Grows(),
		Evictions:       s.Evictions(),
		CurrentLen:      s.CurrentLen(),
		MaxLen:          s.MaxLen(),
		WriteThroughput: s.WriteThroughput(),
		ReadThroughput:  s.ReadThroughput(),
		Uptime:          s.Uptime(),
	}
}
