package owned

import "sync/atomic"

// Counter is the reference-count policy of a Shared. It is chosen by type:
// Atomic for handles that are cloned and released from several goroutines,
// Plain for handles that never leave one goroutine.
type Counter interface {
	inc(cell *int64) int64
	dec(cell *int64) int64
	load(cell *int64) int64
}

// Atomic updates the count with atomic read-modify-write operations.
type Atomic struct{}

func (Atomic) inc(cell *int64) int64  { return atomic.AddInt64(cell, 1) }
func (Atomic) dec(cell *int64) int64  { return atomic.AddInt64(cell, -1) }
func (Atomic) load(cell *int64) int64 { return atomic.LoadInt64(cell) }

// Plain updates the count with ordinary loads and stores. It is only correct
// when every handle sharing a cell is used from the same goroutine.
type Plain struct{}

func (Plain) inc(cell *int64) int64 {
	*cell++
	return *cell
}
func (Plain) dec(cell *int64) int64 {
	*cell--
	return *cell
}
func (Plain) load(cell *int64) int64 { return *cell }
