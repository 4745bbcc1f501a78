package alloc

import (
	"sync/atomic"
	"unsafe"
)

// Heap is the static allocator over the Go heap. Blocks are allocated typed,
// so they may hold pointers; Dealloc only updates the statistics and leaves
// the memory to the collector.
//
// Heap is safe for concurrent use.
type Heap struct{}

var heapStats struct {
	allocs    atomic.Int64
	deallocs  atomic.Int64
	liveBytes atomic.Int64
}

func (Heap) Static() {}

func (Heap) Alloc(l Layout) (unsafe.Pointer, error) {
	ptr := heapBlock(l)
	heapStats.allocs.Add(1)
	heapStats.liveBytes.Add(int64(l.Size))
	return ptr, nil
}

func (Heap) Dealloc(ptr unsafe.Pointer, l Layout) {
	if ptr == nil {
		return
	}
	heapStats.deallocs.Add(1)
	heapStats.liveBytes.Add(-int64(l.Size))
}

// Stats reports process-wide Heap counters.
func (Heap) Stats() Stats {
	allocs, deallocs := heapStats.allocs.Load(), heapStats.deallocs.Load()
	return Stats{
		Allocs:     allocs,
		Deallocs:   deallocs,
		LiveBlocks: allocs - deallocs,
		LiveBytes:  heapStats.liveBytes.Load(),
	}
}
