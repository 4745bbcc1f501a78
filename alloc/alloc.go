// Package alloc is the allocation capability the ownership handles are built on.
//
// An Allocator hands out raw blocks described by a Layout and takes them back.
// Construct and Destroy put a typed value into such a block and take it out
// again, running the value's Destroy hook.
//
// Two flavours exist. Static allocators (Heap) are zero-size values that all
// address one process-wide instance, so a handle bound to them stores nothing.
// Instance allocators (*Arena, *Tracking) are caller-owned and every handle
// keeps a reference to the one that produced its block.
package alloc

import "unsafe"

type Allocator interface {
	// Alloc returns a zeroed block satisfying l.
	Alloc(l Layout) (unsafe.Pointer, error)
	// Dealloc gives back a block obtained from Alloc with the same layout.
	Dealloc(ptr unsafe.Pointer, l Layout)
}

// Static is implemented by allocators whose zero value refers to a single
// process-wide instance.
type Static interface {
	Allocator
	Static()
}

// Destroyer is the destructor hook. Destroy runs once, right before the
// block holding the value is returned to its allocator.
type Destroyer interface {
	Destroy()
}

var (
	_ Allocator = Heap{}
	_ Static    = Heap{}
	_ Allocator = (*Arena)(nil)
	_ Allocator = (*Tracking[Heap])(nil)
)
