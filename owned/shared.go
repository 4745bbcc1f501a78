package owned

import (
	"fmt"
	"unsafe"

	"github.com/funny-falcon/ownership/alloc"
)

// Shared is a co-owner of one block. All handles cloned from one allocation
// share a counter cell taken from the same allocator; the value is destroyed
// and both blocks are returned when the count drops from 1 to 0. The zero
// Shared is empty.
//
// The counter policy C decides whether Clone and Release may race: with
// Atomic they may run on different goroutines, with Plain they may not. The
// value itself is never synchronized.
type Shared[P any, A alloc.Allocator, C Counter] struct {
	_     noCopy
	val   P
	ptr   unsafe.Pointer
	cell  *int64
	alloc A
	drop  func(A, unsafe.Pointer)
}

// NewShared allocates a copy of v and a counter cell from the static
// allocator A.
func NewShared[T any, A alloc.Static, C Counter](v T) (Shared[*T, A, C], error) {
	var a A
	return NewSharedIn[T, C](a, v)
}

// NewSharedIn allocates a copy of v and a counter cell from a.
func NewSharedIn[T any, C Counter, A alloc.Allocator](a A, v T) (Shared[*T, A, C], error) {
	p, err := alloc.New(a, v)
	if err != nil {
		return Shared[*T, A, C]{}, fmt.Errorf("owned: allocate %s: %w", alloc.LayoutOf[T](), err)
	}
	return sharedOf[C](a, p)
}

// MakeShared constructs a T in place with ctor using the static allocator A.
func MakeShared[T any, A alloc.Static, C Counter](ctor func(*T) error) (Shared[*T, A, C], error) {
	var a A
	return MakeSharedIn[T, C](a, ctor)
}

// MakeSharedIn constructs a T in place with ctor in memory from a.
func MakeSharedIn[T any, C Counter, A alloc.Allocator](a A, ctor func(*T) error) (Shared[*T, A, C], error) {
	p, err := alloc.Construct(a, ctor)
	if err != nil {
		return Shared[*T, A, C]{}, fmt.Errorf("owned: construct %s: %w", alloc.LayoutOf[T](), err)
	}
	return sharedOf[C](a, p)
}

func sharedOf[C Counter, T any, A alloc.Allocator](a A, p *T) (Shared[*T, A, C], error) {
	cell, err := alloc.New[int64](a, 1)
	if err != nil {
		alloc.Destroy(a, p)
		return Shared[*T, A, C]{}, fmt.Errorf("owned: allocate counter for %s: %w", alloc.LayoutOf[T](), err)
	}
	return Shared[*T, A, C]{val: p, ptr: unsafe.Pointer(p), cell: cell, alloc: a, drop: dropOf[T, A]}, nil
}

func (s *Shared[P, A, C]) counter() C {
	var c C
	return c
}

// Valid reports whether s refers to a live value.
func (s *Shared[P, A, C]) Valid() bool {
	return s.cell != nil && s.counter().load(s.cell) > 0
}

// Value returns the shared value. s must be valid.
func (s *Shared[P, A, C]) Value() P {
	if !s.Valid() {
		panic("owned: Value of invalid Shared")
	}
	return s.val
}

// Count is the number of handles sharing the value, 0 for an empty handle.
func (s *Shared[P, A, C]) Count() int64 {
	if s.cell == nil {
		return 0
	}
	return s.counter().load(s.cell)
}

func (s *Shared[P, A, C]) Allocator() A {
	return s.alloc
}

// Same reports whether s and o share one value.
func (s *Shared[P, A, C]) Same(o *Shared[P, A, C]) bool {
	return s.ptr != nil && s.ptr == o.ptr
}

// Clone returns another co-owner of the value. Cloning an empty handle gives
// an empty handle.
func (s *Shared[P, A, C]) Clone() Shared[P, A, C] {
	if s.cell == nil {
		return Shared[P, A, C]{}
	}
	if s.counter().inc(s.cell) <= 1 {
		panic("owned: Clone of destroyed Shared")
	}
	return Shared[P, A, C]{val: s.val, ptr: s.ptr, cell: s.cell, alloc: s.alloc, drop: s.drop}
}

// Move transfers s's share to the returned handle without touching the
// count and empties s.
func (s *Shared[P, A, C]) Move() Shared[P, A, C] {
	val, ptr, cell, a, drop := s.val, s.ptr, s.cell, s.alloc, s.drop
	s.reset()
	return Shared[P, A, C]{val: val, ptr: ptr, cell: cell, alloc: a, drop: drop}
}

// Assign makes s a co-owner of o's value, releasing what s held before.
// o's count is raised before s's old share is dropped, so s.Assign(s) and
// assignments between handles of one value keep the value alive.
func (s *Shared[P, A, C]) Assign(o *Shared[P, A, C]) {
	if o.cell != nil && s.counter().inc(o.cell) <= 1 {
		panic("owned: Assign from destroyed Shared")
	}
	val, ptr, cell, a, drop := o.val, o.ptr, o.cell, o.alloc, o.drop
	s.Release()
	s.val, s.ptr, s.cell, s.alloc, s.drop = val, ptr, cell, a, drop
}

// Release gives up s's share and empties s. The handle that takes the count
// to zero destroys the value and returns the value and counter blocks to the
// allocator; the transition happens once, in a single decrement.
func (s *Shared[P, A, C]) Release() {
	if s.cell == nil {
		return
	}
	ptr, cell, a, drop := s.ptr, s.cell, s.alloc, s.drop
	s.reset()
	switch n := s.counter().dec(cell); {
	case n == 0:
		drop(a, ptr)
		alloc.Destroy(a, cell)
	case n < 0:
		panic("owned: reference count underflow")
	}
}

func (s *Shared[P, A, C]) reset() {
	var (
		zeroP P
		zeroA A
	)
	s.val = zeroP
	s.ptr = nil
	s.cell = nil
	s.alloc = zeroA
	s.drop = nil
}

// Upcast returns a co-owner viewing s's value as B; both handles stay valid
// and share one counter cell. as must return its argument converted to B.
func Upcast[B, P any, A alloc.Allocator, C Counter](s *Shared[P, A, C], as func(P) B) Shared[B, A, C] {
	if s.cell == nil {
		return Shared[B, A, C]{}
	}
	if s.counter().inc(s.cell) <= 1 {
		panic("owned: Upcast of destroyed Shared")
	}
	return Shared[B, A, C]{val: as(s.val), ptr: s.ptr, cell: s.cell, alloc: s.alloc, drop: s.drop}
}
