// Package owned implements ownership handles over blocks obtained from an
// alloc.Allocator: Unique for sole ownership and Shared for reference-counted
// co-ownership.
//
// A handle is parametrized by its view type P, which is *T right after
// construction and may become an interface type after an upcast, and by its
// allocator type A. With a static allocator such as alloc.Heap the allocator
// field is zero-sized; with an instance allocator every handle keeps the
// allocator that produced its block and gives the block back to it.
//
// Handles must not be copied by value; go vet reports such copies. Use Move
// to transfer and Shared.Clone to share. Ownership ends with Release, which
// runs the value's Destroy hook and returns the memory to the allocator.
package owned

import (
	"fmt"
	"unsafe"

	"github.com/funny-falcon/ownership/alloc"
)

// dropOf destroys a block holding a T. It is captured when the block is
// constructed, so a handle viewing the block through an interface still
// destroys the concrete value.
func dropOf[T any, A alloc.Allocator](a A, ptr unsafe.Pointer) {
	alloc.Destroy(a, (*T)(ptr))
}

// Unique is the sole owner of one block. The zero Unique is empty.
type Unique[P any, A alloc.Allocator] struct {
	_     noCopy
	val   P
	ptr   unsafe.Pointer
	alloc A
	drop  func(A, unsafe.Pointer)
}

// NewUnique allocates a copy of v from the static allocator A.
func NewUnique[T any, A alloc.Static](v T) (Unique[*T, A], error) {
	var a A
	return NewUniqueIn(a, v)
}

// NewUniqueIn allocates a copy of v from a.
func NewUniqueIn[T any, A alloc.Allocator](a A, v T) (Unique[*T, A], error) {
	p, err := alloc.New(a, v)
	if err != nil {
		return Unique[*T, A]{}, fmt.Errorf("owned: allocate %s: %w", alloc.LayoutOf[T](), err)
	}
	return Unique[*T, A]{val: p, ptr: unsafe.Pointer(p), alloc: a, drop: dropOf[T, A]}, nil
}

// MakeUnique constructs a T in place with ctor using the static allocator A.
func MakeUnique[T any, A alloc.Static](ctor func(*T) error) (Unique[*T, A], error) {
	var a A
	return MakeUniqueIn(a, ctor)
}

// MakeUniqueIn constructs a T in place with ctor in memory from a. When ctor
// fails the memory is returned to a before the error is.
func MakeUniqueIn[T any, A alloc.Allocator](a A, ctor func(*T) error) (Unique[*T, A], error) {
	p, err := alloc.Construct(a, ctor)
	if err != nil {
		return Unique[*T, A]{}, fmt.Errorf("owned: construct %s: %w", alloc.LayoutOf[T](), err)
	}
	return Unique[*T, A]{val: p, ptr: unsafe.Pointer(p), alloc: a, drop: dropOf[T, A]}, nil
}

func (u *Unique[P, A]) Valid() bool {
	return u.ptr != nil
}

// Value returns the owned value. Calling it on an empty handle is a
// use-after-move bug and panics.
func (u *Unique[P, A]) Value() P {
	if u.ptr == nil {
		panic("owned: Value of empty Unique")
	}
	return u.val
}

// Allocator returns the allocator the block came from.
func (u *Unique[P, A]) Allocator() A {
	return u.alloc
}

// Move transfers ownership to the returned handle and empties u.
func (u *Unique[P, A]) Move() Unique[P, A] {
	val, ptr, a, drop := u.val, u.ptr, u.alloc, u.drop
	u.reset()
	return Unique[P, A]{val: val, ptr: ptr, alloc: a, drop: drop}
}

// Release destroys the owned value and empties u. It is a no-op on an empty
// handle.
func (u *Unique[P, A]) Release() {
	if u.ptr == nil {
		return
	}
	ptr, a, drop := u.ptr, u.alloc, u.drop
	u.reset()
	drop(a, ptr)
}

func (u *Unique[P, A]) reset() {
	var (
		zeroP P
		zeroA A
	)
	u.val = zeroP
	u.ptr = nil
	u.alloc = zeroA
	u.drop = nil
}

// UpcastMove moves u into a handle viewing the same value as B. as must
// return its argument converted to B; writing it as
//
//	func(d *Derived) Base { return d }
//
// lets the compiler prove the conversion. Destruction still runs the
// concrete value's hook. An empty u gives an empty result.
func UpcastMove[B, P any, A alloc.Allocator](u *Unique[P, A], as func(P) B) Unique[B, A] {
	if u.ptr == nil {
		return Unique[B, A]{}
	}
	val, ptr, a, drop := as(u.val), u.ptr, u.alloc, u.drop
	u.reset()
	return Unique[B, A]{val: val, ptr: ptr, alloc: a, drop: drop}
}

// ToShared turns u into a Shared with a fresh counter cell at 1, allocated
// from u's allocator. On failure u is left untouched. There is no way back
// from Shared to Unique.
func ToShared[C Counter, P any, A alloc.Allocator](u *Unique[P, A]) (Shared[P, A, C], error) {
	if u.ptr == nil {
		return Shared[P, A, C]{}, nil
	}
	cell, err := alloc.New[int64](u.alloc, 1)
	if err != nil {
		return Shared[P, A, C]{}, fmt.Errorf("owned: allocate counter: %w", err)
	}
	val, ptr, a, drop := u.val, u.ptr, u.alloc, u.drop
	u.reset()
	return Shared[P, A, C]{val: val, ptr: ptr, cell: cell, alloc: a, drop: drop}, nil
}
