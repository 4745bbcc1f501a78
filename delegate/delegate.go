// Package delegate builds reference-counted closures whose captured state
// lives in a block from an alloc.Allocator.
//
// BindAK binds the K trailing parameters of a function to captured values and
// leaves its A leading parameters to the call site:
//
//	accumulate := func(x int, sum *int) int {
//		*sum += x
//		return *sum
//	}
//	d, err := delegate.Bind11In[owned.Atomic](arena, accumulate, &sum)
//	...
//	d.Call(3)
//
// The closure is allocated once, as an owned.Shared of a small Callable, and
// every copy made with Clone calls the same closure. Two delegates are Equal
// only when they share that allocation.
//
// Capturing a pointer captures a reference: the delegate does not keep the
// pointee valid beyond what the garbage collector does, and a pointee owned
// by a Unique or Shared must outlive every call.
package delegate

import (
	"github.com/funny-falcon/ownership/alloc"
	"github.com/funny-falcon/ownership/owned"
)

type Callable0[R any] interface {
	Call() R
}

type Callable1[R, X1 any] interface {
	Call(X1) R
}

type Callable2[R, X1, X2 any] interface {
	Call(X1, X2) R
}

// Delegate0 is a shared handle to a closure taking no call-site arguments.
// The zero Delegate0 is not callable.
type Delegate0[R any, A alloc.Allocator, C owned.Counter] struct {
	fn owned.Shared[Callable0[R], A, C]
}

// Wrap0 turns a pre-built shared callable into a delegate, taking over s.
func Wrap0[R any, A alloc.Allocator, C owned.Counter](s *owned.Shared[Callable0[R], A, C]) Delegate0[R, A, C] {
	return Delegate0[R, A, C]{fn: s.Move()}
}

func (d *Delegate0[R, A, C]) Call() R {
	if !d.fn.Valid() {
		panic("delegate: call of released delegate")
	}
	return d.fn.Value().Call()
}

func (d *Delegate0[R, A, C]) Clone() Delegate0[R, A, C] {
	return Delegate0[R, A, C]{fn: d.fn.Clone()}
}

func (d *Delegate0[R, A, C]) Equal(o *Delegate0[R, A, C]) bool {
	return d.fn.Same(&o.fn)
}

func (d *Delegate0[R, A, C]) Valid() bool { return d.fn.Valid() }
func (d *Delegate0[R, A, C]) Release()    { d.fn.Release() }

// Delegate1 is a shared handle to a closure taking one call-site argument.
type Delegate1[R, X1 any, A alloc.Allocator, C owned.Counter] struct {
	fn owned.Shared[Callable1[R, X1], A, C]
}

func Wrap1[R, X1 any, A alloc.Allocator, C owned.Counter](s *owned.Shared[Callable1[R, X1], A, C]) Delegate1[R, X1, A, C] {
	return Delegate1[R, X1, A, C]{fn: s.Move()}
}

func (d *Delegate1[R, X1, A, C]) Call(x1 X1) R {
	if !d.fn.Valid() {
		panic("delegate: call of released delegate")
	}
	return d.fn.Value().Call(x1)
}

func (d *Delegate1[R, X1, A, C]) Clone() Delegate1[R, X1, A, C] {
	return Delegate1[R, X1, A, C]{fn: d.fn.Clone()}
}

func (d *Delegate1[R, X1, A, C]) Equal(o *Delegate1[R, X1, A, C]) bool {
	return d.fn.Same(&o.fn)
}

func (d *Delegate1[R, X1, A, C]) Valid() bool { return d.fn.Valid() }
func (d *Delegate1[R, X1, A, C]) Release()    { d.fn.Release() }

// Delegate2 is a shared handle to a closure taking two call-site arguments.
type Delegate2[R, X1, X2 any, A alloc.Allocator, C owned.Counter] struct {
	fn owned.Shared[Callable2[R, X1, X2], A, C]
}

func Wrap2[R, X1, X2 any, A alloc.Allocator, C owned.Counter](s *owned.Shared[Callable2[R, X1, X2], A, C]) Delegate2[R, X1, X2, A, C] {
	return Delegate2[R, X1, X2, A, C]{fn: s.Move()}
}

func (d *Delegate2[R, X1, X2, A, C]) Call(x1 X1, x2 X2) R {
	if !d.fn.Valid() {
		panic("delegate: call of released delegate")
	}
	return d.fn.Value().Call(x1, x2)
}

func (d *Delegate2[R, X1, X2, A, C]) Clone() Delegate2[R, X1, X2, A, C] {
	return Delegate2[R, X1, X2, A, C]{fn: d.fn.Clone()}
}

func (d *Delegate2[R, X1, X2, A, C]) Equal(o *Delegate2[R, X1, X2, A, C]) bool {
	return d.fn.Same(&o.fn)
}

func (d *Delegate2[R, X1, X2, A, C]) Valid() bool { return d.fn.Valid() }
func (d *Delegate2[R, X1, X2, A, C]) Release()    { d.fn.Release() }

// Func0, Func1 and Func2 are delegates on the Go heap with an atomic count.
type (
	Func0[R any]         = Delegate0[R, alloc.Heap, owned.Atomic]
	Func1[R, X1 any]     = Delegate1[R, X1, alloc.Heap, owned.Atomic]
	Func2[R, X1, X2 any] = Delegate2[R, X1, X2, alloc.Heap, owned.Atomic]
)

var (
	_ owned.Releaser = (*Func0[int])(nil)
	_ owned.Releaser = (*Func1[int, int])(nil)
	_ owned.Releaser = (*Func2[int, int, int])(nil)
)
