package delegate

import (
	"fmt"

	"github.com/funny-falcon/ownership/alloc"
	"github.com/funny-falcon/ownership/owned"
)

// build0, build1 and build2 allocate the concrete closure f as a Shared and
// view it through the matching Callable.
func build0[C owned.Counter, R any, F any, PF interface {
	*F
	Callable0[R]
}, A alloc.Allocator](a A, f F) (Delegate0[R, A, C], error) {
	s, err := owned.NewSharedIn[F, C](a, f)
	if err != nil {
		return Delegate0[R, A, C]{}, fmt.Errorf("delegate: %w", err)
	}
	defer s.Release()
	return Delegate0[R, A, C]{fn: owned.Upcast(&s, func(p *F) Callable0[R] { return PF(p) })}, nil
}

func build1[C owned.Counter, R, X1 any, F any, PF interface {
	*F
	Callable1[R, X1]
}, A alloc.Allocator](a A, f F) (Delegate1[R, X1, A, C], error) {
	s, err := owned.NewSharedIn[F, C](a, f)
	if err != nil {
		return Delegate1[R, X1, A, C]{}, fmt.Errorf("delegate: %w", err)
	}
	defer s.Release()
	return Delegate1[R, X1, A, C]{fn: owned.Upcast(&s, func(p *F) Callable1[R, X1] { return PF(p) })}, nil
}

func build2[C owned.Counter, R, X1, X2 any, F any, PF interface {
	*F
	Callable2[R, X1, X2]
}, A alloc.Allocator](a A, f F) (Delegate2[R, X1, X2, A, C], error) {
	s, err := owned.NewSharedIn[F, C](a, f)
	if err != nil {
		return Delegate2[R, X1, X2, A, C]{}, fmt.Errorf("delegate: %w", err)
	}
	defer s.Release()
	return Delegate2[R, X1, X2, A, C]{fn: owned.Upcast(&s, func(p *F) Callable2[R, X1, X2] { return PF(p) })}, nil
}

type closure00[R any] struct {
	fn func() R
}

func (c *closure00[R]) Call() R {
	return c.fn()
}

// Bind00In allocates a delegate calling fn from a.
func Bind00In[C owned.Counter, R any, A alloc.Allocator](a A, fn func() R) (Delegate0[R, A, C], error) {
	return build0[C, R](a, closure00[R]{fn: fn})
}

// Bind00 allocates a delegate calling fn from the static allocator A.
func Bind00[A alloc.Static, C owned.Counter, R any](fn func() R) (Delegate0[R, A, C], error) {
	var a A
	return Bind00In[C](a, fn)
}

type closure01[R, C1 any] struct {
	fn func(C1) R
	c1 C1
}

func (c *closure01[R, C1]) Call() R {
	return c.fn(c.c1)
}

// Bind01In allocates, from a, a delegate that calls fn with the captured value bound to its last parameter.
func Bind01In[C owned.Counter, R, C1 any, A alloc.Allocator](a A, fn func(C1) R, c1 C1) (Delegate0[R, A, C], error) {
	return build0[C, R](a, closure01[R, C1]{fn: fn, c1: c1})
}

// Bind01 is Bind01In over the static allocator A.
func Bind01[A alloc.Static, C owned.Counter, R, C1 any](fn func(C1) R, c1 C1) (Delegate0[R, A, C], error) {
	var a A
	return Bind01In[C](a, fn, c1)
}

type closure02[R, C1, C2 any] struct {
	fn func(C1, C2) R
	c1 C1
	c2 C2
}

func (c *closure02[R, C1, C2]) Call() R {
	return c.fn(c.c1, c.c2)
}

// Bind02In allocates, from a, a delegate that calls fn with the captured values bound to its last 2 parameters.
func Bind02In[C owned.Counter, R, C1, C2 any, A alloc.Allocator](a A, fn func(C1, C2) R, c1 C1, c2 C2) (Delegate0[R, A, C], error) {
	return build0[C, R](a, closure02[R, C1, C2]{fn: fn, c1: c1, c2: c2})
}

// Bind02 is Bind02In over the static allocator A.
func Bind02[A alloc.Static, C owned.Counter, R, C1, C2 any](fn func(C1, C2) R, c1 C1, c2 C2) (Delegate0[R, A, C], error) {
	var a A
	return Bind02In[C](a, fn, c1, c2)
}

type closure03[R, C1, C2, C3 any] struct {
	fn func(C1, C2, C3) R
	c1 C1
	c2 C2
	c3 C3
}

func (c *closure03[R, C1, C2, C3]) Call() R {
	return c.fn(c.c1, c.c2, c.c3)
}

// Bind03In allocates, from a, a delegate that calls fn with the captured values bound to its last 3 parameters.
func Bind03In[C owned.Counter, R, C1, C2, C3 any, A alloc.Allocator](a A, fn func(C1, C2, C3) R, c1 C1, c2 C2, c3 C3) (Delegate0[R, A, C], error) {
	return build0[C, R](a, closure03[R, C1, C2, C3]{fn: fn, c1: c1, c2: c2, c3: c3})
}

// Bind03 is Bind03In over the static allocator A.
func Bind03[A alloc.Static, C owned.Counter, R, C1, C2, C3 any](fn func(C1, C2, C3) R, c1 C1, c2 C2, c3 C3) (Delegate0[R, A, C], error) {
	var a A
	return Bind03In[C](a, fn, c1, c2, c3)
}

type closure10[R, X1 any] struct {
	fn func(X1) R
}

func (c *closure10[R, X1]) Call(x1 X1) R {
	return c.fn(x1)
}

// Bind10In allocates a delegate calling fn from a.
func Bind10In[C owned.Counter, R, X1 any, A alloc.Allocator](a A, fn func(X1) R) (Delegate1[R, X1, A, C], error) {
	return build1[C, R, X1](a, closure10[R, X1]{fn: fn})
}

// Bind10 allocates a delegate calling fn from the static allocator A.
func Bind10[A alloc.Static, C owned.Counter, R, X1 any](fn func(X1) R) (Delegate1[R, X1, A, C], error) {
	var a A
	return Bind10In[C](a, fn)
}

type closure11[R, X1, C1 any] struct {
	fn func(X1, C1) R
	c1 C1
}

func (c *closure11[R, X1, C1]) Call(x1 X1) R {
	return c.fn(x1, c.c1)
}

// Bind11In allocates, from a, a delegate that calls fn with the captured value bound to its last parameter.
func Bind11In[C owned.Counter, R, X1, C1 any, A alloc.Allocator](a A, fn func(X1, C1) R, c1 C1) (Delegate1[R, X1, A, C], error) {
	return build1[C, R, X1](a, closure11[R, X1, C1]{fn: fn, c1: c1})
}

// Bind11 is Bind11In over the static allocator A.
func Bind11[A alloc.Static, C owned.Counter, R, X1, C1 any](fn func(X1, C1) R, c1 C1) (Delegate1[R, X1, A, C], error) {
	var a A
	return Bind11In[C](a, fn, c1)
}

type closure12[R, X1, C1, C2 any] struct {
	fn func(X1, C1, C2) R
	c1 C1
	c2 C2
}

func (c *closure12[R, X1, C1, C2]) Call(x1 X1) R {
	return c.fn(x1, c.c1, c.c2)
}

// Bind12In allocates, from a, a delegate that calls fn with the captured values bound to its last 2 parameters.
func Bind12In[C owned.Counter, R, X1, C1, C2 any, A alloc.Allocator](a A, fn func(X1, C1, C2) R, c1 C1, c2 C2) (Delegate1[R, X1, A, C], error) {
	return build1[C, R, X1](a, closure12[R, X1, C1, C2]{fn: fn, c1: c1, c2: c2})
}

// Bind12 is Bind12In over the static allocator A.
func Bind12[A alloc.Static, C owned.Counter, R, X1, C1, C2 any](fn func(X1, C1, C2) R, c1 C1, c2 C2) (Delegate1[R, X1, A, C], error) {
	var a A
	return Bind12In[C](a, fn, c1, c2)
}

type closure13[R, X1, C1, C2, C3 any] struct {
	fn func(X1, C1, C2, C3) R
	c1 C1
	c2 C2
	c3 C3
}

func (c *closure13[R, X1, C1, C2, C3]) Call(x1 X1) R {
	return c.fn(x1, c.c1, c.c2, c.c3)
}

// Bind13In allocates, from a, a delegate that calls fn with the captured values bound to its last 3 parameters.
func Bind13In[C owned.Counter, R, X1, C1, C2, C3 any, A alloc.Allocator](a A, fn func(X1, C1, C2, C3) R, c1 C1, c2 C2, c3 C3) (Delegate1[R, X1, A, C], error) {
	return build1[C, R, X1](a, closure13[R, X1, C1, C2, C3]{fn: fn, c1: c1, c2: c2, c3: c3})
}

// Bind13 is Bind13In over the static allocator A.
func Bind13[A alloc.Static, C owned.Counter, R, X1, C1, C2, C3 any](fn func(X1, C1, C2, C3) R, c1 C1, c2 C2, c3 C3) (Delegate1[R, X1, A, C], error) {
	var a A
	return Bind13In[C](a, fn, c1, c2, c3)
}

type closure20[R, X1, X2 any] struct {
	fn func(X1, X2) R
}

func (c *closure20[R, X1, X2]) Call(x1 X1, x2 X2) R {
	return c.fn(x1, x2)
}

// Bind20In allocates a delegate calling fn from a.
func Bind20In[C owned.Counter, R, X1, X2 any, A alloc.Allocator](a A, fn func(X1, X2) R) (Delegate2[R, X1, X2, A, C], error) {
	return build2[C, R, X1, X2](a, closure20[R, X1, X2]{fn: fn})
}

// Bind20 allocates a delegate calling fn from the static allocator A.
func Bind20[A alloc.Static, C owned.Counter, R, X1, X2 any](fn func(X1, X2) R) (Delegate2[R, X1, X2, A, C], error) {
	var a A
	return Bind20In[C](a, fn)
}

type closure21[R, X1, X2, C1 any] struct {
	fn func(X1, X2, C1) R
	c1 C1
}

func (c *closure21[R, X1, X2, C1]) Call(x1 X1, x2 X2) R {
	return c.fn(x1, x2, c.c1)
}

// Bind21In allocates, from a, a delegate that calls fn with the captured value bound to its last parameter.
func Bind21In[C owned.Counter, R, X1, X2, C1 any, A alloc.Allocator](a A, fn func(X1, X2, C1) R, c1 C1) (Delegate2[R, X1, X2, A, C], error) {
	return build2[C, R, X1, X2](a, closure21[R, X1, X2, C1]{fn: fn, c1: c1})
}

// Bind21 is Bind21In over the static allocator A.
func Bind21[A alloc.Static, C owned.Counter, R, X1, X2, C1 any](fn func(X1, X2, C1) R, c1 C1) (Delegate2[R, X1, X2, A, C], error) {
	var a A
	return Bind21In[C](a, fn, c1)
}

type closure22[R, X1, X2, C1, C2 any] struct {
	fn func(X1, X2, C1, C2) R
	c1 C1
	c2 C2
}

func (c *closure22[R, X1, X2, C1, C2]) Call(x1 X1, x2 X2) R {
	return c.fn(x1, x2, c.c1, c.c2)
}

// Bind22In allocates, from a, a delegate that calls fn with the captured values bound to its last 2 parameters.
func Bind22In[C owned.Counter, R, X1, X2, C1, C2 any, A alloc.Allocator](a A, fn func(X1, X2, C1, C2) R, c1 C1, c2 C2) (Delegate2[R, X1, X2, A, C], error) {
	return build2[C, R, X1, X2](a, closure22[R, X1, X2, C1, C2]{fn: fn, c1: c1, c2: c2})
}

// Bind22 is Bind22In over the static allocator A.
func Bind22[A alloc.Static, C owned.Counter, R, X1, X2, C1, C2 any](fn func(X1, X2, C1, C2) R, c1 C1, c2 C2) (Delegate2[R, X1, X2, A, C], error) {
	var a A
	return Bind22In[C](a, fn, c1, c2)
}

type closure23[R, X1, X2, C1, C2, C3 any] struct {
	fn func(X1, X2, C1, C2, C3) R
	c1 C1
	c2 C2
	c3 C3
}

func (c *closure23[R, X1, X2, C1, C2, C3]) Call(x1 X1, x2 X2) R {
	return c.fn(x1, x2, c.c1, c.c2, c.c3)
}

// Bind23In allocates, from a, a delegate that calls fn with the captured values bound to its last 3 parameters.
func Bind23In[C owned.Counter, R, X1, X2, C1, C2, C3 any, A alloc.Allocator](a A, fn func(X1, X2, C1, C2, C3) R, c1 C1, c2 C2, c3 C3) (Delegate2[R, X1, X2, A, C], error) {
	return build2[C, R, X1, X2](a, closure23[R, X1, X2, C1, C2, C3]{fn: fn, c1: c1, c2: c2, c3: c3})
}

// Bind23 is Bind23In over the static allocator A.
func Bind23[A alloc.Static, C owned.Counter, R, X1, X2, C1, C2, C3 any](fn func(X1, X2, C1, C2, C3) R, c1 C1, c2 C2, c3 C3) (Delegate2[R, X1, X2, A, C], error) {
	var a A
	return Bind23In[C](a, fn, c1, c2, c3)
}
