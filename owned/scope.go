package owned

import "github.com/funny-falcon/ownership/alloc"

// Releaser is anything that ends its ownership on Release. *Unique, *Shared
// and the delegate types implement it.
type Releaser interface {
	Release()
}

// Scope collects owners and releases them in reverse order of Add, the way
// locals are destroyed at the end of a block:
//
//	var sc owned.Scope
//	defer sc.Release()
//	sc.Add(&u)
type Scope struct {
	R []Releaser
}

func (s *Scope) Add(r Releaser) {
	if s == nil {
		return
	}
	s.R = append(s.R, r)
}

func (s *Scope) Release() {
	if s == nil {
		return
	}
	for i := len(s.R) - 1; i >= 0; i-- {
		s.R[i].Release()
	}
	s.R = nil
}

var (
	_ Releaser = (*Unique[*int, alloc.Heap])(nil)
	_ Releaser = (*Shared[*int, alloc.Heap, Atomic])(nil)
)
