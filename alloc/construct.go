package alloc

import "unsafe"

// Construct allocates a T from a and runs init on the zeroed value in place.
// A nil init leaves the zero value. If init fails the block is handed back
// before the error is returned, so nothing stays reachable.
func Construct[T any, A Allocator](a A, init func(*T) error) (*T, error) {
	l := LayoutOf[T]()
	ptr, err := a.Alloc(l)
	if err != nil {
		return nil, err
	}
	p := (*T)(ptr)
	if init != nil {
		if err := init(p); err != nil {
			var zero T
			*p = zero
			a.Dealloc(ptr, l)
			return nil, err
		}
	}
	return p, nil
}

// New allocates a T from a holding a copy of v.
func New[T any, A Allocator](a A, v T) (*T, error) {
	l := LayoutOf[T]()
	ptr, err := a.Alloc(l)
	if err != nil {
		return nil, err
	}
	p := (*T)(ptr)
	*p = v
	return p, nil
}

// Destroy runs the Destroyer hook of *p if it has one, clears the value and
// returns its block to a. p must come from Construct or New on the same
// allocator.
func Destroy[T any, A Allocator](a A, p *T) {
	if p == nil {
		return
	}
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
	a.Dealloc(unsafe.Pointer(p), LayoutOf[T]())
}
