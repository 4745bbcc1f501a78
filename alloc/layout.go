package alloc

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/modern-go/reflect2"
)

// Layout describes the block a value needs.
//
// Layouts produced by LayoutOf carry the type descriptor, so allocators that
// hand out Go heap memory can allocate it typed and keep the collector aware
// of the pointers inside. A Layout built by hand describes raw pointer-free
// memory.
type Layout struct {
	Size     uintptr
	Align    uintptr
	Pointers bool

	typ reflect2.Type
}

var layouts sync.Map // rtype -> Layout

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	typ := reflect2.TypeOfPtr((*T)(nil)).Elem()
	if l, ok := layouts.Load(typ.RType()); ok {
		return l.(Layout)
	}
	t1 := typ.Type1()
	l := Layout{
		Size:     t1.Size(),
		Align:    uintptr(t1.Align()),
		Pointers: hasPointers(t1),
		typ:      typ,
	}
	layouts.Store(typ.RType(), l)
	return l
}

// String names the type behind the layout, or "raw" for hand-made layouts.
func (l Layout) String() string {
	if l.typ == nil {
		return "raw"
	}
	return l.typ.String()
}

// heapBlock allocates l from the Go heap.
func heapBlock(l Layout) unsafe.Pointer {
	if l.Size == 0 {
		// every object gets its own address, even an empty one
		return unsafe.Pointer(new(uint64))
	}
	if l.typ != nil {
		return l.typ.UnsafeNew()
	}
	words := make([]uint64, (l.Size+7)/8)
	return unsafe.Pointer(&words[0])
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

func alignUp(n, align uintptr) uintptr {
	if align < 8 {
		align = 8
	}
	return (n + align - 1) &^ (align - 1)
}
