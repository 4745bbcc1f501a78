package alloc

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unsafe"
)

// Tracking wraps an upstream allocator and records every live block.
// Deallocating a block it never handed out, or handing one back twice, is a
// programming error and panics. FailAfter makes it refuse allocations, which
// is how tests reach the exhaustion paths.
type Tracking[A Allocator] struct {
	sync.Mutex
	upstream A
	live     map[unsafe.Pointer]Layout
	stats    Stats
	failIn   int
}

func NewTracking[A Allocator](upstream A) *Tracking[A] {
	return &Tracking[A]{
		upstream: upstream,
		live:     make(map[unsafe.Pointer]Layout),
		failIn:   -1,
	}
}

// FailAfter lets n more allocations succeed and fails every one after them.
// A negative n switches failure injection off.
func (t *Tracking[A]) FailAfter(n int) {
	t.Lock()
	defer t.Unlock()
	t.failIn = n
}

func (t *Tracking[A]) Alloc(l Layout) (unsafe.Pointer, error) {
	t.Lock()
	defer t.Unlock()
	if t.failIn == 0 {
		return nil, ErrInjected
	}
	if t.failIn > 0 {
		t.failIn--
	}
	ptr, err := t.upstream.Alloc(l)
	if err != nil {
		return nil, err
	}
	t.live[ptr] = l
	t.stats.Allocs++
	t.stats.LiveBytes += int64(l.Size)
	return ptr, nil
}

func (t *Tracking[A]) Dealloc(ptr unsafe.Pointer, l Layout) {
	if ptr == nil {
		return
	}
	t.Lock()
	defer t.Unlock()
	got, ok := t.live[ptr]
	if !ok {
		panic(fmt.Sprintf("alloc: dealloc of unknown or already freed block %p (%s)", ptr, l))
	}
	if got.Size != l.Size {
		panic(fmt.Sprintf("alloc: dealloc of %p with layout %s, allocated as %s", ptr, l, got))
	}
	delete(t.live, ptr)
	t.stats.Deallocs++
	t.stats.LiveBytes -= int64(l.Size)
	t.upstream.Dealloc(ptr, l)
}

// Live is the number of blocks allocated and not yet deallocated.
func (t *Tracking[A]) Live() int {
	t.Lock()
	defer t.Unlock()
	return len(t.live)
}

func (t *Tracking[A]) Stats() Stats {
	t.Lock()
	defer t.Unlock()
	s := t.stats
	s.LiveBlocks = int64(len(t.live))
	return s
}

// Report describes the leaked blocks grouped by type, or returns "" when
// nothing is live.
func (t *Tracking[A]) Report() string {
	t.Lock()
	defer t.Unlock()
	if len(t.live) == 0 {
		return ""
	}
	byType := make(map[string]int)
	for _, l := range t.live {
		byType[l.String()]++
	}
	names := make([]string, 0, len(byType))
	for name := range byType {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d live blocks:", len(t.live))
	for _, name := range names {
		fmt.Fprintf(&sb, " %s x%d", name, byType[name])
	}
	return sb.String()
}
