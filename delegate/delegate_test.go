package delegate_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/ownership/alloc"
	"github.com/funny-falcon/ownership/delegate"
	"github.com/funny-falcon/ownership/owned"
)

func tracking(t *testing.T) *alloc.Tracking[alloc.Heap] {
	tr := alloc.NewTracking(alloc.Heap{})
	t.Cleanup(func() {
		require.Equal(t, 0, tr.Live(), tr.Report())
	})
	return tr
}

func accumulate(x int, sum *int) int {
	*sum += x
	return *sum
}

func TestBind_accumulate(t *testing.T) {
	tr := tracking(t)
	sum := 0
	d, err := delegate.Bind11In[owned.Atomic](tr, accumulate, &sum)
	require.NoError(t, err)
	defer d.Release()

	xs := []int{3, 5, 1, 9, 4}
	var last int
	for _, x := range xs {
		last = d.Call(x)
	}
	assert.Equal(t, 22, sum)
	assert.Equal(t, 22, last)
}

func TestBind_arena(t *testing.T) {
	a := alloc.NewArena(alloc.ArenaConfig{ChunkSize: 4096, SlabChunks: 1})
	defer a.Release()

	sum := 0
	d, err := delegate.Bind11In[owned.Plain](a, accumulate, &sum)
	require.NoError(t, err)
	for _, x := range []int{3, 5, 1, 9, 4} {
		d.Call(x)
	}
	assert.Equal(t, 22, sum)
	assert.Equal(t, int64(2), a.Stats().LiveBlocks, "closure and counter")
	d.Release()
	assert.Equal(t, int64(0), a.Stats().LiveBlocks)
}

func TestDelegate_identity(t *testing.T) {
	tr := tracking(t)
	sum := 0
	d, err := delegate.Bind11In[owned.Atomic](tr, accumulate, &sum)
	require.NoError(t, err)
	c := d.Clone()
	assert.True(t, d.Equal(&c))
	assert.True(t, c.Equal(&d))

	other, err := delegate.Bind11In[owned.Atomic](tr, accumulate, &sum)
	require.NoError(t, err)
	assert.False(t, d.Equal(&other), "same function and captures, different allocation")

	c.Call(2)
	d.Call(3)
	other.Call(4)
	assert.Equal(t, 9, sum)

	d.Release()
	assert.True(t, c.Valid())
	assert.Equal(t, 10, c.Call(1))
	c.Release()
	other.Release()
	assert.False(t, d.Equal(&c), "released delegates are equal to nothing")
}

func TestDelegate_callAfterRelease(t *testing.T) {
	d, err := delegate.Bind00[alloc.Heap, owned.Atomic](func() int { return 1 })
	require.NoError(t, err)
	assert.Equal(t, 1, d.Call())
	d.Release()
	assert.False(t, d.Valid())
	assert.Panics(t, func() { d.Call() })

	var zero delegate.Func1[int, int]
	assert.Panics(t, func() { zero.Call(1) })
	zero.Release()
}

func TestBind_arities(t *testing.T) {
	tr := tracking(t)
	var sc owned.Scope
	defer sc.Release()

	d00, err := delegate.Bind00In[owned.Atomic](tr, func() string { return "x" })
	require.NoError(t, err)
	sc.Add(&d00)
	assert.Equal(t, "x", d00.Call())

	d01, err := delegate.Bind01In[owned.Atomic](tr, strings.ToUpper, "abc")
	require.NoError(t, err)
	sc.Add(&d01)
	assert.Equal(t, "ABC", d01.Call())

	d02, err := delegate.Bind02In[owned.Plain](tr, strings.Repeat, "ab", 3)
	require.NoError(t, err)
	sc.Add(&d02)
	assert.Equal(t, "ababab", d02.Call())

	d03, err := delegate.Bind03In[owned.Plain](tr, func(a, b, c int) int { return a*100 + b*10 + c }, 1, 2, 3)
	require.NoError(t, err)
	sc.Add(&d03)
	assert.Equal(t, 123, d03.Call())

	d10, err := delegate.Bind10In[owned.Atomic](tr, func(x int) int { return -x })
	require.NoError(t, err)
	sc.Add(&d10)
	assert.Equal(t, -5, d10.Call(5))

	d11, err := delegate.Bind11In[owned.Atomic](tr, strings.TrimPrefix, "go:")
	require.NoError(t, err)
	sc.Add(&d11)
	assert.Equal(t, "build", d11.Call("go:build"))

	d13, err := delegate.Bind13In[owned.Atomic](tr, func(s string, a, b string, n int) string {
		return strings.Replace(s, a, b, n)
	}, "o", "0", 1)
	require.NoError(t, err)
	sc.Add(&d13)
	assert.Equal(t, "f0o", d13.Call("foo"))

	d20, err := delegate.Bind20In[owned.Atomic](tr, func(a, b int) int { return a - b })
	require.NoError(t, err)
	sc.Add(&d20)
	assert.Equal(t, 3, d20.Call(5, 2))

	d21, err := delegate.Bind21In[owned.Atomic](tr, func(a, b, k int) int { return (a + b) * k }, 10)
	require.NoError(t, err)
	sc.Add(&d21)
	assert.Equal(t, 70, d21.Call(3, 4))

	d22, err := delegate.Bind22In[owned.Atomic](tr, func(a, b string, sep string, n int) string {
		return strings.Repeat(a+sep+b, n)
	}, "-", 2)
	require.NoError(t, err)
	sc.Add(&d22)
	assert.Equal(t, "a-ba-b", d22.Call("a", "b"))

	d23, err := delegate.Bind23In[owned.Atomic](tr, func(x, y int, a, b, c int) int { return a*x*x + b*y + c }, 1, 2, 3)
	require.NoError(t, err)
	sc.Add(&d23)
	assert.Equal(t, 4+6+3, d23.Call(2, 3))

	assert.Equal(t, 22, tr.Live(), "11 closures, each with a counter cell")
}

func TestBind_static(t *testing.T) {
	n := 0
	inc := func(by int, p *int) int {
		*p += by
		return *p
	}
	d, err := delegate.Bind11[alloc.Heap, owned.Atomic](inc, &n)
	require.NoError(t, err)
	var f delegate.Func1[int, int] = d.Clone()
	d.Release()
	assert.Equal(t, 2, f.Call(2))
	f.Release()

	d2, err := delegate.Bind21[alloc.Heap, owned.Plain](func(a, b int, k int) int { return a*k + b }, 10)
	require.NoError(t, err)
	assert.Equal(t, 34, d2.Call(3, 4))
	d2.Release()
}

type adder struct{ n int }

func (a *adder) Call(x int) int { return a.n + x }

func TestWrap(t *testing.T) {
	tr := tracking(t)
	s, err := owned.NewSharedIn[adder, owned.Atomic](tr, adder{n: 40})
	require.NoError(t, err)
	c := owned.Upcast(&s, func(p *adder) delegate.Callable1[int, int] { return p })
	s.Release()

	d := delegate.Wrap1(&c)
	assert.False(t, c.Valid(), "Wrap takes over the handle")
	assert.Equal(t, 42, d.Call(2))
	d.Release()
}

func TestBind_allocFailure(t *testing.T) {
	tr := tracking(t)
	calls := 0

	tr.FailAfter(0)
	_, err := delegate.Bind00In[owned.Atomic](tr, func() int { calls++; return calls })
	assert.ErrorIs(t, err, alloc.ErrInjected)

	tr.FailAfter(1)
	_, err = delegate.Bind00In[owned.Atomic](tr, func() int { calls++; return calls })
	assert.ErrorIs(t, err, alloc.ErrInjected, "counter cell")
	assert.Equal(t, 0, calls)
}

func TestDelegate_concurrentClones(t *testing.T) {
	var (
		mu  sync.Mutex
		sum int
	)
	d, err := delegate.Bind11[alloc.Heap, owned.Atomic](func(x int, p *int) int {
		mu.Lock()
		defer mu.Unlock()
		*p += x
		return *p
	}, &sum)
	require.NoError(t, err)

	const workers = 16
	clones := make([]delegate.Func1[int, int], workers)
	for i := range clones {
		clones[i] = d.Clone()
	}
	d.Release()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(f *delegate.Func1[int, int]) {
			defer wg.Done()
			defer f.Release()
			for j := 0; j < 100; j++ {
				f.Call(1)
			}
		}(&clones[i])
	}
	wg.Wait()
	assert.Equal(t, workers*100, sum)
}
