package alloc_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/ownership/alloc"
)

func unsafePtr[T any](p *T) unsafe.Pointer {
	return unsafe.Pointer(p)
}

type counted struct {
	ID        int
	destroyed *int
}

func (c *counted) Destroy() {
	*c.destroyed++
}

func TestConstruct(t *testing.T) {
	tr := alloc.NewTracking(alloc.Heap{})
	destroyed := 0

	p, err := alloc.Construct(tr, func(c *counted) error {
		assert.Equal(t, counted{}, *c, "construction starts from the zero value")
		c.ID = 7
		c.destroyed = &destroyed
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, p.ID)
	assert.Equal(t, 1, tr.Live())

	alloc.Destroy(tr, p)
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, 0, tr.Live())
	assert.Nil(t, p.destroyed, "destroyed value is cleared")
}

func TestConstruct_failureReleasesStorage(t *testing.T) {
	tr := alloc.NewTracking(alloc.Heap{})
	boom := errors.New("boom")

	p, err := alloc.Construct(tr, func(c *counted) error {
		c.ID = 1
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, p)
	assert.Equal(t, 0, tr.Live(), tr.Report())
	assert.Equal(t, int64(1), tr.Stats().Deallocs)
}

func TestConstruct_allocFailure(t *testing.T) {
	tr := alloc.NewTracking(alloc.Heap{})
	tr.FailAfter(0)
	called := false
	_, err := alloc.Construct(tr, func(*counted) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, alloc.ErrInjected)
	assert.False(t, called)
}

func TestNewInArena(t *testing.T) {
	a := smallArena(t, alloc.ArenaConfig{})
	p, err := alloc.New(a, flat{A: 3, B: [3]uint64{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, int32(3), p.A)
	assert.Equal(t, [3]uint64{1, 2, 3}, p.B)
	assert.Equal(t, 1, a.Stats().Chunks)

	alloc.Destroy(a, p)
	assert.Equal(t, int64(0), a.Stats().LiveBlocks)
}

func TestHeap_stats(t *testing.T) {
	before := alloc.Heap{}.Stats()
	p, err := alloc.New(alloc.Heap{}, flat{A: 1})
	require.NoError(t, err)
	mid := alloc.Heap{}.Stats()
	assert.Equal(t, before.Allocs+1, mid.Allocs)
	assert.Equal(t, before.LiveBytes+40, mid.LiveBytes)

	alloc.Destroy(alloc.Heap{}, p)
	after := alloc.Heap{}.Stats()
	assert.Equal(t, before.LiveBlocks, after.LiveBlocks)
	assert.Equal(t, before.LiveBytes, after.LiveBytes)
}

func TestHeap_distinctEmptyBlocks(t *testing.T) {
	a, err := alloc.New(alloc.Heap{}, struct{}{})
	require.NoError(t, err)
	b, err := alloc.New(alloc.Heap{}, struct{}{})
	require.NoError(t, err)
	assert.NotEqual(t, unsafePtr(a), unsafePtr(b))
}
