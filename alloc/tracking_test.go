package alloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/ownership/alloc"
)

func TestTracking_liveAndReport(t *testing.T) {
	tr := alloc.NewTracking(alloc.Heap{})
	l := alloc.LayoutOf[flat]()

	p1, err := tr.Alloc(l)
	require.NoError(t, err)
	p2, err := tr.Alloc(l)
	require.NoError(t, err)
	_, err = tr.Alloc(alloc.LayoutOf[int64]())
	require.NoError(t, err)

	assert.Equal(t, 3, tr.Live())
	assert.Equal(t, "3 live blocks: alloc_test.flat x2 int64 x1", tr.Report())

	tr.Dealloc(p1, l)
	tr.Dealloc(p2, l)
	st := tr.Stats()
	assert.Equal(t, int64(3), st.Allocs)
	assert.Equal(t, int64(2), st.Deallocs)
	assert.Equal(t, int64(1), st.LiveBlocks)
	assert.Equal(t, int64(8), st.LiveBytes)
}

func TestTracking_misuse(t *testing.T) {
	tr := alloc.NewTracking(alloc.Heap{})
	l := alloc.LayoutOf[int64]()
	p, err := tr.Alloc(l)
	require.NoError(t, err)

	assert.Panics(t, func() { tr.Dealloc(p, alloc.LayoutOf[flat]()) }, "layout mismatch")
	tr.Dealloc(p, l)
	assert.Panics(t, func() { tr.Dealloc(p, l) }, "double free")

	var other int64
	assert.Panics(t, func() { tr.Dealloc(unsafePtr(&other), l) }, "foreign block")
	assert.Equal(t, "", tr.Report())
}

func TestTracking_failAfter(t *testing.T) {
	tr := alloc.NewTracking(alloc.NewArena(alloc.ArenaConfig{ChunkSize: 4096, SlabChunks: 1}))
	l := alloc.LayoutOf[int64]()

	tr.FailAfter(2)
	_, err := tr.Alloc(l)
	require.NoError(t, err)
	_, err = tr.Alloc(l)
	require.NoError(t, err)
	_, err = tr.Alloc(l)
	assert.ErrorIs(t, err, alloc.ErrInjected)
	_, err = tr.Alloc(l)
	assert.ErrorIs(t, err, alloc.ErrInjected)

	tr.FailAfter(-1)
	_, err = tr.Alloc(l)
	assert.NoError(t, err)
	assert.Equal(t, 3, tr.Live())
}

func TestTracking_upstreamError(t *testing.T) {
	tr := alloc.NewTracking(alloc.NewArena(alloc.ArenaConfig{ChunkSize: 4096, SlabChunks: 1}))
	_, err := tr.Alloc(alloc.Layout{Size: 1 << 20, Align: 8})
	assert.ErrorIs(t, err, alloc.ErrTooLarge)
	assert.Equal(t, 0, tr.Live())
}
