package owned_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/ownership/alloc"
)

type Shape interface {
	Area() int
	Name() string
}

type base struct {
	name string
	log  *[]string
}

func (b *base) Name() string { return b.name }

func (b *base) Destroy() {
	*b.log = append(*b.log, "base:"+b.name)
}

type square struct {
	base
	side int
}

func (s *square) Area() int { return s.side * s.side }

func (s *square) Destroy() {
	*s.log = append(*s.log, "square:"+s.name)
	s.base.Destroy()
}

type point struct {
	X, Y int64
}

type counted struct {
	id        int
	destroyed *[]int
}

func (c *counted) Destroy() {
	*c.destroyed = append(*c.destroyed, c.id)
}

func tracking(t *testing.T) *alloc.Tracking[alloc.Heap] {
	tr := alloc.NewTracking(alloc.Heap{})
	t.Cleanup(func() {
		require.Equal(t, 0, tr.Live(), tr.Report())
	})
	return tr
}
