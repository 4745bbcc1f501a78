package alloc

const (
	DefaultChunkSize  = 1 << 18
	DefaultSlabChunks = 64
)

// chunkGen carves slabs taken from the OS into fixed-size chunks.
type chunkGen struct {
	chunkSize  int
	slabChunks int
	curSlab    []byte
	slabs      [][]byte
	reserved   int64
}

func (g *chunkGen) gen() ([]byte, error) {
	if len(g.curSlab) == 0 {
		slab, err := mapSlab(g.chunkSize * g.slabChunks)
		if err != nil {
			return nil, err
		}
		g.slabs = append(g.slabs, slab)
		g.reserved += int64(len(slab))
		g.curSlab = slab
	}
	res := g.curSlab[:g.chunkSize:g.chunkSize]
	g.curSlab = g.curSlab[g.chunkSize:]
	return res, nil
}

func (g *chunkGen) release() error {
	var first error
	for _, slab := range g.slabs {
		if err := unmapSlab(slab); err != nil && first == nil {
			first = err
		}
	}
	g.slabs = nil
	g.curSlab = nil
	g.reserved = 0
	return first
}
