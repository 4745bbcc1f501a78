package alloc

import (
	"encoding/binary"
	"sync"
	"unsafe"
)

const blockHeader = 8

type ArenaConfig struct {
	// ChunkSize is the unit the arena bumps through. The largest block is
	// ChunkSize minus the block header.
	ChunkSize int
	// SlabChunks is how many chunks are mapped from the OS at once.
	SlabChunks int
	// Limit caps the bytes of chunks in use; 0 means no cap.
	Limit int64
}

func (c ArenaConfig) withDefaults() ArenaConfig {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	c.ChunkSize = int(alignUp(uintptr(c.ChunkSize), 8))
	if c.SlabChunks <= 0 {
		c.SlabChunks = DefaultSlabChunks
	}
	return c
}

// Arena is an instance allocator. Pointer-free blocks are bump-allocated
// inside chunks of mmap'd slabs; every chunk counts its live bytes and goes
// back to the free list once they drop to zero. Blocks that contain pointers
// are taken from the Go heap instead so the collector still sees them.
//
// Arena is safe for concurrent use. Release unmaps all slabs; blocks still
// held at that point must not be touched anymore.
type Arena struct {
	sync.Mutex
	cfg      ArenaConfig
	gen      chunkGen
	chunks   []chunk
	cur      int
	free     []int
	stats    Stats
	released bool
}

type chunk struct {
	mem  []byte
	off  uintptr
	live uintptr
}

func NewArena(cfg ArenaConfig) *Arena {
	cfg = cfg.withDefaults()
	return &Arena{
		cfg: cfg,
		gen: chunkGen{chunkSize: cfg.ChunkSize, slabChunks: cfg.SlabChunks},
		cur: -1,
	}
}

func (a *Arena) Alloc(l Layout) (unsafe.Pointer, error) {
	a.Lock()
	defer a.Unlock()
	if a.released {
		return nil, ErrReleased
	}
	if l.Pointers {
		ptr := heapBlock(l)
		a.stats.Allocs++
		a.stats.LiveBytes += int64(l.Size)
		return ptr, nil
	}
	return a.alloc(l)
}

func (a *Arena) alloc(l Layout) (unsafe.Pointer, error) {
	need := alignUp(l.Size, 8)
	if need == 0 {
		need = 8
	}
	worst := need + blockHeader
	if l.Align > 8 {
		worst += l.Align - 8
	}
	if worst > uintptr(a.cfg.ChunkSize) {
		return nil, ErrTooLarge
	}
	for {
		if a.cur >= 0 {
			if ptr, ok := a.bump(a.cur, need, l.Align); ok {
				return ptr, nil
			}
		}
		if err := a.nextChunk(); err != nil {
			return nil, err
		}
	}
}

func (a *Arena) bump(idx int, need, align uintptr) (unsafe.Pointer, bool) {
	c := &a.chunks[idx]
	base := uintptr(unsafe.Pointer(&c.mem[0]))
	start := alignUp(base+c.off+blockHeader, align) - base
	end := start + need
	if end > uintptr(len(c.mem)) {
		return nil, false
	}
	size := end - c.off
	hdr := c.mem[start-blockHeader : start]
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(size))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(idx))
	clear(c.mem[start:end])
	c.off = end
	c.live += size
	a.stats.Allocs++
	a.stats.LiveBytes += int64(need)
	return unsafe.Pointer(&c.mem[start]), true
}

func (a *Arena) nextChunk() error {
	if a.cur >= 0 && a.chunks[a.cur].live == 0 {
		a.chunks[a.cur].off = 0
		return nil
	}
	if n := len(a.free); n > 0 {
		a.cur = a.free[n-1]
		a.free = a.free[:n-1]
		return nil
	}
	if a.cfg.Limit > 0 && int64(len(a.chunks)+1)*int64(a.cfg.ChunkSize) > a.cfg.Limit {
		return ErrExhausted
	}
	mem, err := a.gen.gen()
	if err != nil {
		return err
	}
	a.chunks = append(a.chunks, chunk{mem: mem})
	a.cur = len(a.chunks) - 1
	return nil
}

func (a *Arena) Dealloc(ptr unsafe.Pointer, l Layout) {
	if ptr == nil {
		return
	}
	a.Lock()
	defer a.Unlock()
	if a.released {
		return
	}
	a.stats.Deallocs++
	if l.Pointers {
		a.stats.LiveBytes -= int64(l.Size)
		return
	}
	need := alignUp(l.Size, 8)
	if need == 0 {
		need = 8
	}
	a.stats.LiveBytes -= int64(need)

	hdr := unsafe.Slice((*byte)(unsafe.Add(ptr, -blockHeader)), blockHeader)
	size := uintptr(binary.LittleEndian.Uint32(hdr[0:4]))
	idx := int(binary.LittleEndian.Uint32(hdr[4:8]))
	if idx >= len(a.chunks) {
		panic("alloc: block does not belong to this arena")
	}
	c := &a.chunks[idx]
	if size > c.live {
		panic("alloc: arena chunk accounting underflow")
	}
	c.live -= size
	if c.live == 0 {
		c.off = 0
		if idx != a.cur {
			a.free = append(a.free, idx)
		}
	}
}

// Stats returns a snapshot of the arena counters.
func (a *Arena) Stats() Stats {
	a.Lock()
	defer a.Unlock()
	s := a.stats
	s.LiveBlocks = s.Allocs - s.Deallocs
	s.ReservedBytes = a.gen.reserved
	s.Chunks = len(a.chunks)
	s.FreeChunks = len(a.free)
	return s
}

// Release unmaps every slab. Further Alloc calls fail with ErrReleased and
// Dealloc becomes a no-op.
func (a *Arena) Release() error {
	a.Lock()
	defer a.Unlock()
	if a.released {
		return nil
	}
	a.released = true
	a.chunks = nil
	a.free = nil
	a.cur = -1
	return a.gen.release()
}
