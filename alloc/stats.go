package alloc

// Stats is a snapshot of allocator counters.
type Stats struct {
	Allocs     int64 `json:"allocs"`
	Deallocs   int64 `json:"deallocs"`
	LiveBlocks int64 `json:"live_blocks"`
	LiveBytes  int64 `json:"live_bytes"`
	// ReservedBytes is memory taken from the OS and not yet given back.
	ReservedBytes int64 `json:"reserved_bytes,omitempty"`
	// Chunks and FreeChunks are only filled by Arena.
	Chunks     int `json:"chunks,omitempty"`
	FreeChunks int `json:"free_chunks,omitempty"`
}
