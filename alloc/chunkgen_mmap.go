//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package alloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func mapSlab(size int) ([]byte, error) {
	slab, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("alloc: mmap %d bytes: %w", size, err)
	}
	return slab, nil
}

func unmapSlab(slab []byte) error {
	return unix.Munmap(slab)
}
