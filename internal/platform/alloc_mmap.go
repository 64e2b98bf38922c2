//go:build unix

// SPDX-License-Identifier: MIT
package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"lumin/pkg/align"
)

// MmapAllocator serves each block from its own anonymous private mapping.
// Mappings are page aligned; larger alignments over-map by the difference
// and return the aligned window.
type MmapAllocator struct {
	pageSize uintptr

	mu   sync.Mutex
	live map[uintptr][]byte // aligned start -> whole mapping
}

// NewMmapAllocator returns an allocator backed by mmap(2).
func NewMmapAllocator() (*MmapAllocator, error) {
	return &MmapAllocator{
		pageSize: uintptr(unix.Getpagesize()),
		live:     make(map[uintptr][]byte),
	}, nil
}

// AllocateAligned maps a zeroed block of size bytes aligned to alignment.
func (m *MmapAllocator) AllocateAligned(size, alignment uintptr) ([]byte, error) {
	if err := checkRequest(size, alignment); err != nil {
		return nil, err
	}

	var extra uintptr
	if alignment > m.pageSize {
		extra = alignment - m.pageSize
	}
	length := align.AlignUp(size, m.pageSize) + extra
	if length < size {
		return nil, ErrTooLarge
	}

	mapping, err := unix.Mmap(-1, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", length, err)
	}

	base := uintptr(unsafe.Pointer(&mapping[0]))
	off := align.AlignUp(base, alignment) - base
	block := mapping[off : off+size : off+size]

	m.mu.Lock()
	m.live[base+off] = mapping
	m.mu.Unlock()
	return block, nil
}

// FreeAligned unmaps a block returned by AllocateAligned.
func (m *MmapAllocator) FreeAligned(block []byte) error {
	if cap(block) == 0 {
		return ErrNotAllocated
	}
	key := blockKey(block)

	m.mu.Lock()
	mapping, ok := m.live[key]
	delete(m.live, key)
	m.mu.Unlock()

	if !ok {
		return ErrNotAllocated
	}
	if err := unix.Munmap(mapping); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

// PageSize returns the system page size.
func (m *MmapAllocator) PageSize() uintptr { return m.pageSize }

var _ RawAllocator = (*MmapAllocator)(nil)
