// SPDX-License-Identifier: MIT
package platform

import (
	"sync"
	"unsafe"

	"lumin/pkg/align"
	"lumin/pkg/bitint"
)

// checkRequest validates an allocation request.
func checkRequest(size, alignment uintptr) error {
	if size == 0 {
		return ErrZeroSize
	}
	if !bitint.IsPowerOfTwo(uint64(alignment)) {
		return ErrBadAlignment
	}
	if size > ^uintptr(0)-alignment {
		return ErrTooLarge
	}
	return nil
}

// blockKey identifies a block by the address of its first byte.
func blockKey(block []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(block)))
}

// HeapAllocator over-allocates a Go slice and returns the aligned window
// inside it. The backing slice is held until FreeAligned so the block stays
// reachable even if the caller only keeps a derived pointer.
type HeapAllocator struct {
	mu   sync.Mutex
	live map[uintptr][]byte
}

// NewHeapAllocator returns an empty HeapAllocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{live: make(map[uintptr][]byte)}
}

// AllocateAligned returns a zeroed block of size bytes aligned to alignment.
func (h *HeapAllocator) AllocateAligned(size, alignment uintptr) ([]byte, error) {
	if err := checkRequest(size, alignment); err != nil {
		return nil, err
	}

	raw := make([]byte, size+alignment-1)
	base := uintptr(unsafe.Pointer(&raw[0]))
	off := align.AlignUp(base, alignment) - base
	block := raw[off : off+size : off+size]

	h.mu.Lock()
	h.live[base+off] = raw
	h.mu.Unlock()
	return block, nil
}

// FreeAligned releases a block returned by AllocateAligned.
func (h *HeapAllocator) FreeAligned(block []byte) error {
	if cap(block) == 0 {
		return ErrNotAllocated
	}
	key := blockKey(block)

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.live[key]; !ok {
		return ErrNotAllocated
	}
	delete(h.live, key)
	return nil
}

// Live returns the number of outstanding blocks.
func (h *HeapAllocator) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

var _ RawAllocator = (*HeapAllocator)(nil)
