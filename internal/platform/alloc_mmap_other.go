//go:build !unix

// SPDX-License-Identifier: MIT
package platform

// MmapAllocator is unavailable on this system.
type MmapAllocator struct{}

// NewMmapAllocator always fails here; Resolve falls back to the heap.
func NewMmapAllocator() (*MmapAllocator, error) {
	return nil, ErrUnavailable
}

func (*MmapAllocator) AllocateAligned(size, alignment uintptr) ([]byte, error) {
	return nil, ErrUnavailable
}

func (*MmapAllocator) FreeAligned(block []byte) error {
	return ErrUnavailable
}

// PageSize returns 0.
func (*MmapAllocator) PageSize() uintptr { return 0 }
