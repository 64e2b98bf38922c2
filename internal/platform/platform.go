// SPDX-License-Identifier: MIT
/*
Package platform supplies the host capabilities the primitive packages
treat as external: aligned raw allocation, bulk copy and bounded
environment lookup.

Providers are chosen once by Resolve and returned as an immutable
Capabilities value that callers pass along explicitly. Nothing in this
package keeps process-wide mutable selection state.
*/
package platform

import (
	"errors"
	"fmt"

	applog "lumin/internal/log"
)

var (
	ErrZeroSize     = errors.New("platform: allocation size must be non-zero")
	ErrBadAlignment = errors.New("platform: alignment must be a power of two")
	ErrTooLarge     = errors.New("platform: allocation size overflows")
	ErrNotAllocated = errors.New("platform: block was not allocated by this allocator")
	ErrUnavailable  = errors.New("platform: provider not available on this system")
)

// RawAllocator hands out blocks whose first byte is aligned to the
// requested power of two. Blocks must be released with FreeAligned on the
// allocator that produced them.
type RawAllocator interface {
	AllocateAligned(size, alignment uintptr) ([]byte, error)
	FreeAligned(block []byte) error
}

// BulkCopy copies n bytes from src to dst and returns the number copied.
type BulkCopy interface {
	Copy(dst, src []byte, n int) int
}

// EnvLookup copies the value of an environment variable into dst as a
// NUL-terminated string.
type EnvLookup interface {
	Get(name string, dst []byte) (int, bool)
}

// Allocator provider names accepted by Options.
const (
	ProviderAuto = "auto"
	ProviderMmap = "mmap"
	ProviderHeap = "heap"
)

// Options selects providers.
type Options struct {
	Allocator string // ProviderAuto, ProviderMmap or ProviderHeap
}

// Capabilities is the resolved set of providers.
type Capabilities struct {
	Allocator     RawAllocator
	Copier        BulkCopy
	Env           EnvLookup
	AllocatorName string
}

// Resolve picks a provider for every capability. With ProviderAuto the
// mmap allocator is preferred where the system supports it.
func Resolve(opts Options) (*Capabilities, error) {
	caps := &Capabilities{
		Copier: BuiltinCopy{},
		Env:    SystemEnv{},
	}

	switch opts.Allocator {
	case "", ProviderAuto:
		if a, err := NewMmapAllocator(); err == nil {
			caps.Allocator, caps.AllocatorName = a, ProviderMmap
		} else {
			applog.Debugf("platform: mmap allocator unavailable (%v), using heap", err)
			caps.Allocator, caps.AllocatorName = NewHeapAllocator(), ProviderHeap
		}
	case ProviderMmap:
		a, err := NewMmapAllocator()
		if err != nil {
			return nil, fmt.Errorf("resolve allocator %q: %w", opts.Allocator, err)
		}
		caps.Allocator, caps.AllocatorName = a, ProviderMmap
	case ProviderHeap:
		caps.Allocator, caps.AllocatorName = NewHeapAllocator(), ProviderHeap
	default:
		return nil, fmt.Errorf("resolve allocator: unknown provider %q", opts.Allocator)
	}

	applog.Debugf("platform: allocator=%s copy=builtin env=system", caps.AllocatorName)
	return caps, nil
}
