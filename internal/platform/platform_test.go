// SPDX-License-Identifier: MIT
package platform

import (
	"runtime"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocators(t *testing.T) map[string]RawAllocator {
	t.Helper()
	out := map[string]RawAllocator{"heap": NewHeapAllocator()}
	if m, err := NewMmapAllocator(); err == nil {
		out["mmap"] = m
	}
	return out
}

func TestAllocateAligned(t *testing.T) {
	for name, a := range allocators(t) {
		t.Run(name, func(t *testing.T) {
			for _, alignment := range []uintptr{1, 8, 64, 4096, 1 << 16} {
				for _, size := range []uintptr{1, 7, 100, 5000} {
					block, err := a.AllocateAligned(size, alignment)
					require.NoError(t, err)
					require.Len(t, block, int(size))
					assert.Zero(t, uintptr(unsafe.Pointer(&block[0]))%alignment,
						"size=%d alignment=%d", size, alignment)

					for i := range block {
						block[i] = byte(i)
					}
					require.NoError(t, a.FreeAligned(block))
				}
			}
		})
	}
}

func TestAllocateRejects(t *testing.T) {
	for name, a := range allocators(t) {
		t.Run(name, func(t *testing.T) {
			_, err := a.AllocateAligned(0, 8)
			assert.ErrorIs(t, err, ErrZeroSize)

			_, err = a.AllocateAligned(16, 0)
			assert.ErrorIs(t, err, ErrBadAlignment)

			_, err = a.AllocateAligned(16, 24)
			assert.ErrorIs(t, err, ErrBadAlignment)

			_, err = a.AllocateAligned(^uintptr(0), 16)
			assert.ErrorIs(t, err, ErrTooLarge)
		})
	}
}

func TestFreeUnknown(t *testing.T) {
	for name, a := range allocators(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, a.FreeAligned(nil), ErrNotAllocated)
			assert.ErrorIs(t, a.FreeAligned(make([]byte, 8)), ErrNotAllocated)

			block, err := a.AllocateAligned(32, 16)
			require.NoError(t, err)
			require.NoError(t, a.FreeAligned(block))
			assert.ErrorIs(t, a.FreeAligned(block), ErrNotAllocated, "double free")
		})
	}
}

func TestHeapAllocatorLive(t *testing.T) {
	h := NewHeapAllocator()
	a, err := h.AllocateAligned(10, 32)
	require.NoError(t, err)
	b, err := h.AllocateAligned(10, 32)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Live())

	require.NoError(t, h.FreeAligned(a))
	require.NoError(t, h.FreeAligned(b[:0]))
	assert.Equal(t, 0, h.Live())
}

func TestBuiltinCopy(t *testing.T) {
	tests := []struct {
		name      string
		dst, src  int
		n, expect int
	}{
		{"exact", 8, 8, 8, 8},
		{"short dst", 4, 8, 8, 4},
		{"short src", 8, 3, 8, 3},
		{"negative", 8, 8, -1, 0},
		{"zero", 8, 8, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dst)
			src := []byte(strings.Repeat("z", tt.src))
			got := BuiltinCopy{}.Copy(dst, src, tt.n)
			assert.Equal(t, tt.expect, got)
			assert.Equal(t, strings.Repeat("z", got), string(dst[:got]))
		})
	}
}

func TestMapEnv(t *testing.T) {
	env := MapEnv{"HOME": "/home/lumin", "LONG": strings.Repeat("a", 100)}
	buf := make([]byte, MinEnvBuffer)

	n, ok := env.Get("HOME", buf)
	require.True(t, ok)
	assert.Equal(t, "/home/lumin", string(buf[:n]))
	assert.Zero(t, buf[n])

	n, ok = env.Get("LONG", buf)
	require.True(t, ok)
	assert.Equal(t, MinEnvBuffer-1, n, "truncated to fit terminator")

	_, ok = env.Get("MISSING", buf)
	assert.False(t, ok)

	_, ok = env.Get("", buf)
	assert.False(t, ok)

	_, ok = env.Get("HOME", make([]byte, MinEnvBuffer-1))
	assert.False(t, ok, "buffer below minimum")
}

func TestSystemEnv(t *testing.T) {
	t.Setenv("LUMIN_PLATFORM_TEST", "value-42")

	v, ok := LookupString(SystemEnv{}, "LUMIN_PLATFORM_TEST")
	require.True(t, ok)
	assert.Equal(t, "value-42", v)

	_, ok = LookupString(SystemEnv{}, "LUMIN_PLATFORM_TEST_UNSET")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	caps, err := Resolve(Options{Allocator: ProviderHeap})
	require.NoError(t, err)
	assert.Equal(t, ProviderHeap, caps.AllocatorName)
	assert.IsType(t, &HeapAllocator{}, caps.Allocator)
	assert.NotNil(t, caps.Copier)
	assert.NotNil(t, caps.Env)

	caps, err = Resolve(Options{})
	require.NoError(t, err)
	if runtime.GOOS == "windows" || runtime.GOOS == "js" || runtime.GOOS == "wasip1" {
		assert.Equal(t, ProviderHeap, caps.AllocatorName)
	} else {
		assert.Equal(t, ProviderMmap, caps.AllocatorName)
	}

	_, err = Resolve(Options{Allocator: "bogus"})
	assert.Error(t, err)
}
