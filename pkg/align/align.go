// SPDX-License-Identifier: MIT
/*
Package align implements alignment arithmetic for sizes and addresses.

Rounding has two code paths. When the alignment is a power of two the
result is computed with a mask; otherwise it falls back to integer
division. Both paths give the same answer for powers of two and are
exported separately so that property can be checked.

Preconditions:
  - alignment and divisor arguments must be non-zero
  - Clamp expects lo <= hi

A zero alignment or divisor trips an assertion in builds tagged "debug".
Regular builds skip the check and return size unchanged.
*/
package align

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"lumin/internal/assert"
)

// IsPowerOfTwo reports whether x&(x-1) == 0. Note that this is also true
// for zero; use bitint.IsPowerOfTwo when zero must be rejected.
func IsPowerOfTwo[T constraints.Unsigned](x T) bool {
	return x&(x-1) == 0
}

// IsAligned reports whether addr is a multiple of alignment.
func IsAligned(addr, alignment uintptr) bool {
	assert.That(alignment != 0, "align: zero alignment")
	if alignment == 0 {
		return false
	}
	return addr%alignment == 0
}

// AlignUp rounds size up to the next multiple of alignment.
func AlignUp[T constraints.Unsigned](size, alignment T) T {
	assert.That(alignment != 0, "align: zero alignment")
	if alignment == 0 {
		return size
	}
	if alignment&(alignment-1) == 0 {
		return AlignUpMask(size, alignment)
	}
	return AlignUpDiv(size, alignment)
}

// AlignDown rounds size down to the previous multiple of alignment.
func AlignDown[T constraints.Unsigned](size, alignment T) T {
	assert.That(alignment != 0, "align: zero alignment")
	if alignment == 0 {
		return size
	}
	if alignment&(alignment-1) == 0 {
		return AlignDownMask(size, alignment)
	}
	return AlignDownDiv(size, alignment)
}

// AlignUpMask is the power-of-two path of AlignUp. The result is
// meaningless for any other alignment.
func AlignUpMask[T constraints.Unsigned](size, alignment T) T {
	mask := alignment - 1
	return (size + mask) &^ mask
}

// AlignDownMask is the power-of-two path of AlignDown.
func AlignDownMask[T constraints.Unsigned](size, alignment T) T {
	return size &^ (alignment - 1)
}

// AlignUpDiv is the division path of AlignUp; valid for any non-zero alignment.
func AlignUpDiv[T constraints.Unsigned](size, alignment T) T {
	return ((size + alignment - 1) / alignment) * alignment
}

// AlignDownDiv is the division path of AlignDown.
func AlignDownDiv[T constraints.Unsigned](size, alignment T) T {
	return (size / alignment) * alignment
}

// AlignUpPointer rounds p up to alignment.
func AlignUpPointer(p unsafe.Pointer, alignment uintptr) unsafe.Pointer {
	return unsafe.Add(p, AlignUp(uintptr(p), alignment)-uintptr(p))
}

// AlignDownPointer rounds p down to alignment.
func AlignDownPointer(p unsafe.Pointer, alignment uintptr) unsafe.Pointer {
	return unsafe.Add(p, -int(uintptr(p)-AlignDown(uintptr(p), alignment)))
}

// DivCeil divides size by divisor, rounding up.
func DivCeil[T constraints.Unsigned](size, divisor T) T {
	assert.That(divisor != 0, "align: zero divisor")
	if divisor == 0 {
		return size
	}
	return (size + divisor - 1) / divisor
}

// Clamp bounds value to [lo, hi].
func Clamp[T constraints.Integer](value, lo, hi T) T {
	if value < lo {
		return lo
	} else if value > hi {
		return hi
	}
	return value
}

// WordSize returns the number of machine words needed to hold size bytes.
func WordSize(size uintptr) uintptr {
	const word = unsafe.Sizeof(uintptr(0))
	assert.That(size <= ^uintptr(0)-word, "align: size overflows word rounding")
	return (size + word - 1) / word
}

// AlignOf returns the alignment the compiler uses for values of type T.
func AlignOf[T any]() uintptr {
	var v T
	return unsafe.Alignof(v)
}

// IsZero reports whether every byte of p is zero.
func IsZero(p []byte) bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}
