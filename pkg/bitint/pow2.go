/*
Package bitint holds word-level integer helpers: population counts and
power-of-two rounding. Everything here is branch-light, constant time and
allocation-free, and behaves the same on 32-bit and 64-bit targets.

	n := bitint.PopCount64(0xF0F0)      // 8
	size := bitint.NextPowerOfTwo(1000) // 1024
	shift := bitint.Log2(size)          // 10

Rounding works on size-1 so an exact power of two maps to itself: for 8,
bits.Len64(7) is 3 and 1<<3 is 8, where bits.Len64(8) would give 16.
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of two >= size. 0 and 1 give
// 1; sizes above 1<<63 have no representable answer and give 0.
func NextPowerOfTwo(size uint64) uint64 {
	if size <= 1 {
		return 1
	}
	n := bits.Len64(size - 1)
	if n == 64 {
		return 0
	}
	return 1 << n
}

// IsPowerOfTwo reports whether n is a positive power of two. Unlike
// align.IsPowerOfTwo it rejects zero, which makes it the check used to
// validate configured alignments.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && (n&(n-1)) == 0
}

// Log2 returns floor(log2(n)), or -1 for zero.
func Log2(n uint64) int {
	return bits.Len64(n) - 1
}
