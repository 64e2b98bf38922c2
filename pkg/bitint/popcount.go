// SPDX-License-Identifier: MIT
package bitint

// Masks for the bit-parallel reduction. Each step sums neighbouring groups
// of 1, 2 and 4 bits in place.
const (
	maskEvenBits32    uint32 = 0x55555555
	maskEvenPairs32   uint32 = 0x33333333
	maskEvenNibbles32 uint32 = 0x0F0F0F0F

	maskEvenBits64    uint64 = 0x5555555555555555
	maskEvenPairs64   uint64 = 0x3333333333333333
	maskEvenNibbles64 uint64 = 0x0F0F0F0F0F0F0F0F
)

// PopCount32 returns the number of set bits in x.
//
// After the three masked steps every byte holds the count of its own bits
// (at most 8). The shifted additions then accumulate all byte counts into
// the top byte, which is the result.
func PopCount32(x uint32) int {
	x -= (x >> 1) & maskEvenBits32
	x = (x & maskEvenPairs32) + ((x >> 2) & maskEvenPairs32)
	x = (x + (x >> 4)) & maskEvenNibbles32
	return byteSum32(x)
}

// PopCount64 returns the number of set bits in x.
func PopCount64(x uint64) int {
	x -= (x >> 1) & maskEvenBits64
	x = (x & maskEvenPairs64) + ((x >> 2) & maskEvenPairs64)
	x = (x + (x >> 4)) & maskEvenNibbles64
	return byteSum64(x)
}

func byteSum32(x uint32) int {
	x += x << 8
	x += x << 16
	return int(x >> 24)
}

func byteSum64(x uint64) int {
	x += x << 8
	x += x << 16
	x += x << 32
	return int(x >> 56)
}
