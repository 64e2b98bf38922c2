// SPDX-License-Identifier: MIT
/*
Package cstr operates on NUL-terminated byte buffers.

A buffer's content runs up to its first zero byte, or to the end of the
slice when it holds none. A nil slice is the absent buffer and is accepted
everywhere: lengths read as 0 and writes become no-ops.

Capacity arguments are bounded by len(dst) as well, so no function here
writes outside the slice it was given.
*/
package cstr

// ToUpper folds ASCII 'a'-'z' to upper case and leaves other bytes alone.
func ToUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Len returns the number of bytes before the terminator.
func Len(s []byte) int {
	for i, c := range s {
		if c == 0 {
			return i
		}
	}
	return len(s)
}

// LenBounded is Len, but never scans past maxLen bytes.
func LenBounded(s []byte, maxLen int) int {
	n := 0
	for n < maxLen && n < len(s) && s[n] != 0 {
		n++
	}
	return n
}

// Copy copies src into dst until src is exhausted or capacity-1 bytes are
// written, then terminates dst. It returns the number of bytes copied.
func Copy(dst, src []byte, capacity int) int {
	capacity = min(capacity, len(dst))
	if dst == nil || src == nil || capacity <= 0 {
		return 0
	}
	n := 0
	for n < len(src) && src[n] != 0 && capacity > 1 {
		dst[n] = src[n]
		n++
		capacity--
	}
	dst[n] = 0
	return n
}

// Concat appends src to the string already held in dst. The existing
// terminator is searched for within capacity; the copy then uses whatever
// capacity remains.
func Concat(dst, src []byte, capacity int) int {
	capacity = min(capacity, len(dst))
	if dst == nil || src == nil || capacity <= 0 {
		return 0
	}
	i := 0
	for dst[i] != 0 && capacity > 1 {
		i++
		capacity--
	}
	return Copy(dst[i:], src, capacity)
}

// CompareFold compares a and b case-insensitively over at most maxCompared
// bytes. It returns 0 when maxCompared is 0 or when no difference is found
// within the bound, and otherwise the difference of the folded bytes where
// the comparison stopped.
func CompareFold(a, b []byte, maxCompared int) int {
	if maxCompared <= 0 {
		return 0
	}
	i := 0
	for ; maxCompared > 0; maxCompared-- {
		ca, cb := at(a, i), at(b, i)
		if ca == 0 || cb == 0 || ToUpper(ca) != ToUpper(cb) {
			break
		}
		i++
	}
	if maxCompared == 0 {
		return 0
	}
	return int(ToUpper(at(a, i))) - int(ToUpper(at(b, i)))
}

// at reads s[i], treating the end of the slice as a terminator.
func at(s []byte, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// String returns the content of s up to its terminator.
func String(s []byte) string {
	return string(s[:Len(s)])
}
