// SPDX-License-Identifier: MIT
package platform

import "lumin/pkg/align"

// BuiltinCopy copies with the runtime's memmove.
type BuiltinCopy struct{}

// Copy copies up to n bytes, clamped to both slice lengths.
func (BuiltinCopy) Copy(dst, src []byte, n int) int {
	n = align.Clamp(n, 0, min(len(dst), len(src)))
	return copy(dst[:n], src[:n])
}

var _ BulkCopy = BuiltinCopy{}
