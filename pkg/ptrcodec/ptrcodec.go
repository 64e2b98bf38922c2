// SPDX-License-Identifier: MIT

// Package ptrcodec obfuscates address-sized values with a pair of XOR keys.
//
// Encode maps a null address to the zero token regardless of the keys.
// Decode does not special-case zero: Decode(k1, k2, 0) yields k1^k2, so
// callers that store null tokens must track nullness themselves.
package ptrcodec

import "unsafe"

// Keys is a key pair used for both directions.
type Keys struct {
	K1 uintptr
	K2 uintptr
}

// Encode returns addr^key1^key2, or 0 when addr is 0.
func Encode(key1, key2, addr uintptr) uintptr {
	if addr == 0 {
		return 0
	}
	return xor(key1, key2, addr)
}

// Decode returns token^key1^key2.
func Decode(key1, key2, token uintptr) uintptr {
	return xor(key1, key2, token)
}

// EncodePointer encodes the address of p.
func EncodePointer(key1, key2 uintptr, p unsafe.Pointer) uintptr {
	return Encode(key1, key2, uintptr(p))
}

func xor(key1, key2, v uintptr) uintptr {
	v ^= key1
	v ^= key2
	return v
}

// Encode encodes addr with the pair.
func (k Keys) Encode(addr uintptr) uintptr { return Encode(k.K1, k.K2, addr) }

// Decode decodes token with the pair.
func (k Keys) Decode(token uintptr) uintptr { return Decode(k.K1, k.K2, token) }
