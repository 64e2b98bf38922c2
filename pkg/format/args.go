// SPDX-License-Identifier: MIT
package format

import "unsafe"

type argKind uint8

const (
	kindNone argKind = iota
	kindInt
	kindUint
	kindString
	kindBytes
)

// Arg is one argument slot. Integer values are widened to 64 bits when the
// slot is built; the directive that consumes the slot decides how many of
// those bits are read.
type Arg struct {
	kind argKind
	bits uint64
	str  string
	raw  []byte
}

// Integer slot constructors.
func Int(v int) Arg         { return Arg{kind: kindInt, bits: uint64(int64(v))} }
func Int32(v int32) Arg     { return Arg{kind: kindInt, bits: uint64(int64(v))} }
func Int64(v int64) Arg     { return Arg{kind: kindInt, bits: uint64(v)} }
func Uint(v uint) Arg       { return Arg{kind: kindUint, bits: uint64(v)} }
func Uint32(v uint32) Arg   { return Arg{kind: kindUint, bits: uint64(v)} }
func Uint64(v uint64) Arg   { return Arg{kind: kindUint, bits: v} }
func Uintptr(v uintptr) Arg { return Arg{kind: kindUint, bits: uint64(v)} }

// Pointer records the address of p. The pointee is not kept alive.
func Pointer(p unsafe.Pointer) Arg { return Arg{kind: kindUint, bits: uint64(uintptr(p))} }

// Str is a string argument for %s. Output stops at an embedded NUL.
func Str(s string) Arg { return Arg{kind: kindString, str: s} }

// Bytes is a NUL-terminated byte buffer argument for %s.
func Bytes(b []byte) Arg { return Arg{kind: kindBytes, raw: b} }

// word32 reads the low 32 bits.
func (a Arg) word32() uint32 { return uint32(a.bits) }

// word reads a pointer-sized unsigned value.
func (a Arg) word() uint64 { return uint64(uintptr(a.bits)) }

// int32 reads the low 32 bits as a signed value.
func (a Arg) int32() int64 { return int64(int32(a.bits)) }

// intptr reads a pointer-sized signed value.
func (a Arg) intptr() int64 { return int64(int(a.bits)) }

func (a Arg) int64() int64 { return int64(a.bits) }

// text returns the byte at i of a string argument and whether it exists.
// Non-string slots behave like a null string and have no bytes.
func (a Arg) text(i int) (byte, bool) {
	var c byte
	switch a.kind {
	case kindString:
		if i >= len(a.str) {
			return 0, false
		}
		c = a.str[i]
	case kindBytes:
		if i >= len(a.raw) {
			return 0, false
		}
		c = a.raw[i]
	default:
		return 0, false
	}
	return c, c != 0
}

// ArgList is an append-only sequence of argument slots consumed strictly
// from left to right. Reading past the last slot yields zero values; the
// formatter does not check that the pattern and the arguments agree, but
// Exhausted reports afterwards whether any read ran off the end.
type ArgList struct {
	slots  []Arg
	pos    int
	missed int
}

// NewArgList returns a list holding args.
func NewArgList(args ...Arg) *ArgList {
	return &ArgList{slots: args}
}

// Append adds slots to the end of the list.
func (l *ArgList) Append(args ...Arg) *ArgList {
	l.slots = append(l.slots, args...)
	return l
}

// Len returns the number of slots.
func (l *ArgList) Len() int { return len(l.slots) }

// Remaining returns the number of slots not yet consumed.
func (l *ArgList) Remaining() int { return len(l.slots) - l.pos }

// Exhausted reports whether a read was attempted past the last slot.
func (l *ArgList) Exhausted() bool { return l.missed > 0 }

// Rewind moves the read position back to the first slot.
func (l *ArgList) Rewind() {
	l.pos = 0
	l.missed = 0
}

func (l *ArgList) next() Arg {
	if l.pos >= len(l.slots) {
		l.missed++
		return Arg{}
	}
	a := l.slots[l.pos]
	l.pos++
	return a
}
