// SPDX-License-Identifier: MIT
package format

import (
	"math"
	"math/bits"
	"slices"
)

// Length modifiers.
const (
	lenNone byte = 0
	lenLong byte = 'l'
	lenLL   byte = 'L'
	lenSize byte = 'z'
	lenDiff byte = 't'
)

// maxWidth caps parsed widths. Any width past the buffer size pads the
// same way, so the cap only guards the arithmetic.
const maxWidth = 1 << 30

// directive is one parsed %-conversion.
type directive struct {
	plus   byte // '+', ' ' or 0
	left   bool
	fill   byte
	width  int
	length byte
	verb   byte
}

type scanner struct {
	s string
	i int
}

// next returns the next pattern byte; the end of the string and a NUL
// both end the pattern.
func (s *scanner) next() (byte, bool) {
	if s.i >= len(s.s) || s.s[s.i] == 0 {
		return 0, false
	}
	c := s.s[s.i]
	s.i++
	return c, true
}

// Format renders pattern into buf and returns the number of bytes written,
// not counting the terminator. An empty buf is left untouched.
func Format(buf []byte, pattern string, args ...Arg) int {
	l := ArgList{slots: args}
	return FormatList(buf, pattern, &l)
}

// FormatList is Format with an explicit argument list, which is advanced
// past every slot the pattern consumed.
func FormatList(buf []byte, pattern string, args *ArgList) int {
	if len(buf) == 0 {
		return 0
	}
	if args == nil {
		args = &ArgList{}
	}

	out := cursor{buf: buf, end: len(buf) - 1}
	buf[out.end] = 0
	in := scanner{s: pattern}

	for !out.full() {
		c, ok := in.next()
		if !ok {
			break
		}
		if c != '%' {
			if isLiteral(c) {
				out.putByte(c)
			}
			continue
		}

		d, ok := parseDirective(&in)
		if !ok {
			break
		}
		render(&out, d, args)
	}

	buf[out.pos] = 0
	return out.pos
}

// Appendf formats into the spare capacity of dst, using at most capacity
// bytes (terminator included), and returns dst extended by the result. Like
// the strconv Append functions it allocates only when dst has fewer than
// capacity bytes to spare.
func Appendf(dst []byte, capacity int, pattern string, args ...Arg) []byte {
	if capacity <= 0 {
		return dst
	}
	dst = slices.Grow(dst, capacity)
	n := Format(dst[len(dst):len(dst)+capacity], pattern, args...)
	return dst[:len(dst)+n]
}

func isLiteral(c byte) bool {
	return (c >= ' ' && c <= '~') || c == '\n' || c == '\r' || c == '\t'
}

// parseDirective consumes a directive after its '%'. Each stage is
// optional: sign flag, left-align flag, zero flag, width, length
// modifier, verb. It reports false when the pattern ends first.
func parseDirective(in *scanner) (directive, bool) {
	d := directive{fill: ' '}

	c, ok := in.next()
	if !ok {
		return d, false
	}

	if c == '+' || c == ' ' {
		d.plus = c
		if c, ok = in.next(); !ok {
			return d, false
		}
	}
	if c == '-' {
		d.left = true
		if c, ok = in.next(); !ok {
			return d, false
		}
	}
	if c == '0' {
		d.fill = '0'
		if c, ok = in.next(); !ok {
			return d, false
		}
	}

	if c >= '1' && c <= '9' {
		d.width = int(c - '0')
		for {
			if c, ok = in.next(); !ok {
				return d, false
			}
			if c < '0' || c > '9' {
				break
			}
			if d.width <= (maxWidth-9)/10 {
				d.width = d.width*10 + int(c-'0')
			} else {
				d.width = maxWidth
			}
		}
	}

	switch c {
	case 'z', 't', 'L':
		d.length = c
		if c, ok = in.next(); !ok {
			return d, false
		}
	case 'l':
		d.length = lenLong
		if c, ok = in.next(); !ok {
			return d, false
		}
		if c == 'l' {
			d.length = lenLL
			if c, ok = in.next(); !ok {
				return d, false
			}
		}
	}

	d.verb = c
	return d, true
}

// render emits one directive and pads it to its width.
func render(out *cursor, d directive, args *ArgList) {
	start := out.pos
	width, fill := d.width, d.fill

	switch d.verb {
	case 's':
		out.putText(args.next())

	case 'p', 'x', 'u':
		var x uint64
		if d.verb == 'p' {
			x = args.next().word()
			out.putString("0X")
			start = out.pos
			width = max(width-2, 0)
		} else {
			x = unsignedArg(args.next(), d.length)
		}

		if width == 0 && d.verb != 'u' {
			if d.verb == 'p' {
				width = pointerDigits(x)
			} else {
				width = 2
			}
			fill = '0'
		}

		base := uint64(16)
		if d.verb == 'u' {
			base = 10
		}
		out.putNumber(x, base, d.plus, d.verb == 'p')

	case 'd', 'i':
		v := signedArg(args.next(), d.length)
		var prefix byte
		if v < 0 {
			prefix = '-'
			// The most negative value has no positive counterpart; its bit
			// pattern already reads as the right magnitude.
			if v > math.MinInt64 {
				v = -v
			}
		} else if d.plus != 0 {
			prefix = d.plus
		}
		out.putNumber(uint64(v), 10, prefix, false)

	default:
		if d.verb >= ' ' && d.verb <= '~' {
			out.putByte('%')
			out.putByte(d.verb)
		}
	}

	if n := out.pos - start; n < width {
		out.pad(start, n, width-n, fill, !d.left)
	}
}

func unsignedArg(a Arg, length byte) uint64 {
	switch length {
	case lenLong, lenSize, lenDiff:
		return a.word()
	case lenLL:
		return a.bits
	default:
		return uint64(a.word32())
	}
}

func signedArg(a Arg, length byte) int64 {
	switch length {
	case lenLong, lenSize, lenDiff:
		return a.intptr()
	case lenLL:
		return a.int64()
	default:
		return a.int32()
	}
}

// pointerDigits is the default %p width: 8 digits for values that fit in
// 32 bits, 12 when they fit after dropping 16 bits, else a full pointer.
func pointerDigits(x uint64) int {
	switch {
	case x <= math.MaxUint32:
		return 8
	case x>>16 <= math.MaxUint32:
		return 12
	default:
		return 2 * bits.UintSize / 8
	}
}
