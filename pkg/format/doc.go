// SPDX-License-Identifier: MIT
/*
Package format renders printf-style patterns into a caller-supplied byte
buffer without allocating and without writing outside the buffer.

The last byte of the buffer is reserved for a NUL terminator. Output that
does not fit is dropped; the result is always terminated and Format
returns the number of bytes written before the terminator. Appendf is
the one exception to the no-allocation rule: it grows dst when dst has too
little spare capacity.

Directives have the form

	%[+| ][-][0][width][l|ll|L|z|t]verb

with the flags in exactly that order. Supported verbs:

	s     string (Str or Bytes argument), copied up to its NUL
	d i   signed decimal, negative values prefixed with '-'
	u     unsigned decimal
	x     unsigned hexadecimal, lower case digits
	p     pointer: "0X" followed by upper case hex digits

Without a length modifier d, i, u and x read 32 bits of their argument;
l, z and t read a pointer-sized value; ll and L read 64 bits. %p always
reads a pointer-sized value.

Width and fill:

  - fill is ' ' unless the 0 flag is given
  - x and p without a width are zero-filled; x defaults to a
    width of 2, p to 8, 12 or 16 digits depending on the magnitude
  - the width of %p excludes the "0X" marker
  - fields are right aligned unless the - flag is given

Any other printable character after '%' is echoed together with the '%'
(so "%%" prints "%%"). Literal bytes outside printable ASCII, other than
'\n', '\r' and '\t', are dropped. A pattern that ends in the middle of a
directive stops the output at that point.

Usage:

	var buf [32]byte
	n := format.Format(buf[:], "%5d|%-4s|%08x", format.Int(-42), format.Str("ab"), format.Uint(255))
	// buf[:n] == "  -42|ab  |000000ff"
*/
package format
