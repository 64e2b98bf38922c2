// SPDX-License-Identifier: MIT
package format

const (
	digitsUpper = "0123456789ABCDEF"
	digitsLower = "0123456789abcdef"
)

// cursor writes into buf[:end]. Writes at or beyond end are dropped, which
// is how every truncation in this package happens.
type cursor struct {
	buf []byte
	pos int
	end int
}

func (c *cursor) full() bool { return c.pos >= c.end }

func (c *cursor) putByte(b byte) {
	if c.pos >= c.end {
		return
	}
	c.buf[c.pos] = b
	c.pos++
}

func (c *cursor) putString(s string) {
	for i := 0; i < len(s) && s[i] != 0 && c.pos < c.end; i++ {
		c.buf[c.pos] = s[i]
		c.pos++
	}
}

// putText copies a %s argument.
func (c *cursor) putText(a Arg) {
	for i := 0; c.pos < c.end; i++ {
		ch, ok := a.text(i)
		if !ok {
			return
		}
		c.buf[c.pos] = ch
		c.pos++
	}
}

func (c *cursor) putFill(fill byte, n int) {
	for ; n > 0 && c.pos < c.end; n-- {
		c.buf[c.pos] = fill
		c.pos++
	}
}

// putNumber renders x in base. Digits are emitted least significant first,
// followed by prefix, and the whole span is then reversed so it reads
// prefix first. Zero and bases outside 2..16 render as prefix and "0".
func (c *cursor) putNumber(x uint64, base uint64, prefix byte, upper bool) {
	if x == 0 || base < 2 || base > 16 {
		if prefix != 0 {
			c.putByte(prefix)
		}
		c.putByte('0')
		return
	}

	digits := digitsLower
	if upper {
		digits = digitsUpper
	}

	start := c.pos
	for num := x; num != 0; num /= base {
		c.putByte(digits[num%base])
	}
	if prefix != 0 {
		c.putByte(prefix)
	}
	reverse(c.buf[start:c.pos])
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// pad widens the field buf[start:start+n] by extra fill bytes. The fill is
// always appended first; for right alignment the field is then moved to
// the end and the fill rotated to the front. Right alignment is skipped
// when the widened field would reach the end of the output.
func (c *cursor) pad(start, n, extra int, fill byte, right bool) {
	c.putFill(fill, extra)
	if right {
		c.alignRight(start, n, extra, fill)
	}
}

func (c *cursor) alignRight(start, n, extra int, fill byte) {
	if n == 0 || extra == 0 {
		return
	}
	if start+n+extra >= c.end {
		return
	}
	for i := 1; i <= n; i++ {
		c.buf[start+n+extra-i] = c.buf[start+n-i]
	}
	for i := range extra {
		c.buf[start+i] = fill
	}
}
