// SPDX-License-Identifier: MIT
package format

import (
	"bytes"
	"math"
	"math/bits"
	"math/rand/v2"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render1(capacity int, pattern string, args ...Arg) (string, int) {
	buf := make([]byte, capacity)
	n := Format(buf, pattern, args...)
	return string(buf[:n]), n
}

func TestFormatScenarios(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pattern  string
		args     []Arg
		want     string
	}{
		{"right aligned negative", 16, "%5d", []Arg{Int(-42)}, "  -42"},
		{"literal truncated", 8, "hello world", nil, "hello w"},
		{"zero filled hex", 32, "%08x", []Arg{Uint(255)}, "000000ff"},
		{"left aligned string", 16, "%-5s|", []Arg{Str("ab")}, "ab   |"},
		{"several directives", 32, "%s=%d;", []Arg{Str("k"), Int(10)}, "k=10;"},
		{"left aligned number", 16, "%-5d|", []Arg{Int(-42)}, "-42  |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := render1(tt.capacity, tt.pattern, tt.args...)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), n)
		})
	}
}

func TestFormatIntegers(t *testing.T) {
	tests := []struct {
		pattern string
		arg     Arg
		want    string
	}{
		{"%d", Int(0), "0"},
		{"%d", Int(123), "123"},
		{"%i", Int(-7), "-7"},
		{"%+d", Int(7), "+7"},
		{"% d", Int(7), " 7"},
		{"%+d", Int(0), "+0"},
		{"%+d", Int(-3), "-3"},
		{"%d", Int32(math.MinInt32), "-2147483648"},
		{"%d", Int32(math.MaxInt32), "2147483647"},
		{"%lld", Int64(math.MinInt64), "-9223372036854775808"},
		{"%Ld", Int64(math.MaxInt64), "9223372036854775807"},
		{"%lli", Int64(-1), "-1"},
		{"%ld", Int64(-5), "-5"},
		{"%d", Uint32(math.MaxUint32), "-1"}, // 32-bit read is signed
		{"%d", Int64(1 << 32), "0"},          // only the low 32 bits
		{"%u", Int(-1), "4294967295"},        // low 32 bits, unsigned
		{"%u", Uint32(math.MaxUint32), "4294967295"},
		{"%llu", Uint64(math.MaxUint64), "18446744073709551615"},
		{"%x", Uint(5), "05"},
		{"%x", Uint(0), "00"},
		{"%0x", Uint(10), "0a"},
		{"%x", Uint(0xBEEF), "beef"},
		{"%llx", Uint64(0xDEADBEEFCAFEBABE), "deadbeefcafebabe"},
		{"%x", Uint64(0x100000000), "00"},
		{"%+x", Uint(255), "+ff"},
		{"%6x", Uint(255), "    ff"},
		{"%5u", Uint(42), "   42"},
		{"%03d", Int(7), "007"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"→"+tt.want, func(t *testing.T) {
			got, _ := render1(64, tt.pattern, tt.arg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPointerWidth(t *testing.T) {
	tests := []struct {
		name  string
		size  int // minimum pointer size in bits, 0 for any
		pat   string
		value uint64
		want  string
	}{
		{"null", 0, "%p", 0, "0X00000000"},
		{"fits 32 bits", 0, "%p", 0x1000, "0X00001000"},
		{"max 32 bits", 0, "%p", 0xFFFFFFFF, "0XFFFFFFFF"},
		{"48-bit address", 64, "%p", 0x123456789A, "0X00123456789A"},
		{"full width", 64, "%p", 0xFFFFFFFFFFFF0000, "0XFFFFFFFFFFFF0000"},
		{"explicit width excludes marker", 0, "%12p", 0xABC, "0X       ABC"},
		{"explicit zero width", 0, "%010p", 0xABC, "0X00000ABC"},
		{"width below marker", 0, "%1p", 0xABC, "0X00000ABC"},
		{"left aligned", 0, "%-8p|", 0xABC, "0XABC   |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.size > bits.UintSize {
				t.Skipf("needs %d-bit pointers", tt.size)
			}
			got, _ := render1(64, tt.pat, Uintptr(uintptr(tt.value)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPointerArg(t *testing.T) {
	var v int
	p := unsafe.Pointer(&v)

	got, _ := render1(64, "%p", Pointer(p))
	want, _ := render1(64, "%p", Uintptr(uintptr(p)))
	assert.Equal(t, want, got)
	assert.True(t, strings.HasPrefix(got, "0X"))
}

func TestFormatStrings(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pattern  string
		arg      Arg
		want     string
	}{
		{"plain", 32, "[%s]", Str("hello"), "[hello]"},
		{"empty", 32, "[%s]", Str(""), "[]"},
		{"embedded nul", 32, "[%s]", Str("a\x00b"), "[a]"},
		{"bytes", 32, "[%s]", Bytes([]byte{'x', 'y', 0, 'z'}), "[xy]"},
		{"unterminated bytes", 32, "[%s]", Bytes([]byte("xyz")), "[xyz]"},
		{"nil bytes", 32, "[%s]", Bytes(nil), "[]"},
		{"number as string", 32, "[%s]", Int(5), "[]"},
		{"padded number as string", 32, "[%3s]", Int(5), "[   ]"},
		{"right aligned", 32, "[%6s]", Str("ab"), "[    ab]"},
		{"wider than width", 32, "[%2s]", Str("abcd"), "[abcd]"},
		{"truncated", 4, "%s", Str("hello"), "hel"},
		{"non printable kept", 32, "%s", Str("a\x01b"), "a\x01b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := render1(tt.capacity, tt.pattern, tt.arg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLiterals(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"percent percent", "100%%", "100%%"},
		{"unknown verb", "%q", "%q"},
		{"padded unknown verb", "%5q", "   %q"},
		{"unknown verb after flags", "%-4w|", "%w  |"},
		{"upper case x is not a verb", "%X", "%X"},
		{"upper case x after length", "%llX", "%X"},
		{"padded upper case x", "%-6X|", "%X    |"},
		{"control bytes dropped", "a\x01b\x7fc", "abc"},
		{"whitespace kept", "a\tb\r\nc", "a\tb\r\nc"},
		{"non ascii dropped", "caf\xc3\xa9", "caf"},
		{"embedded nul ends pattern", "ab\x00cd", "ab"},
		{"flags out of order", "%0-5d", "%-5d"},
		{"control verb dropped", "[%\x01]", "[]"},
		{"padded control verb", "[%3\x01]", "[   ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := render1(64, tt.pattern)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatUpperHexConsumesNothing(t *testing.T) {
	got, _ := render1(32, "%X|%u|%x", Uint(255), Uint(0xAB))
	assert.Equal(t, "%X|255|ab", got)
}

func TestFormatUnterminatedDirective(t *testing.T) {
	patterns := []string{
		"abc%", "abc%+", "abc% ", "abc%-", "abc%0", "abc%5", "abc%12",
		"abc%l", "abc%ll", "abc%z", "abc%t", "abc%L", "abc%+-08ll",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			args := NewArgList(Int(1))
			buf := bytes.Repeat([]byte{'#'}, 32)
			n := FormatList(buf, pattern, args)
			assert.Equal(t, 3, n)
			assert.Equal(t, "abc", string(buf[:n]))
			assert.Equal(t, byte(0), buf[n])
			assert.Equal(t, 1, args.Remaining(), "no argument consumed")
		})
	}
}

func TestFormatQuirks(t *testing.T) {
	// Zero fill is placed in front of the sign.
	got, _ := render1(32, "%05d", Int(-42))
	assert.Equal(t, "00-42", got)

	// Left alignment appends the fill character, even '0'.
	got, _ = render1(32, "%-05d", Int(42))
	assert.Equal(t, "42000", got)

	// Right alignment is skipped when the padded field reaches the end.
	got, _ = render1(6, "%5d", Int(42))
	assert.Equal(t, "42   ", got)
	got, _ = render1(7, "%5d", Int(42))
	assert.Equal(t, "   42", got)

	// Digits are emitted least significant first, so truncation keeps the
	// low-order digits.
	got, _ = render1(4, "%d", Int(12345))
	assert.Equal(t, "345", got)

	// An absurd width pads to the end of the buffer.
	got, n := render1(16, "%99999999999999999999d", Int(1))
	assert.Equal(t, 15, n)
	assert.Equal(t, "1"+strings.Repeat(" ", 14), got)
}

func TestFormatCapacity(t *testing.T) {
	assert.Zero(t, Format(nil, "hello"))
	assert.Zero(t, Format([]byte{}, "hello"))

	buf := []byte{'#'}
	assert.Zero(t, Format(buf, "hello"))
	assert.Equal(t, byte(0), buf[0])

	buf = []byte{'#', '#', '#'}
	assert.Zero(t, Format(buf, ""))
	assert.Equal(t, []byte{0, '#', 0}, buf)

	buf = make([]byte, 8)
	n := Format(buf, "hello world")
	assert.Equal(t, 7, n)
	assert.Equal(t, "hello w\x00", string(buf))
}

func TestArgListConsumption(t *testing.T) {
	args := NewArgList(Int(1))
	args.Append(Str("two"), Uint(3))

	buf := make([]byte, 32)
	n := FormatList(buf, "%d %s", args)
	assert.Equal(t, "1 two", string(buf[:n]))
	assert.Equal(t, 1, args.Remaining())
	assert.False(t, args.Exhausted())

	n = FormatList(buf, "%u %u", args)
	assert.Equal(t, "3 0", string(buf[:n]))
	assert.True(t, args.Exhausted())

	args.Rewind()
	assert.Equal(t, 3, args.Remaining())
	assert.False(t, args.Exhausted())
	assert.Equal(t, 3, args.Len())

	n = FormatList(buf, "%d", nil)
	assert.Equal(t, "0", string(buf[:n]))
}

// Every capacity and pattern must stay inside the slice and leave a
// terminator at the returned count.
func TestFormatNeverWritesOutside(t *testing.T) {
	const guard = 8
	rng := rand.New(rand.NewPCG(9, 9))
	alphabet := []byte("%%%+- 0123456789lLztsdiuxXpq!ab\n\t\x01")

	for range 5000 {
		plen := rng.IntN(24)
		pattern := make([]byte, plen)
		for i := range pattern {
			pattern[i] = alphabet[rng.IntN(len(alphabet))]
		}
		args := []Arg{Int(-42), Str("text"), Uint64(rng.Uint64()), Int64(math.MinInt64), Uint(0)}

		capacity := rng.IntN(20)
		backing := bytes.Repeat([]byte{0xAA}, capacity+2*guard)
		buf := backing[guard : guard+capacity : guard+capacity]

		n := Format(buf, string(pattern), args...)

		require.True(t, bytes.Equal(backing[:guard], bytes.Repeat([]byte{0xAA}, guard)), "prefix guard overwritten")
		require.True(t, bytes.Equal(backing[guard+capacity:], bytes.Repeat([]byte{0xAA}, guard)), "suffix guard overwritten")
		if capacity == 0 {
			require.Zero(t, n)
			continue
		}
		require.GreaterOrEqual(t, n, 0)
		require.LessOrEqual(t, n, capacity-1)
		require.Equal(t, byte(0), buf[n], "pattern %q capacity %d", pattern, capacity)
		require.Equal(t, byte(0), buf[capacity-1])
	}
}

func TestPutNumberBaseFallback(t *testing.T) {
	tests := []struct {
		base   uint64
		x      uint64
		prefix byte
		want   string
	}{
		{0, 12345, 0, "0"},
		{1, 12345, 0, "0"},
		{17, 12345, '-', "-0"},
		{10, 0, '+', "+0"},
		{2, 5, 0, "101"},
		{8, 64, 0, "100"},
		{16, 0xFACE, '-', "-face"},
		{10, math.MaxUint64, 0, "18446744073709551615"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			buf := make([]byte, 32)
			c := cursor{buf: buf, end: len(buf)}
			c.putNumber(tt.x, tt.base, tt.prefix, false)
			assert.Equal(t, tt.want, string(buf[:c.pos]))
		})
	}
}

func TestPadRotatesField(t *testing.T) {
	buf := make([]byte, 16)
	c := cursor{buf: buf, end: len(buf) - 1}
	c.putString("ab")
	c.pad(0, 2, 3, '.', true)
	assert.Equal(t, "...ab", string(buf[:c.pos]))

	c = cursor{buf: buf, end: len(buf) - 1}
	c.putString("ab")
	c.pad(0, 2, 3, '.', false)
	assert.Equal(t, "ab...", string(buf[:c.pos]))
}

func TestAppendf(t *testing.T) {
	out := Appendf([]byte("x="), 16, "%d", Int(5))
	assert.Equal(t, "x=5", string(out))

	out = Appendf(nil, 4, "%s", Str("truncate"))
	assert.Equal(t, "tru", string(out))

	out = Appendf([]byte("keep"), 0, "%s", Str("dropped"))
	assert.Equal(t, "keep", string(out))
}

func TestAppendfReusesSpareCapacity(t *testing.T) {
	dst := make([]byte, 0, 32)

	allocs := testing.AllocsPerRun(100, func() {
		dst = Appendf(dst[:0], 32, "%s=%d", Str("n"), Int(-7))
	})

	if allocs > 0 {
		t.Errorf("Expected zero allocations in Appendf with spare capacity, got %.1f", allocs)
	}
	assert.Equal(t, "n=-7", string(dst))
}

func TestFormatZeroAllocs(t *testing.T) {
	buf := make([]byte, 64)

	allocs := testing.AllocsPerRun(100, func() {
		Format(buf, "%5d|%-4s|%08x|%p|%llu", Int(-42), Str("ab"), Uint(255), Uintptr(0x1000), Uint64(math.MaxUint64))
	})

	if allocs > 0 {
		t.Errorf("Expected zero allocations in Format, got %.1f", allocs)
	}
}

func BenchmarkFormat(b *testing.B) {
	buf := make([]byte, 128)
	b.ReportAllocs()
	for b.Loop() {
		Format(buf, "%s: %5d items at %p (%08x)", Str("cache"), Int(1234), Uintptr(0xC0001230), Uint(0xBEEF))
	}
}
