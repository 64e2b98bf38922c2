// SPDX-License-Identifier: MIT
package cmd

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unsafe"

	"github.com/spf13/cobra"

	applog "lumin/internal/log"
	"lumin/internal/platform"
	"lumin/pkg/align"
	"lumin/pkg/bitint"
	"lumin/pkg/format"
	"lumin/pkg/ptrcodec"
)

func newFormatCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format PATTERN [ARG...]",
		Short: "Render a printf-style pattern",
		Long: `Render PATTERN with the bounded formatter.

Arguments that parse as integers (decimal, 0x hex, 0o octal, 0b binary) are
passed as 64-bit numbers; anything else is passed as a string. Prefix an
argument with "s:" to force a string.

Flags must come before PATTERN; everything after it is an argument, so
negative numbers need no escaping.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := format.NewArgList()
			for _, s := range args[1:] {
				list.Append(parseFormatArg(s))
			}
			if err := a.out.printList(args[0], list); err != nil {
				return err
			}
			if list.Exhausted() {
				applog.Warnf("format: pattern reads more than the %d argument(s) given; missing ones rendered as zero", list.Len())
			}
			if n := list.Remaining(); n > 0 {
				applog.Debugf("format: %d argument(s) unused", n)
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func parseFormatArg(s string) format.Arg {
	if rest, ok := strings.CutPrefix(s, "s:"); ok {
		return format.Str(rest)
	}
	if strings.HasPrefix(s, "-") {
		if v, err := strconv.ParseInt(s, 0, 64); err == nil {
			return format.Int64(v)
		}
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return format.Uint64(v)
	}
	return format.Str(s)
}

func newPopCountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "popcount N...",
		Short: "Count set bits in 32- and 64-bit words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range args {
				x, err := parseUint(s, 64)
				if err != nil {
					return err
				}
				if err := a.out.printf("%llu popcount32=%u popcount64=%u",
					format.Uint64(x),
					format.Int(bitint.PopCount32(uint32(x))),
					format.Int(bitint.PopCount64(x)),
				); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newAlignCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "align SIZE ALIGNMENT",
		Short: "Round SIZE up and down to a multiple of ALIGNMENT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := parseUint(args[0], 64)
			if err != nil {
				return err
			}
			alignment, err := parseUint(args[1], 64)
			if err != nil {
				return err
			}
			if alignment == 0 {
				return errors.New("align: alignment must be non-zero")
			}

			path := "div"
			if align.IsPowerOfTwo(alignment) {
				path = "mask"
			}
			return a.out.printf("size=%llu alignment=%llu up=%llu down=%llu blocks=%llu next_pow2=%llu path=%s",
				format.Uint64(size),
				format.Uint64(alignment),
				format.Uint64(align.AlignUp(size, alignment)),
				format.Uint64(align.AlignDown(size, alignment)),
				format.Uint64(align.DivCeil(size, alignment)),
				format.Uint64(bitint.NextPowerOfTwo(size)),
				format.Str(path),
			)
		},
	}
}

type keyFlags struct {
	key1, key2 string
}

func (f *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key1, "key1", "", "First key (default from configuration)")
	cmd.Flags().StringVar(&f.key2, "key2", "", "Second key (default from configuration)")
}

func (f *keyFlags) resolve(defaults ptrcodec.Keys) (ptrcodec.Keys, error) {
	keys := defaults
	if f.key1 != "" {
		k, err := parseUint(f.key1, bits.UintSize)
		if err != nil {
			return keys, err
		}
		keys.K1 = uintptr(k)
	}
	if f.key2 != "" {
		k, err := parseUint(f.key2, bits.UintSize)
		if err != nil {
			return keys, err
		}
		keys.K2 = uintptr(k)
	}
	return keys, nil
}

func newEncodeCommand(a *app) *cobra.Command {
	var flags keyFlags
	cmd := &cobra.Command{
		Use:   "encode ADDR",
		Short: "Obfuscate an address with the pointer keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := flags.resolve(a.cfg.Keys())
			if err != nil {
				return err
			}
			addr, err := parseUint(args[0], bits.UintSize)
			if err != nil {
				return err
			}
			return a.out.printf("token=%p", format.Uintptr(keys.Encode(uintptr(addr))))
		},
	}
	flags.register(cmd)
	return cmd
}

func newDecodeCommand(a *app) *cobra.Command {
	var flags keyFlags
	cmd := &cobra.Command{
		Use:   "decode TOKEN",
		Short: "Recover an address from a token",
		Long: `Recover an address from a token produced by encode.

A zero token decodes to key1^key2, not to zero: encode maps the null address
to the zero token but decode has no way to tell it apart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := flags.resolve(a.cfg.Keys())
			if err != nil {
				return err
			}
			token, err := parseUint(args[0], bits.UintSize)
			if err != nil {
				return err
			}
			if token == 0 {
				applog.Debugf("decode: zero token does not decode to the null address")
			}
			return a.out.printf("addr=%p", format.Uintptr(keys.Decode(uintptr(token))))
		},
	}
	flags.register(cmd)
	return cmd
}

func newEnvCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "env NAME",
		Short: "Print an environment variable through the bounded lookup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf := make([]byte, max(a.cfg.Format.Capacity, platform.MinEnvBuffer))
			n, ok := a.caps.Env.Get(args[0], buf)
			if !ok {
				return fmt.Errorf("env: %s is not set", args[0])
			}
			return a.out.printf("%s=%s", format.Str(args[0]), format.Bytes(buf[:n]))
		},
	}
}

func newAllocCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "alloc SIZE [ALIGNMENT]",
		Short: "Allocate and release an aligned block",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := parseUint(args[0], bits.UintSize)
			if err != nil {
				return err
			}
			alignment := a.cfg.Alloc.Alignment
			if len(args) == 2 {
				if alignment, err = parseUint(args[1], bits.UintSize); err != nil {
					return err
				}
			}

			block, err := a.caps.Allocator.AllocateAligned(uintptr(size), uintptr(alignment))
			if err != nil {
				return fmt.Errorf("alloc: %w", err)
			}
			defer func() {
				if err := a.caps.Allocator.FreeAligned(block); err != nil {
					applog.Errorf("alloc: release failed: %v", err)
				}
			}()

			addr := uintptr(unsafe.Pointer(&block[0]))
			zeroed := align.IsZero(block)

			// Exercise the block end to end through the copy provider.
			pattern := []byte("lumin")
			for off := 0; off < len(block); off += len(pattern) {
				a.caps.Copier.Copy(block[off:], pattern, len(pattern))
			}

			return a.out.printf("provider=%s size=%zu alignment=%zu addr=%p aligned=%s zeroed=%s words=%zu",
				format.Str(a.caps.AllocatorName),
				format.Uintptr(uintptr(size)),
				format.Uintptr(uintptr(alignment)),
				format.Uintptr(addr),
				format.Str(yesNo(align.IsAligned(addr, uintptr(alignment)))),
				format.Str(yesNo(zeroed)),
				format.Uintptr(align.WordSize(uintptr(size))),
			)
		},
	}
}

func parseUint(s string, bitSize int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
