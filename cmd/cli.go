// SPDX-License-Identifier: MIT
package cmd

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lumin/internal/config"
	applog "lumin/internal/log"
	"lumin/internal/platform"
	"lumin/pkg/build"
	"lumin/pkg/format"
)

// app is the state shared by every subcommand once the root command has
// loaded the configuration and resolved the platform providers.
type app struct {
	configPath string
	capacity   int
	verbose    bool

	env  platform.EnvLookup // Source for configuration overrides
	cfg  *config.Config
	caps *platform.Capabilities
	out  *printer
}

// Execute runs the command line against args and returns the first error.
func Execute(args []string) error {
	root := newRootCommand(&app{env: platform.SystemEnv{}})
	root.SetArgs(args)
	return root.Execute()
}

func newRootCommand(a *app) *cobra.Command {
	info := build.Get()

	rootCmd := &cobra.Command{
		Use:           info.Name,
		Short:         info.Description,
		Version:       info.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to a YAML configuration file (default ./"+config.DefaultConfigFilename+" if present)")
	rootCmd.PersistentFlags().IntVarP(&a.capacity, "capacity", "n", config.DefaultCapacity,
		"Output buffer capacity in bytes, terminator included")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.AddCommand(
		newFormatCommand(a),
		newPopCountCommand(a),
		newAlignCommand(a),
		newEncodeCommand(a),
		newDecodeCommand(a),
		newEnvCommand(a),
		newAllocCommand(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	defer applog.Since("startup", time.Now())

	cfg, err := config.LoadConfig(a.configPath, a.env)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("capacity") {
		cfg.Format.Capacity = config.ClampCapacity(a.capacity)
		if cfg.Format.Capacity != a.capacity {
			applog.Warnf("capacity %d clamped to %d", a.capacity, cfg.Format.Capacity)
		}
	}
	cfg.Verbose = a.verbose
	applog.SetLevel(cfg.Level())

	caps, err := platform.Resolve(cfg.PlatformOptions())
	if err != nil {
		return err
	}

	a.cfg, a.caps = cfg, caps
	a.out = newPrinter(cmd.OutOrStdout(), cfg.Format.Capacity)
	return nil
}

// printer writes one formatted line per call, truncated to its capacity.
type printer struct {
	w        io.Writer
	capacity int
	line     []byte
}

func newPrinter(w io.Writer, capacity int) *printer {
	if w == nil {
		w = os.Stdout
	}
	return &printer{w: w, capacity: capacity, line: make([]byte, 0, capacity+1)}
}

func (p *printer) printf(pattern string, args ...format.Arg) error {
	p.line = format.Appendf(p.line[:0], p.capacity, pattern, args...)
	p.line = append(p.line, '\n')
	_, err := p.w.Write(p.line)
	return err
}

// printList formats with an explicit list so the caller can inspect how
// many arguments the pattern consumed.
func (p *printer) printList(pattern string, args *format.ArgList) error {
	buf := p.line[:p.capacity]
	n := format.FormatList(buf, pattern, args)
	p.line = append(buf[:n], '\n')
	_, err := p.w.Write(p.line)
	return err
}
