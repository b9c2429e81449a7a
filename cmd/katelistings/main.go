// Command katelistings converts source code into syntax-highlighted LaTeX
// (or a truecolor terminal preview), driven by Kate syntax-highlighting XML
// definitions and a JSON default-style palette.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mssjo/katelistings-go/log"
	"github.com/mssjo/katelistings-go/profiler"
)

func main() {
	os.Exit(run0())
}

func run0() int {
	cfg := NewConfig()
	logCfg := log.NewConfig()
	prof := profiler.New()

	rootCmd := &cobra.Command{
		Use:   "katelistings [flags] [file]",
		Short: "Render a syntax-highlighted LaTeX listing from source code",
		Long: `katelistings highlights source code using Kate syntax-highlighting XML
definitions and a JSON default-style palette, emitting LaTeX markup (or a
truecolor terminal rendering) suitable for typesetting a code listing.

With no file argument, input is read from stdin.`,
		Version:       versionString(),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, logCfg, &prof, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	prof.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newLanguagesCommand(cfg))
	rootCmd.AddCommand(newPreviewCommand(cfg))
	rootCmd.AddCommand(newVersionCommand())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return 1
	}

	return 0
}
