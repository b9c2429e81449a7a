package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Mode selects an output backend for the root command.
type Mode string

const (
	ModeInline  Mode = "inline"
	ModeCommand Mode = "command"
	ModeANSI    Mode = "ansi"
)

func allModeStrings() []string {
	return []string{string(ModeInline), string(ModeCommand), string(ModeANSI)}
}

var (
	ErrInvalidOption       = errors.New("invalid option")
	ErrLanguageNotDetected = errors.New("language not detected")
	ErrReadInput           = errors.New("read input")
	ErrWriteOutput         = errors.New("write output")
)

// Flags holds CLI flag names for a highlighting job, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	Language  string
	LangDir   string
	Output    string
	Style     string
	StyleName string
	Mode      string
}

// Config holds CLI flag values for a highlighting job.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags     Flags
	Language  string
	LangDirs  []string
	Output    string
	Style     string
	StyleName string
	Mode      string
}

// NewConfig returns a new [Config] with default flag names and values.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Language:  "language",
			LangDir:   "lang-dir",
			Output:    "output",
			Style:     "style",
			StyleName: "style-name",
			Mode:      "mode",
		},
		Output:    "-",
		StyleName: bundledStyleName,
		Mode:      string(ModeInline),
	}
}

// RegisterFlags adds highlighting-job flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Language, c.Flags.Language, "l", "",
		"language name (default: inferred from the input file's extension)")
	flags.StringArrayVar(&c.LangDirs, c.Flags.LangDir, nil,
		"additional directory to search for language definitions (repeatable)")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", c.Output,
		"output file path (- for stdout)")
	flags.StringVar(&c.Style, c.Flags.Style, "",
		"default-style palette JSON path (overrides --style-name)")
	flags.StringVar(&c.StyleName, c.Flags.StyleName, c.StyleName,
		"bundled default-style palette name, used when --style is not given")
	flags.StringVar(&c.Mode, c.Flags.Mode, c.Mode,
		fmt.Sprintf("output mode, one of: %v", allModeStrings()))
}

// RegisterCompletions registers shell completions for highlighting-job
// flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Mode,
		cobra.FixedCompletions(allModeStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Mode, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.StyleName,
		cobra.FixedCompletions([]string{bundledStyleName}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.StyleName, err)
	}

	return nil
}

// parseMode validates s against the known output modes.
func parseMode(s string) (Mode, error) {
	m := Mode(s)

	switch m {
	case ModeInline, ModeCommand, ModeANSI:
		return m, nil
	}

	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidOption, s)
}
