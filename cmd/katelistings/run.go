package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mssjo/katelistings-go/ansi"
	"github.com/mssjo/katelistings-go/highlighting"
	"github.com/mssjo/katelistings-go/katedef"
	"github.com/mssjo/katelistings-go/log"
	"github.com/mssjo/katelistings-go/profiler"
)

// run executes one highlighting job: resolve the language, load the
// palette and language definition, read args[0] (or stdin), and write the
// styled result to cfg.Output in cfg.Mode.
func run(cfg *Config, logCfg *log.Config, prof *profiler.Profiler, args []string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	if err := prof.Start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := prof.Stop(); stopErr != nil {
			logger.Error("stop profiler", "err", stopErr)
		}
	}()

	mode, err := parseMode(cfg.Mode)
	if err != nil {
		return err
	}

	inputPath := "-"
	if len(args) > 0 {
		inputPath = args[0]
	}

	langName := cfg.Language
	if langName == "" {
		detected, ok := katedef.LanguageForFile(inputPath)
		if !ok {
			return fmt.Errorf("%w: pass --language explicitly for %q", ErrLanguageNotDetected, inputPath)
		}

		langName = detected
	}

	langDirs, cleanup, err := resolveLangDirs(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	palette, err := loadPalette(cfg)
	if err != nil {
		return err
	}

	cache := katedef.NewCache(langDirs, palette)

	lang, err := cache.Load(langName)
	if err != nil {
		logger.Error("load language", "language", langName, "err", err)

		return err
	}

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	logger.Debug("highlighting", "language", lang.Name, "mode", mode)

	switch mode {
	case ModeANSI:
		err = lang.Highlight(in, ansi.NewEmitter(out))
	default:
		err = highlighting.WriteAlltt(out, lang, in, latexMode(mode))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func latexMode(m Mode) highlighting.Mode {
	if m == ModeCommand {
		return highlighting.ModeCommand
	}

	return highlighting.ModeInline
}

// resolveLangDirs extracts the bundled language definitions to a temp
// directory and appends cfg.LangDirs, so an explicit --lang-dir takes
// priority (directories are searched in the order katedef.Cache.find
// walks them: earlier entries shadow later ones is the caller's job, so
// user-supplied dirs go first).
func resolveLangDirs(cfg *Config) (dirs []string, cleanup func(), err error) {
	bundledDir, bundledCleanup, err := extractBundledDefs()
	if err != nil {
		return nil, nil, err
	}

	dirs = append(append([]string{}, cfg.LangDirs...), bundledDir)

	return dirs, bundledCleanup, nil
}

// loadPalette loads cfg.Style if given, otherwise the bundled palette
// named cfg.StyleName.
func loadPalette(cfg *Config) (map[string]*highlighting.Style, error) {
	if cfg.Style != "" {
		return katedef.LoadPalette(cfg.Style)
	}

	return bundledPalette(cfg.StyleName)
}

// openInput opens path for reading, or stdin if path is "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return f, nil
}

// openOutput opens path for writing (truncating), or stdout if path is "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path) //nolint:gosec // Output path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
