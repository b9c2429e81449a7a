package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/mssjo/katelistings-go/katedef"
	"github.com/mssjo/katelistings-go/preview"
)

func newPreviewCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Open an interactive pager over a highlighting job",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPreview(cfg, args)
		},
	}
}

func runPreview(cfg *Config, args []string) error {
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
		return err
	}

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	model, err := preview.NewModel(in, lang)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model)

	_, err = p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)

		return err
	}

	return nil
}
