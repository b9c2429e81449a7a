package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mssjo/katelistings-go/katedef"
)

func newLanguagesCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List known language definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(cmd, cfg)
		},
	}
}

func runLanguages(cmd *cobra.Command, cfg *Config) error {
	dirs, cleanup, err := resolveLangDirs(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	infos, err := katedef.ListLanguages(dirs)
	if err != nil {
		return err
	}

	for _, info := range infos {
		exts := "(no declared extensions)"
		if len(info.Extensions) > 0 {
			exts = strings.Join(info.Extensions, ", ")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", info.Name, exts)
	}

	return nil
}
