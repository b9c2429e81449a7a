package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mssjo/katelistings-go/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "katelistings %s\n", versionString())
			fmt.Fprintf(cmd.OutOrStdout(), "  revision:   %s\n", version.Revision)
			fmt.Fprintf(cmd.OutOrStdout(), "  branch:     %s\n", orUnknown(version.Branch))
			fmt.Fprintf(cmd.OutOrStdout(), "  built by:   %s\n", orUnknown(version.BuildUser))
			fmt.Fprintf(cmd.OutOrStdout(), "  built on:   %s\n", orUnknown(version.BuildDate))
			fmt.Fprintf(cmd.OutOrStdout(), "  go version: %s\n", version.GoVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "  platform:   %s/%s\n", version.GoOS, version.GoArch)

			return nil
		},
	}
}

// versionString is what rootCmd.Version is set to, so "katelistings
// --version" and "katelistings version" agree on the headline.
func versionString() string {
	if version.Version != "" {
		return version.Version
	}

	return "(devel)"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
