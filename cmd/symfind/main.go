// Package main provides the symfind binary.
//
// symfind extracts build IDs from compiled binaries and locates the
// matching external debug-info files on disk, for use by debuggers,
// crash symbolizers and profilers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/symfind/symfind/internal/cli"
	"github.com/symfind/symfind/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "symfind",
		Short:         "symfind - locate split debug info by build ID",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.RegisterCommands(rootCmd)
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("symfind version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}
