package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/symfind/symfind/internal/buildid"
	"github.com/symfind/symfind/internal/errors"
	"github.com/symfind/symfind/internal/object"
)

// NewLocateCmd creates the "locate" command, resolving a build ID to the
// matching .debug file on disk.
func NewLocateCmd() *cobra.Command {
	var debugFileDirs []string

	cmd := &cobra.Command{
		Use:   "locate <binary | hex-build-id>",
		Short: "Locate the external debug-info file for a binary or build ID",
		Long: `Locate the external debug-info file for a binary or build ID.

The argument is treated as a file path if such a file exists, otherwise
as a hex build ID. Candidate directories are probed in order for
<dir>/.build-id/xx/rest.debug; with no directories configured the single
platform default is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			id, err := resolveID(logger, args[0])
			if err != nil {
				return err
			}

			dirs := debugFileDirs
			if len(dirs) == 0 {
				dirs = cfg.DebugFileDirectories
			}

			fetcher := buildid.NewFetcher(dirs, logger)
			path, ok := fetcher.Fetch(id)
			if !ok {
				return fmt.Errorf("no debug info found for build ID %s", id)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&debugFileDirs, "debug-file-directory", nil,
		"Directory to search for debug files (repeatable, overrides config)")

	return cmd
}

// resolveID turns the command argument into a build ID: extracted from
// the object file when the argument names one, otherwise parsed as hex.
func resolveID(logger zerolog.Logger, arg string) (buildid.ID, error) {
	if _, statErr := os.Stat(arg); statErr == nil {
		obj, err := object.Open(arg)
		if err != nil {
			return nil, err
		}
		defer errors.DeferClose(logger, obj, "closing object file")

		id := buildid.FromObject(obj)
		if id.Empty() {
			return nil, fmt.Errorf("no build ID found in %s", arg)
		}
		return id, nil
	}

	id := buildid.Parse(arg)
	if id.Empty() {
		return nil, fmt.Errorf("%q is neither an existing file nor a hex build ID", arg)
	}
	return id, nil
}
