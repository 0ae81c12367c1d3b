package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symfind/symfind/internal/buildid"
	"github.com/symfind/symfind/internal/errors"
	"github.com/symfind/symfind/internal/object"
)

// NewIDCmd creates the "id" command, printing the build ID embedded in
// a binary.
func NewIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <binary>",
		Short: "Print the build ID embedded in a binary",
		Long: `Print the build ID embedded in a binary as lowercase hex.

For ELF binaries this is the GNU build-id note; for PE/COFF binaries it
is the CodeView PDB GUID and Age.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _, err := setup(cmd)
			if err != nil {
				return err
			}

			obj, err := object.Open(args[0])
			if err != nil {
				return err
			}
			defer errors.DeferClose(logger, obj, "closing object file")

			logger.Debug().
				Str("path", args[0]).
				Stringer("kind", obj.Kind).
				Msg("object opened")

			id := buildid.FromObject(obj)
			if id.Empty() {
				return fmt.Errorf("no build ID found in %s", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
}
