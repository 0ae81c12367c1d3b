package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	t.Setenv("SYMFIND_CONFIG", t.TempDir())
	t.Setenv("SYMFIND_DEBUG_FILE_DIRECTORIES", "")
	t.Setenv("SYMFIND_LOG_LEVEL", "")

	root := &cobra.Command{
		Use:           "symfind",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	RegisterCommands(root)
	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLocateByHexID(t *testing.T) {
	root := newTestRoot(t)

	dbgDir := t.TempDir()
	want := filepath.Join(dbgDir, ".build-id", "ab", "cdef.debug")
	require.NoError(t, os.MkdirAll(filepath.Dir(want), 0o755))
	require.NoError(t, os.WriteFile(want, []byte("debug"), 0o644))

	out, err := execute(t, root, "locate", "abcdef", "--debug-file-directory", dbgDir)
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
}

func TestLocateNotFound(t *testing.T) {
	root := newTestRoot(t)

	_, err := execute(t, root, "locate", "abcdef", "--debug-file-directory", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no debug info found")
}

func TestLocateBadArgument(t *testing.T) {
	root := newTestRoot(t)

	_, err := execute(t, root, "locate", "not-hex-and-not-a-file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither an existing file nor a hex build ID")
}

func TestIDCommandNoBuildID(t *testing.T) {
	root := newTestRoot(t)

	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := execute(t, root, "id", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no build ID found")
}
