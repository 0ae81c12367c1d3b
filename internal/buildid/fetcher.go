package buildid

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Fetcher locates the external debug-info file for a build ID by probing
// the conventional on-disk layout
//
//	<dir>/.build-id/<hex(id[0])>/<hex(id[1:])>.debug
//
// under each of its search directories. The first byte shards files into
// 256 subdirectories so repositories with many build IDs keep directory
// sizes bounded; the layout must match existing debug-file repositories
// byte for byte.
type Fetcher struct {
	dirs   []string
	logger zerolog.Logger
}

// NewFetcher creates a Fetcher probing the given directories in order.
// An empty list means the single platform default directory.
func NewFetcher(dirs []string, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		dirs:   dirs,
		logger: logger.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch returns the path of the first existing candidate debug file for
// the ID, probing existence only: the file is not opened, and any stat
// failure counts as "does not exist". The ID must be non-empty.
func (f *Fetcher) Fetch(id ID) (string, bool) {
	for _, dir := range f.searchDirs() {
		path := debugFilePath(dir, id)
		f.logger.Debug().Str("path", path).Msg("probing debug file")
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func (f *Fetcher) searchDirs() []string {
	if len(f.dirs) == 0 {
		return []string{defaultDebugDir}
	}
	return f.dirs
}

// debugFilePath builds the candidate path for id under dir: first byte
// as a two-hex-digit subdirectory, remaining bytes plus ".debug" as the
// file name, all lowercase.
func debugFilePath(dir string, id ID) string {
	return filepath.Join(dir, ".build-id",
		hex.EncodeToString(id[:1]),
		hex.EncodeToString(id[1:])+".debug")
}
