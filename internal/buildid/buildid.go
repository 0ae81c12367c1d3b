// Package buildid extracts the unique build identifier embedded in a
// compiled binary and locates the matching external debug-info file on
// disk.
//
// For ELF objects the identifier is the descriptor of the GNU build-id
// note; for COFF/PE objects it is the 16-byte PDB GUID followed by the
// 4-byte Age from the CodeView debug directory entry. Either way the
// result is an opaque byte sequence that pairs a binary with its
// separately shipped debug symbols without relying on file paths.
//
// Every lookup in this package yields either a definite value or a
// definite "absent" (empty) result. Malformed headers, unreadable
// debug-directory entries and bad hex input are all treated as absence,
// never surfaced as errors: a symbolizer asking "where are the symbols"
// wants "not found", not a parse failure.
package buildid

import (
	"encoding/hex"

	"github.com/symfind/symfind/internal/object"
)

// ID is a build identifier: an ordered byte sequence uniquely naming one
// build of a binary. A nil or empty ID means "no build ID". IDs returned
// from this package are owned by the caller and immutable by convention.
type ID []byte

// Parse decodes a hex string (no prefix, case-insensitive) into an ID.
// Decoding is all-or-nothing: odd length or a non-hex character yields
// an empty ID, never a partial one.
func Parse(s string) ID {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return ID(b)
}

// String renders the ID as lowercase hex, the inverse of Parse.
func (id ID) String() string {
	return hex.EncodeToString(id)
}

// Empty reports whether the ID carries no bytes.
func (id ID) Empty() bool {
	return len(id) == 0
}

// FromObject extracts the build ID from an opened object file,
// dispatching on the object kind resolved at open time. Unrecognized
// kinds yield an empty ID.
func FromObject(f *object.File) ID {
	switch f.Kind {
	case object.KindELF:
		return elfBuildID(f.ELF)
	case object.KindPE:
		return COFFDebugID(f.PE)
	default:
		return nil
	}
}
