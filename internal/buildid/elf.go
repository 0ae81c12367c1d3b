package buildid

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"io"
)

// NT_GNU_BUILD_ID note type, owner "GNU".
const noteTypeGNUBuildID = 3

// Note owner as stored on disk: name size 4 including the NUL.
var noteNameGNU = []byte("GNU\x00")

// elfBuildID finds the GNU build-id note in an ELF object and returns
// its descriptor bytes, or nil if the object carries none.
//
// Note sections are scanned first, in on-disk order, and the first match
// wins. Only when the entire section pass finds nothing does the scan
// fall back to PT_NOTE program segments: stripped binaries keep program
// headers (the loader needs them) while section headers may be gone.
// A malformed note stream in one section or segment contributes nothing
// and the scan moves on to the next header of the same kind.
func elfBuildID(f *elf.File) ID {
	for _, s := range f.Sections {
		if s.Type != elf.SHT_NOTE {
			continue
		}
		data, err := s.Data()
		if err != nil {
			continue
		}
		if id := findGNUBuildID(data, f.ByteOrder, s.Addralign); id != nil {
			return id
		}
	}
	for _, p := range f.Progs {
		if p.Type != elf.PT_NOTE {
			continue
		}
		data, err := io.ReadAll(p.Open())
		if err != nil {
			continue
		}
		if id := findGNUBuildID(data, f.ByteOrder, p.Align); id != nil {
			return id
		}
	}
	return nil
}

// findGNUBuildID walks one note stream and returns the descriptor of the
// first GNU build-id note, or nil. The descriptor of each note starts at
// the 12-byte header plus the name, aligned as one unit to the declared
// alignment of the carrying section or segment; anything below the
// format minimum of 4 is treated as 4. With 8-byte alignment and the
// 4-byte "GNU\0" owner that places the descriptor at offset 16, the
// layout linkers emit when they merge notes into one PT_NOTE segment.
// A truncated or otherwise malformed stream yields nil rather than an
// error.
func findGNUBuildID(data []byte, bo binary.ByteOrder, align uint64) ID {
	if align < 4 {
		align = 4
	}
	size := uint64(len(data))
	var off uint64
	for off+12 <= size {
		namesz := uint64(bo.Uint32(data[off : off+4]))
		descsz := uint64(bo.Uint32(data[off+4 : off+8]))
		typ := bo.Uint32(data[off+8 : off+12])

		nameOff := off + 12
		if namesz > size-nameOff {
			return nil
		}
		name := data[nameOff : nameOff+namesz]

		descOff := off + alignUp(12+namesz, align)
		if descOff > size || descsz > size-descOff {
			return nil
		}
		if typ == noteTypeGNUBuildID && bytes.Equal(name, noteNameGNU) {
			desc := make(ID, descsz)
			copy(desc, data[descOff:descOff+descsz])
			return desc
		}

		off = descOff + alignUp(descsz, align)
	}
	return nil
}

func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
