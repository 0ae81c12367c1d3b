package buildid

import (
	"debug/pe"
	"encoding/binary"
	"fmt"
)

// COFF debug directory layout, from the PE/COFF spec. debug/pe stops at
// the optional-header data directories, so the entries themselves are
// decoded here from raw section bytes.
const (
	debugDirEntrySize       = 28
	debugDirTypeOffset      = 12
	debugDirSizeOffset      = 16
	debugDirAddrOffset      = 20
	imageDebugTypeCodeView  = 2
	codeViewSignaturePDB70  = 0x53445352 // "RSDS"
	codeViewSignaturePDB20  = 0x3031424e // "NB10", fixed-length PDB 2.0
	codeViewPDB70RecordSize = 24         // signature + GUID + age
)

// COFFDebugID extracts the PDB-70 debug identifier from a COFF/PE
// object: the 16 raw GUID bytes of the CodeView record followed by the
// 4-byte Age, little-endian. Objects without a PDB-70 CodeView entry
// yield nil; PDB-2.0 entries are recognized and skipped, not errors.
func COFFDebugID(f *pe.File) ID {
	dir, err := debugDirectory(f)
	if err != nil {
		return nil
	}
	return debugIDFromDirectory(dir, func(addr, size uint32) ([]byte, error) {
		return sectionData(f, addr, size)
	})
}

// debugIDFromDirectory walks raw debug directory entries in order and
// returns the identifier from the first CodeView entry carrying a PDB-70
// record. Entries that are not CodeView, cannot be read, or carry an
// unrecognized signature are skipped and the walk continues.
func debugIDFromDirectory(dir []byte, load func(addr, size uint32) ([]byte, error)) ID {
	for len(dir) >= debugDirEntrySize {
		entry := dir[:debugDirEntrySize]
		dir = dir[debugDirEntrySize:]

		if binary.LittleEndian.Uint32(entry[debugDirTypeOffset:]) != imageDebugTypeCodeView {
			continue
		}
		addr := binary.LittleEndian.Uint32(entry[debugDirAddrOffset:])
		size := binary.LittleEndian.Uint32(entry[debugDirSizeOffset:])
		record, err := load(addr, size)
		if err != nil {
			continue
		}
		if len(record) < codeViewPDB70RecordSize {
			continue
		}
		if binary.LittleEndian.Uint32(record[0:4]) != codeViewSignaturePDB70 {
			continue
		}

		// 16 GUID bytes verbatim, then the Age. The record is
		// little-endian on disk, so the Age bytes are already in
		// least-significant-first order.
		id := make(ID, 20)
		copy(id, record[4:24])
		return id
	}
	return nil
}

// debugDirectory locates the raw bytes of the debug directory via the
// optional header's data directory.
func debugDirectory(f *pe.File) ([]byte, error) {
	var dd pe.DataDirectory
	switch hdr := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if hdr.NumberOfRvaAndSizes <= pe.IMAGE_DIRECTORY_ENTRY_DEBUG {
			return nil, fmt.Errorf("no debug data directory")
		}
		dd = hdr.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_DEBUG]
	case *pe.OptionalHeader64:
		if hdr.NumberOfRvaAndSizes <= pe.IMAGE_DIRECTORY_ENTRY_DEBUG {
			return nil, fmt.Errorf("no debug data directory")
		}
		dd = hdr.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_DEBUG]
	default:
		return nil, fmt.Errorf("missing optional header")
	}
	if dd.VirtualAddress == 0 || dd.Size == 0 {
		return nil, fmt.Errorf("empty debug data directory")
	}
	return sectionData(f, dd.VirtualAddress, dd.Size)
}

// sectionData reads size bytes at the given virtual address out of the
// section that maps it.
func sectionData(f *pe.File, addr, size uint32) ([]byte, error) {
	for _, s := range f.Sections {
		if addr < s.VirtualAddress {
			continue
		}
		start := addr - s.VirtualAddress
		if uint64(start)+uint64(size) > uint64(s.VirtualSize) {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		if uint64(start)+uint64(size) > uint64(len(data)) {
			return nil, fmt.Errorf("section %s raw data truncated", s.Name)
		}
		return data[start : start+size], nil
	}
	return nil, fmt.Errorf("virtual address %#x not mapped by any section", addr)
}
