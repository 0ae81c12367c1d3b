// Package object opens compiled binaries and resolves their format once,
// so downstream consumers can dispatch on a kind tag instead of
// re-sniffing per call.
package object

import (
	"debug/elf"
	"debug/pe"
	"fmt"
	"io"
	"os"
)

// Kind tags the detected object-file format.
type Kind int

const (
	// KindUnknown marks a file that is neither ELF nor PE. Such files
	// still open successfully; extractors treat them as carrying no
	// build ID.
	KindUnknown Kind = iota
	// KindELF covers all four ELF class/endianness variants; debug/elf
	// folds them into one parsed representation.
	KindELF
	// KindPE covers COFF/PE objects, 32- and 64-bit.
	KindPE
)

func (k Kind) String() string {
	switch k {
	case KindELF:
		return "elf"
	case KindPE:
		return "pe"
	default:
		return "unknown"
	}
}

// File is an opened object file with its format resolved. Exactly one of
// ELF and PE is non-nil when Kind is KindELF or KindPE respectively.
type File struct {
	Kind Kind
	ELF  *elf.File
	PE   *pe.File

	f *os.File
}

// Open opens the file at path and parses it as ELF or PE based on its
// magic number. A readable file in neither format yields Kind ==
// KindUnknown rather than an error; only I/O failures and files whose
// headers are malformed for their declared format error out.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		// Too short to carry any object header.
		return &File{Kind: KindUnknown, f: f}, nil
	}

	switch {
	case string(magic[:]) == elf.ELFMAG:
		ef, err := elf.NewFile(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("parsing ELF file %s: %w", path, err)
		}
		return &File{Kind: KindELF, ELF: ef, f: f}, nil
	case magic[0] == 'M' && magic[1] == 'Z':
		pf, err := pe.NewFile(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("parsing PE file %s: %w", path, err)
		}
		return &File{Kind: KindPE, PE: pf, f: f}, nil
	}

	return &File{Kind: KindUnknown, f: f}, nil
}

// Close releases the underlying file. Byte slices handed out by the
// parsed object may alias its backing storage and must not be used after
// Close.
func (f *File) Close() error {
	if f.f == nil {
		return nil
	}
	return f.f.Close()
}
