package buildid

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGUID = []byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
}

func debugDirEntry(typ, addr, size uint32) []byte {
	e := make([]byte, debugDirEntrySize)
	binary.LittleEndian.PutUint32(e[debugDirTypeOffset:], typ)
	binary.LittleEndian.PutUint32(e[debugDirSizeOffset:], size)
	binary.LittleEndian.PutUint32(e[debugDirAddrOffset:], addr)
	return e
}

func pdb70Record(guid []byte, age uint32) []byte {
	r := make([]byte, codeViewPDB70RecordSize)
	binary.LittleEndian.PutUint32(r[0:], codeViewSignaturePDB70)
	copy(r[4:20], guid)
	binary.LittleEndian.PutUint32(r[20:], age)
	return r
}

// recordLoader serves CodeView records keyed by virtual address.
func recordLoader(records map[uint32][]byte) func(addr, size uint32) ([]byte, error) {
	return func(addr, size uint32) ([]byte, error) {
		r, ok := records[addr]
		if !ok {
			return nil, fmt.Errorf("address %#x not mapped", addr)
		}
		return r, nil
	}
}

func TestDebugIDFromDirectoryPDB70(t *testing.T) {
	dir := debugDirEntry(imageDebugTypeCodeView, 0x1000, codeViewPDB70RecordSize)
	load := recordLoader(map[uint32][]byte{0x1000: pdb70Record(testGUID, 1)})

	id := debugIDFromDirectory(dir, load)
	require.Len(t, id, 20, "GUID plus Age")
	assert.Equal(t, ID(testGUID), id[:16])
	assert.Equal(t, ID{0x01, 0x00, 0x00, 0x00}, id[16:], "Age is little-endian")
}

func TestDebugIDFromDirectoryPDB20Unsupported(t *testing.T) {
	record := make([]byte, codeViewPDB70RecordSize)
	binary.LittleEndian.PutUint32(record[0:], codeViewSignaturePDB20)

	dir := debugDirEntry(imageDebugTypeCodeView, 0x1000, codeViewPDB70RecordSize)
	load := recordLoader(map[uint32][]byte{0x1000: record})

	assert.True(t, debugIDFromDirectory(dir, load).Empty())
}

func TestDebugIDFromDirectorySkipsNonCodeView(t *testing.T) {
	const imageDebugTypeMisc = 4
	dir := append(
		debugDirEntry(imageDebugTypeMisc, 0x2000, 16),
		debugDirEntry(imageDebugTypeCodeView, 0x1000, codeViewPDB70RecordSize)...)
	load := recordLoader(map[uint32][]byte{0x1000: pdb70Record(testGUID, 7)})

	id := debugIDFromDirectory(dir, load)
	require.False(t, id.Empty())
	assert.Equal(t, ID{0x07, 0x00, 0x00, 0x00}, id[16:])
}

func TestDebugIDFromDirectorySkipsUnreadableEntry(t *testing.T) {
	// The first CodeView entry points at an unmapped address; the scan
	// must continue to the second instead of aborting.
	dir := append(
		debugDirEntry(imageDebugTypeCodeView, 0xdead, codeViewPDB70RecordSize),
		debugDirEntry(imageDebugTypeCodeView, 0x1000, codeViewPDB70RecordSize)...)
	load := recordLoader(map[uint32][]byte{0x1000: pdb70Record(testGUID, 1)})

	assert.False(t, debugIDFromDirectory(dir, load).Empty())
}

func TestDebugIDFromDirectorySkipsShortRecord(t *testing.T) {
	dir := debugDirEntry(imageDebugTypeCodeView, 0x1000, 8)
	load := recordLoader(map[uint32][]byte{0x1000: make([]byte, 8)})

	assert.True(t, debugIDFromDirectory(dir, load).Empty())
}

func TestDebugIDFromDirectoryEmpty(t *testing.T) {
	assert.True(t, debugIDFromDirectory(nil, recordLoader(nil)).Empty())
}

func TestCOFFDebugIDWithoutOptionalHeader(t *testing.T) {
	// A COFF object file with no optional header has no debug data
	// directory; extraction yields empty, not an error. The COFF header
	// sits at 0x60 so the image covers the full 96-byte DOS header
	// debug/pe reads up front.
	img := make([]byte, 0x60+4+20)
	img[0] = 'M'
	img[1] = 'Z'
	binary.LittleEndian.PutUint32(img[0x3c:], 0x60) // e_lfanew
	copy(img[0x60:], "PE\x00\x00")
	binary.LittleEndian.PutUint16(img[0x64:], 0x8664) // Machine: amd64

	f, err := pe.NewFile(bytes.NewReader(img))
	require.NoError(t, err)

	assert.True(t, COFFDebugID(f).Empty())
}
