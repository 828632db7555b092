package convert

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"seehuhn.de/go/svg2otf/cff2"
)

func TestBuildFontEmptyInput(t *testing.T) {
	fsys := fstest.MapFS{}
	res, err := BuildFont(fsys, Options{Normalize: true, IgnoreShapes: true})
	if err != nil {
		t.Fatalf("BuildFont: %v", err)
	}
	if len(res.Icons) != 0 {
		t.Fatalf("expected zero icons, got %d", len(res.Icons))
	}
	if len(res.Font) >= 1024 {
		t.Fatalf("expected a font under 1KiB for empty input, got %d bytes", len(res.Font))
	}

	table, err := cff2.DecodeTable(cff2Slice(t, res.Font))
	if err != nil {
		t.Fatalf("DecodeTable: %v", err)
	}
	if len(table.CharStrings) != 0 {
		t.Fatalf("expected char_strings.count == 0 for empty input, got %d entries", len(table.CharStrings))
	}
}

func TestBuildFontSingleSquare(t *testing.T) {
	fsys := fstest.MapFS{
		"square.svg": &fstest.MapFile{Data: []byte(`<svg><rect x="0" y="0" width="100" height="100"/></svg>`)},
	}
	res, err := BuildFont(fsys, Options{Normalize: true, IgnoreShapes: false})
	if err != nil {
		t.Fatalf("BuildFont: %v", err)
	}
	if len(res.Icons) != 1 || res.Icons[0].Name != "square" {
		t.Fatalf("unexpected icons: %+v", res.Icons)
	}
	if res.Icons[0].CodePoint != 0xE000 {
		t.Fatalf("expected first icon at U+E000, got %#x", res.Icons[0].CodePoint)
	}
}

func TestBuildFontIgnoreShapesDropsRect(t *testing.T) {
	fsys := fstest.MapFS{
		"square.svg": &fstest.MapFile{Data: []byte(`<svg><rect x="0" y="0" width="100" height="100"/></svg>`)},
	}
	res, err := BuildFont(fsys, Options{Normalize: true, IgnoreShapes: true})
	if err != nil {
		t.Fatalf("BuildFont: %v", err)
	}
	table, err := cff2.DecodeTable(cff2Slice(t, res.Font))
	if err != nil {
		t.Fatalf("DecodeTable: %v", err)
	}
	for _, cs := range table.CharStrings {
		if len(cs) != 0 {
			t.Fatalf("expected an empty charstring for a dropped shape, got %d bytes", len(cs))
		}
	}
}

// duplicateStemFS is a minimal fs.ReadDirFS whose ReadDir reports two
// entries stemming to the same icon identifier, a shape no real
// directory listing can produce (filenames are inherently unique) but
// that a merged multi-source input layout could. Open is never
// expected to be called: BuildFont must reject the duplicate before
// opening either file.
type duplicateStemFS struct{}

func (duplicateStemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (duplicateStemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return []fs.DirEntry{
		fakeDirEntry("star.svg"),
		fakeDirEntry("star.svg"),
	}, nil
}

type fakeDirEntry string

func (f fakeDirEntry) Name() string               { return string(f) }
func (f fakeDirEntry) IsDir() bool                 { return false }
func (f fakeDirEntry) Type() fs.FileMode           { return 0 }
func (f fakeDirEntry) Info() (fs.FileInfo, error)  { return fakeFileInfo(f), nil }

type fakeFileInfo string

func (f fakeFileInfo) Name() string       { return string(f) }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

func TestBuildFontDuplicateName(t *testing.T) {
	_, err := BuildFont(duplicateStemFS{}, Options{})
	var dupErr *DuplicateIconNameError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected *DuplicateIconNameError, got %T: %v", err, err)
	}
	if dupErr.Name != "star" {
		t.Fatalf("unexpected duplicate name: %q", dupErr.Name)
	}
}

// cff2Slice locates the "CFF2" table within an assembled sfnt file by
// walking its table directory: a 12-byte header followed by one
// 16-byte record per table, tag-sorted (numTables lives at offset 4).
func cff2Slice(t *testing.T, font []byte) []byte {
	t.Helper()
	tag := []byte("CFF2")
	numTables := int(font[4])<<8 | int(font[5])
	for i := 0; i < numTables; i++ {
		rec := font[12+i*16 : 12+i*16+16]
		if string(rec[0:4]) == string(tag) {
			offset := be32(rec[8:12])
			length := be32(rec[12:16])
			return font[offset : offset+length]
		}
	}
	t.Fatalf("CFF2 table not found")
	return nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
