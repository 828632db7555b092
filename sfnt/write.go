package sfnt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
)

// Font collects the pieces needed to assemble a complete OpenType/CFF2
// font file: the fixed tables plus the raw CFF2 table bytes produced by
// package cff2.
type Font struct {
	Head HeadInfo
	Hhea HheaInfo
	OS2  OS2Info
	Name NameInfo
	Post struct {
		ItalicAngle        int32
		UnderlinePosition  int16
		UnderlineThickness int16
		IsFixedPitch       bool
	}
	Metrics []HMetric
	Cmap    []CmapEntry
	NumGlyphs uint16
	CFF2    []byte
}

const sfntVersionCFF = 0x4F54544F // "OTTO", the sfnt version tag for CFF/CFF2 outlines

// Export assembles the complete font file: a table directory followed
// by the head, hhea, hmtx, maxp, OS/2, name, post, cmap and CFF2
// tables in tag-sorted order, each padded to a 4-byte boundary, with the head table's
// checkSumAdjustment patched once the whole file's checksum is known.
func (f *Font) Export() ([]byte, error) {
	hmtxBytes, hheaBytes := EncodeHmtx(f.Hhea, f.Metrics)

	tables := map[string][]byte{
		"head": f.Head.Encode(),
		"hhea": hheaBytes,
		"hmtx": hmtxBytes,
		"maxp": EncodeMaxp(f.NumGlyphs),
		"OS/2": f.OS2.Encode(),
		"name": f.Name.Encode(),
		"post": EncodePost(f.Post.ItalicAngle, f.Post.UnderlinePosition, f.Post.UnderlineThickness, f.Post.IsFixedPitch),
		"cmap": EncodeCmap(f.Cmap),
		"CFF2": f.CFF2,
	}

	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	numTables := len(tags)
	searchRange, entrySelector, rangeShift := binarySearchParams(numTables, 16)

	header := make([]byte, 12)
	binary.BigEndian.PutUint32(header[0:4], sfntVersionCFF)
	binary.BigEndian.PutUint16(header[4:6], uint16(numTables))
	binary.BigEndian.PutUint16(header[6:8], searchRange)
	binary.BigEndian.PutUint16(header[8:10], entrySelector)
	binary.BigEndian.PutUint16(header[10:12], rangeShift)

	dirLen := 12 + numTables*16
	offset := uint32(dirLen)

	var dir bytes.Buffer
	dir.Write(header)

	var body bytes.Buffer
	var headOffset int
	for _, tag := range tags {
		data := tables[tag]
		padded := pad4(data)

		entry := make([]byte, 16)
		copy(entry[0:4], tag)
		binary.BigEndian.PutUint32(entry[4:8], Checksum(data))
		binary.BigEndian.PutUint32(entry[8:12], offset)
		binary.BigEndian.PutUint32(entry[12:16], uint32(len(data)))
		dir.Write(entry)

		if tag == "head" {
			headOffset = body.Len() + dirLen
		}
		body.Write(padded)
		offset += uint32(len(padded))
	}

	out := append(dir.Bytes(), body.Bytes()...)

	if headOffset == 0 || headOffset+headLength > len(out) {
		return nil, fmt.Errorf("sfnt: head table not found while assembling font")
	}
	whole := Checksum(out)
	if err := PatchChecksumAdjustment(out[headOffset:headOffset+headLength], whole); err != nil {
		return nil, err
	}

	return out, nil
}

func pad4(data []byte) []byte {
	n := len(data)
	rem := n % 4
	if rem == 0 {
		return data
	}
	padded := make([]byte, n+(4-rem))
	copy(padded, data)
	return padded
}

func binarySearchParams(numTables, entrySize int) (searchRange, entrySelector, rangeShift uint16) {
	entrySelector = 0
	for (1 << (entrySelector + 1)) <= numTables {
		entrySelector++
	}
	searchRange = uint16((1 << entrySelector) * entrySize)
	rangeShift = uint16(numTables*entrySize) - searchRange
	return
}
