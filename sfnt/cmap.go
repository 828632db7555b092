package sfnt

import "encoding/binary"

// CmapEntry maps one Unicode code point to a glyph ID.
type CmapEntry struct {
	CodePoint uint16
	GlyphID   uint16
}

// EncodeCmap builds a "cmap" table with a single format-4 subtable for
// the Windows/Unicode BMP platform, from entries sorted by code point.
// Icon fonts assign code points and glyph IDs in the same lexicographic
// order (spec §6), so entries collapse into a small number of
// contiguous segments; EncodeCmap does not assume this and instead
// merges any run of entries whose (glyphID - codePoint) delta stays
// constant into one segment, the standard format-4 compression rule.
func EncodeCmap(entries []CmapEntry) []byte {
	segments := buildSegments(entries)
	// terminator segment, required by the format-4 spec
	segments = append(segments, segment{start: 0xFFFF, end: 0xFFFF, delta: 1})

	segCount := len(segments)
	searchRange, entrySelector, rangeShift := searchParams(segCount)

	subtableLen := 16 + segCount*8
	sub := make([]byte, subtableLen)
	binary.BigEndian.PutUint16(sub[0:2], 4)
	binary.BigEndian.PutUint16(sub[2:4], uint16(subtableLen))
	binary.BigEndian.PutUint16(sub[4:6], 0) // language
	binary.BigEndian.PutUint16(sub[6:8], uint16(segCount*2))
	binary.BigEndian.PutUint16(sub[8:10], searchRange)
	binary.BigEndian.PutUint16(sub[10:12], entrySelector)
	binary.BigEndian.PutUint16(sub[12:14], rangeShift)

	endCodes := sub[14:]
	startCodes := sub[14+segCount*2+2:]
	idDeltas := sub[14+segCount*4+2:]
	idRangeOffsets := sub[14+segCount*6+2:]

	for i, s := range segments {
		binary.BigEndian.PutUint16(endCodes[i*2:], s.end)
		binary.BigEndian.PutUint16(startCodes[i*2:], s.start)
		binary.BigEndian.PutUint16(idDeltas[i*2:], uint16(s.delta))
		binary.BigEndian.PutUint16(idRangeOffsets[i*2:], 0)
	}

	header := make([]byte, 4+8)
	binary.BigEndian.PutUint16(header[0:2], 0) // version
	binary.BigEndian.PutUint16(header[2:4], 1) // numTables
	binary.BigEndian.PutUint16(header[4:6], 3) // platformID: Windows
	binary.BigEndian.PutUint16(header[6:8], 1) // encodingID: Unicode BMP
	binary.BigEndian.PutUint32(header[8:12], uint32(len(header)))

	return append(header, sub...)
}

type segment struct {
	start, end uint16
	delta      int16
}

func buildSegments(entries []CmapEntry) []segment {
	if len(entries) == 0 {
		return nil
	}
	var segs []segment
	start := entries[0].CodePoint
	prevCode := entries[0].CodePoint
	delta := int16(int32(entries[0].GlyphID) - int32(entries[0].CodePoint))
	for _, e := range entries[1:] {
		d := int16(int32(e.GlyphID) - int32(e.CodePoint))
		if e.CodePoint == prevCode+1 && d == delta {
			prevCode = e.CodePoint
			continue
		}
		segs = append(segs, segment{start: start, end: prevCode, delta: delta})
		start, prevCode, delta = e.CodePoint, e.CodePoint, d
	}
	segs = append(segs, segment{start: start, end: prevCode, delta: delta})
	return segs
}

func searchParams(segCount int) (searchRange, entrySelector, rangeShift uint16) {
	entrySelector = 0
	for (1 << (entrySelector + 1)) <= segCount {
		entrySelector++
	}
	searchRange = (1 << entrySelector) * 2
	rangeShift = uint16(segCount*2) - searchRange
	return
}
