package sfnt

import "encoding/binary"

// EncodePost builds a version-3.0 "post" table: the italic angle and
// underline metrics only, with no per-glyph PostScript name array
// (version 3.0 is exactly the variant meant for fonts, like this one,
// that carry no glyph names).
func EncodePost(italicAngle int32, underlinePosition, underlineThickness int16, isFixedPitch bool) []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf[0:4], 0x00030000)
	binary.BigEndian.PutUint32(buf[4:8], uint32(italicAngle))
	binary.BigEndian.PutUint16(buf[8:10], uint16(underlinePosition))
	binary.BigEndian.PutUint16(buf[10:12], uint16(underlineThickness))
	if isFixedPitch {
		binary.BigEndian.PutUint32(buf[12:16], 1)
	}
	return buf
}
