package sfnt

import "encoding/binary"

// EncodeMaxp builds the "maxp" table in version 0.5 form, the variant
// used by CFF/CFF2-outline fonts (TrueType fonts use the larger version
// 1.0 layout with many additional fields this writer never needs).
func EncodeMaxp(numGlyphs uint16) []byte {
	buf := make([]byte, 6)
	binary.BigEndian.PutUint32(buf[0:4], 0x00005000)
	binary.BigEndian.PutUint16(buf[4:6], numGlyphs)
	return buf
}
