package sfnt

import "encoding/binary"

// OS2Info holds the subset of "OS/2" table fields relevant to an
// icon font: weight/width class, the embedding permission bits, and
// the ascent/descent/line-gap metrics windows applications use to lay
// out text using this font.
type OS2Info struct {
	WeightClass uint16
	WidthClass  uint16
	IsBold      bool
	IsItalic    bool
	IsRegular   bool
	Ascent      int16
	Descent     int16
	LineGap     int16
	CapHeight   int16
	XHeight     int16

	// FirstCharIndex/LastCharIndex are the lowest/highest Unicode code
	// points the font's cmap covers, per the OS/2 spec.
	FirstCharIndex uint16
	LastCharIndex  uint16
}

// Encode builds an OS/2 version 4 table.
func (info *OS2Info) Encode() []byte {
	buf := make([]byte, 96)
	binary.BigEndian.PutUint16(buf[0:2], 4) // version
	binary.BigEndian.PutUint16(buf[2:4], 0) // xAvgCharWidth
	binary.BigEndian.PutUint16(buf[4:6], info.WeightClass)
	binary.BigEndian.PutUint16(buf[6:8], info.WidthClass)
	binary.BigEndian.PutUint16(buf[8:10], 1<<1) // fsType: 0x0002, Restricted License embedding

	var selection uint16
	if info.IsItalic {
		selection |= 1 << 0
	}
	if info.IsBold {
		selection |= 1 << 5
	}
	if info.IsRegular {
		selection |= 1 << 6
	}
	binary.BigEndian.PutUint16(buf[62:64], selection) // fsSelection

	binary.BigEndian.PutUint16(buf[64:66], info.FirstCharIndex)
	binary.BigEndian.PutUint16(buf[66:68], info.LastCharIndex)
	// info.Descent is negative (below baseline). sTypoDescender keeps
	// that sign; usWinAscent/usWinDescent are unsigned magnitudes.
	binary.BigEndian.PutUint16(buf[68:70], uint16(info.Ascent))  // sTypoAscender
	binary.BigEndian.PutUint16(buf[70:72], uint16(info.Descent)) // sTypoDescender
	binary.BigEndian.PutUint16(buf[72:74], uint16(info.LineGap)) // sTypoLineGap
	binary.BigEndian.PutUint16(buf[74:76], uint16(info.Ascent))  // usWinAscent
	binary.BigEndian.PutUint16(buf[76:78], uint16(-info.Descent)) // usWinDescent

	binary.BigEndian.PutUint16(buf[86:88], uint16(info.XHeight))
	binary.BigEndian.PutUint16(buf[88:90], uint16(info.CapHeight))

	return buf
}
