package sfnt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const headLength = 54

// HeadInfo holds the fields of the "head" table this writer emits.
// Fields that only matter for TrueType outlines (IndexToLocFormat,
// GlyphDataFormat) are fixed at their CFF-appropriate values and not
// exposed here — see DESIGN.md for why a glyf/loca reader is out of
// scope.
type HeadInfo struct {
	UnitsPerEm    uint16
	Created       int64 // seconds since 1904-01-01, big-endian encoded
	Modified      int64
	XMin, YMin    int16
	XMax, YMax    int16
	IsBold        bool
	IsItalic      bool
	LowestRecPPEM uint16
}

type binaryHead struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

// Encode serializes the head table with CheckSumAdjustment left at
// zero; PatchChecksumAdjustment fills it in once the whole file's checksum is
// known.
func (info *HeadInfo) Encode() []byte {
	var macStyle uint16
	if info.IsBold {
		macStyle |= 1 << 0
	}
	if info.IsItalic {
		macStyle |= 1 << 1
	}

	enc := &binaryHead{
		Version:           0x00010000,
		FontRevision:      0x00010000,
		MagicNumber:       0x5F0F3CF5,
		Flags:             1<<0 | 1<<3 | 1<<11,
		UnitsPerEm:        info.UnitsPerEm,
		Created:           info.Created,
		Modified:          info.Modified,
		XMin:              info.XMin,
		YMin:              info.YMin,
		XMax:              info.XMax,
		YMax:              info.YMax,
		MacStyle:          macStyle,
		LowestRecPPEM:     info.LowestRecPPEM,
		FontDirectionHint: 2,
		IndexToLocFormat:  0,
		GlyphDataFormat:   0,
	}
	buf := bytes.NewBuffer(make([]byte, 0, headLength))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

// PatchChecksumAdjustment writes 0xB1B0AFBA - checksumOfWholeFile into
// the head table's CheckSumAdjustment field, per the OpenType
// specification.
func PatchChecksumAdjustment(head []byte, checksumOfWholeFile uint32) error {
	if len(head) < 12 {
		return fmt.Errorf("sfnt: head table too short to patch")
	}
	binary.BigEndian.PutUint32(head[8:12], 0xB1B0AFBA-checksumOfWholeFile)
	return nil
}
