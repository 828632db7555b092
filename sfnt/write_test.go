package sfnt

import "testing"

func sumU32BE(data []byte) uint32 {
	var sum uint32
	for i := 0; i+4 <= len(data); i += 4 {
		sum += uint32(data[i])<<24 | uint32(data[i+1])<<16 | uint32(data[i+2])<<8 | uint32(data[i+3])
	}
	rem := len(data) % 4
	if rem != 0 {
		var last [4]byte
		copy(last[:], data[len(data)-rem:])
		sum += uint32(last[0])<<24 | uint32(last[1])<<16 | uint32(last[2])<<8 | uint32(last[3])
	}
	return sum
}

func minimalFont() *Font {
	return &Font{
		Head: HeadInfo{UnitsPerEm: 1000, XMax: 1000, YMax: 1000, LowestRecPPEM: 8},
		Hhea: HheaInfo{Ascent: 950, Descent: -50, LineGap: 0},
		OS2: OS2Info{
			WeightClass: 400, WidthClass: 5, IsRegular: true,
			Ascent: 950, Descent: -50, FirstCharIndex: 0xE000, LastCharIndex: 0xE000,
		},
		Name: NameInfo{Family: "icons", Subfamily: "Regular", FullName: "icons", PostScriptName: "icons", Version: "1.000"},
		Metrics: []HMetric{
			{AdvanceWidth: 1000, LeftSideBearing: 0},
		},
		Cmap:      nil,
		NumGlyphs: 1,
		CFF2:      []byte{2, 0, 5, 0, 0},
	}
}

func TestExportChecksumAdjustment(t *testing.T) {
	f := minimalFont()
	out, err := f.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(out)%4 != 0 {
		t.Fatalf("font length %d is not a multiple of 4", len(out))
	}
	got := sumU32BE(out)
	if got != 0xB1B0AFBA {
		t.Fatalf("sum_u32_be(file) = %#x, want 0xB1B0AFBA", got)
	}
}

func TestExportHasOTTOVersion(t *testing.T) {
	f := minimalFont()
	out, err := f.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	version := uint32(out[0])<<24 | uint32(out[1])<<16 | uint32(out[2])<<8 | uint32(out[3])
	if version != sfntVersionCFF {
		t.Fatalf("sfnt version = %#x, want OTTO", version)
	}
}

func TestExportSmallFontIsCompact(t *testing.T) {
	f := minimalFont()
	out, err := f.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(out) >= 1024 {
		t.Fatalf("expected a minimal font under 1KiB, got %d bytes", len(out))
	}
}

func TestCmapSingleContiguousRun(t *testing.T) {
	entries := []CmapEntry{
		{CodePoint: 0xE000, GlyphID: 1},
		{CodePoint: 0xE001, GlyphID: 2},
		{CodePoint: 0xE002, GlyphID: 3},
	}
	segs := buildSegments(entries)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment for a contiguous run, got %d", len(segs))
	}
	// idDelta is glyphID - codePoint modulo 65536: 1 - 0xE000 = 8193.
	if segs[0].start != 0xE000 || segs[0].end != 0xE002 || segs[0].delta != 8193 {
		t.Fatalf("unexpected segment: %+v", segs[0])
	}
}

func TestCmapBreaksOnGap(t *testing.T) {
	entries := []CmapEntry{
		{CodePoint: 0xE000, GlyphID: 1},
		{CodePoint: 0xE005, GlyphID: 2},
	}
	segs := buildSegments(entries)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments across a gap, got %d", len(segs))
	}
}
