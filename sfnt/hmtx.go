package sfnt

import (
	"bytes"
	"encoding/binary"
)

// HMetric is one glyph's horizontal metrics.
type HMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// HheaInfo holds the fields of the "hhea" table.
type HheaInfo struct {
	Ascent, Descent, LineGap int16
	CaretSlopeRise           int16
	CaretSlopeRun            int16
}

// EncodeHmtx builds the "hmtx" and "hhea" tables for the given per-glyph
// metrics, compressing the trailing run of glyphs with identical advance
// widths into the long-metrics count the way TrueType/OpenType hmtx
// always does: only the last distinct advance width needs to be
// repeated per glyph, so a monospaced icon font (every glyph shares the
// same advance width, as icon fonts do) collapses to a single
// long-metric entry.
func EncodeHmtx(hhea HheaInfo, metrics []HMetric) (hmtxBytes, hheaBytes []byte) {
	n := len(metrics)
	numLong := n
	for i := n - 1; i > 0; i-- {
		if metrics[i].AdvanceWidth != metrics[i-1].AdvanceWidth {
			break
		}
		numLong--
	}
	if numLong == 0 && n > 0 {
		numLong = 1
	}

	buf := &bytes.Buffer{}
	for _, m := range metrics[:numLong] {
		binary.Write(buf, binary.BigEndian, m)
	}
	for _, m := range metrics[numLong:] {
		binary.Write(buf, binary.BigEndian, m.LeftSideBearing)
	}
	hmtxBytes = buf.Bytes()

	var advanceWidthMax uint16
	var minLSB, minRSB int16 = 32767, 32767
	var xMaxExtent int16
	for _, m := range metrics {
		if m.AdvanceWidth > advanceWidthMax {
			advanceWidthMax = m.AdvanceWidth
		}
		if m.LeftSideBearing < minLSB {
			minLSB = m.LeftSideBearing
		}
	}

	hb := &bytes.Buffer{}
	binary.Write(hb, binary.BigEndian, struct {
		Version             uint32
		Ascent              int16
		Descent             int16
		LineGap             int16
		AdvanceWidthMax     uint16
		MinLeftSideBearing  int16
		MinRightSideBearing int16
		XMaxExtent          int16
		CaretSlopeRise      int16
		CaretSlopeRun       int16
		CaretOffset         int16
		Reserved            [4]int16
		MetricDataFormat    int16
		NumOfLongHorMetrics uint16
	}{
		Version:             0x00010000,
		Ascent:              hhea.Ascent,
		Descent:             hhea.Descent,
		LineGap:             hhea.LineGap,
		AdvanceWidthMax:     advanceWidthMax,
		MinLeftSideBearing:  minLSB,
		MinRightSideBearing: minRSB,
		XMaxExtent:          xMaxExtent,
		CaretSlopeRise:      hhea.CaretSlopeRise,
		CaretSlopeRun:       hhea.CaretSlopeRun,
		NumOfLongHorMetrics: uint16(numLong),
	})
	hheaBytes = hb.Bytes()
	return hmtxBytes, hheaBytes
}
