package cff2

import (
	"testing"
)

func TestTableEmpty(t *testing.T) {
	tbl := &Table{}
	data, err := tbl.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty table should still produce a header")
	}
	got, err := DecodeTable(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CharStrings) != 0 {
		t.Fatalf("expected 0 CharStrings, got %d", len(got.CharStrings))
	}
}

func TestTableTwoCharStringsRoundTrip(t *testing.T) {
	tbl := &Table{CharStrings: [][]byte{{}, {21}}} // .notdef, then a bare rmoveto stub
	data, err := tbl.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeTable(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CharStrings) != 2 {
		t.Fatalf("expected 2 CharStrings, got %d", len(got.CharStrings))
	}
}

// TestTableOffsetBoundaryConvergence is spec §8 end-to-end scenario 5:
// a CharStrings INDEX large enough to push the Top DICT's FDArray
// offset across the 3-byte-operand boundary (32767) must still
// converge, and the final topDictLength must match the encoded Top
// DICT's actual size.
func TestTableOffsetBoundaryConvergence(t *testing.T) {
	big := make([]byte, 40000)
	for i := range big {
		big[i] = 5 // opRLineTo, arbitrary filler bytes for this offset-only test
	}
	tbl := &Table{CharStrings: [][]byte{big}}
	data, err := tbl.Encode()
	if err != nil {
		t.Fatal(err)
	}

	topDictLen := int(data[3])<<8 | int(data[4])
	topDict, err := DecodeDict(data[headerSize : headerSize+topDictLen])
	if err != nil {
		t.Fatal(err)
	}
	fdArrayOffs := topDict.Get(OpFDArray)
	if len(fdArrayOffs) != 1 {
		t.Fatal("missing FDArray offset")
	}
	if fdArrayOffs[0].Width != 5 {
		t.Fatalf("expected the FDArray offset to widen to 5 bytes, got width %d", fdArrayOffs[0].Width)
	}

	got, err := DecodeTable(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CharStrings) != 1 || len(got.CharStrings[0]) != len(big) {
		t.Fatalf("CharStrings did not round-trip through the widened offset")
	}
}

func TestTableFontMatrix(t *testing.T) {
	tbl := &Table{
		FontMatrix:  []float64{0.001, 0, 0, 0.001, 0, 0},
		CharStrings: [][]byte{{}},
	}
	data, err := tbl.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeTable(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.FontMatrix) != 6 {
		t.Fatalf("expected FontMatrix to round-trip, got %v", got.FontMatrix)
	}
	if diff := got.FontMatrix[0] - 0.001; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("FontMatrix[0] = %v, want ~0.001", got.FontMatrix[0])
	}
}
