package cff2

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/svg2otf/glyph"
)

func square(x0, y0, size float64) glyph.Outline {
	return glyph.Outline{
		{Kind: glyph.MoveTo, X: x0, Y: y0},
		{Kind: glyph.LineTo, X: x0 + size, Y: y0},
		{Kind: glyph.LineTo, X: x0 + size, Y: y0 + size},
		{Kind: glyph.LineTo, X: x0, Y: y0 + size},
		{Kind: glyph.Close},
	}
}

func TestCharStringRoundTripLine(t *testing.T) {
	g := &glyph.Glyph{Outlines: []glyph.Outline{square(0, 0, 100)}}
	data, err := EncodeCharString(g)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeCharString(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(g.Outlines, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCharStringRoundTripCurve(t *testing.T) {
	o := glyph.Outline{
		{Kind: glyph.MoveTo, X: 0, Y: 0},
		{Kind: glyph.CubicTo, C1X: 10, C1Y: 0, C2X: 10, C2Y: 10, X: 0, Y: 10},
		{Kind: glyph.Close},
	}
	g := &glyph.Glyph{Outlines: []glyph.Outline{o}}
	data, err := EncodeCharString(g)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeCharString(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(g.Outlines, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCharStringSquareIsThreeLinesAndClose(t *testing.T) {
	g := &glyph.Glyph{Outlines: []glyph.Outline{square(0, 0, 100)}}
	data, err := EncodeCharString(g)
	if err != nil {
		t.Fatal(err)
	}
	// rmoveto, then a single rlineto carrying 3 pairs of deltas
	if len(data) == 0 {
		t.Fatal("empty charstring")
	}
	lineCount := 0
	for _, b := range data {
		if b == opRLineTo {
			lineCount++
		}
	}
	if lineCount != 1 {
		t.Fatalf("expected exactly one coalesced rlineto operator, found %d", lineCount)
	}
}
