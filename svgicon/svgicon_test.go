package svgicon

import (
	"strings"
	"testing"

	"seehuhn.de/go/svg2otf/glyph"
)

func TestParseSquare(t *testing.T) {
	doc, err := Parse("square", strings.NewReader(`<svg><rect x="0" y="0" width="100" height="100"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Leaves) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(doc.Leaves))
	}
	r, ok := doc.Leaves[0].(*Rect)
	if !ok {
		t.Fatalf("expected *Rect, got %T", doc.Leaves[0])
	}
	if r.W != 100 || r.H != 100 {
		t.Fatalf("unexpected rect: %+v", r)
	}
}

func TestGroupTransformPropagation(t *testing.T) {
	doc, err := Parse("g", strings.NewReader(
		`<svg><g transform="translate(10,0)"><rect x="0" y="0" width="1" height="1"/></g></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	r := doc.Leaves[0].(*Rect)
	x, y := r.Transform.Apply(0, 0)
	if x != 10 || y != 0 {
		t.Fatalf("expected group transform pushed to leaf, got (%g,%g)", x, y)
	}
}

func TestGroupChildTransformOrder(t *testing.T) {
	doc, err := Parse("g", strings.NewReader(
		`<svg><g transform="scale(2)"><rect transform="translate(1,0)" x="0" y="0" width="1" height="1"/></g></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	r := doc.Leaves[0].(*Rect)
	x, y := r.Transform.Apply(0, 0)
	// The rect's own transform (translate) is innermost and applies
	// first: (0,0) -> (1,0). The group's transform (scale) applies
	// last: (1,0) -> (2,0).
	if x != 2 || y != 0 {
		t.Fatalf("expected non-commuting group+child transform to compose child-first, got (%g,%g)", x, y)
	}
}

func TestSquareOutlineThreeLines(t *testing.T) {
	doc, err := Parse("square", strings.NewReader(`<svg><rect x="0" y="0" width="100" height="100"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	o, err := Convert("square", doc.Leaves[0], false)
	if err != nil {
		t.Fatal(err)
	}
	lines := 0
	for _, cmd := range o {
		if cmd.Kind == glyph.LineTo {
			lines++
		}
	}
	if lines != 3 {
		t.Fatalf("expected 3 LineTo segments for an unrounded square, got %d", lines)
	}
}

func TestIgnoreShapesDropsRect(t *testing.T) {
	doc, err := Parse("square", strings.NewReader(`<svg><rect x="0" y="0" width="100" height="100"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	o, err := Convert("square", doc.Leaves[0], true)
	if err != nil {
		t.Fatal(err)
	}
	if o != nil {
		t.Fatalf("expected nil outline with ignoreShapes, got %v", o)
	}
}

func TestUnsupportedPathCommand(t *testing.T) {
	_, err := ParsePath("bad", "M0,0 B1,1")
	if err == nil {
		t.Fatal("expected UnsupportedPathError")
	}
	if _, ok := err.(*UnsupportedPathError); !ok {
		t.Fatalf("expected *UnsupportedPathError, got %T", err)
	}
}

func TestRoundedRectHasCurves(t *testing.T) {
	doc, err := Parse("rounded", strings.NewReader(`<svg><rect x="0" y="0" width="100" height="100" rx="10" ry="20"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	o, err := Convert("rounded", doc.Leaves[0], false)
	if err != nil {
		t.Fatal(err)
	}
	curves := 0
	for _, cmd := range o {
		if cmd.Kind == glyph.CubicTo {
			curves++
		}
	}
	if curves != 4 {
		t.Fatalf("expected 4 arc-derived cubics (one per corner), got %d", curves)
	}
}
