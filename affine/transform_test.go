package affine

import (
	"math"
	"testing"
)

func TestParseRotateAboutPoint(t *testing.T) {
	m, err := Parse("rotate(45,50,50)")
	if err != nil {
		t.Fatal(err)
	}
	x, y := m.Apply(60, 50)
	want := 50 + 10*math.Sqrt2/2
	if math.Abs(x-want) > 1e-9 || math.Abs(y-want) > 1e-9 {
		t.Fatalf("rotate about point: got (%g,%g), want (%g,%g)", x, y, want, want)
	}
}

func TestParseNonCommutingList(t *testing.T) {
	// "scale(2) translate(1,0)" lists translate last, so it applies to
	// the point first: (0,0) -> (1,0) -> (2,0).
	got, err := Parse("scale(2) translate(1,0)")
	if err != nil {
		t.Fatal(err)
	}
	x, y := got.Apply(0, 0)
	if x != 2 || y != 0 {
		t.Fatalf("got (%g,%g), want (2,0)", x, y)
	}
}
