package affine

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func approxEqual(a, b Matrix) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	m := Translate(10, 20)
	x, y := m.Apply(1, 1)
	if x != 11 || y != 21 {
		t.Fatalf("Apply: got (%g,%g), want (11,21)", x, y)
	}
}

func TestMulOrder(t *testing.T) {
	// SVG's "translate(1,0) scale(2)" applies scale first (it's listed
	// last), then translate: (1,0) -> (2,0) -> (3,0).
	m := Scale(2, 2).Mul(Translate(1, 0))
	x, y := m.Apply(1, 0)
	if x != 3 || y != 0 {
		t.Fatalf("Mul order: got (%g,%g), want (3,0)", x, y)
	}
}

func TestParseCompose(t *testing.T) {
	got, err := Parse("translate(10,0) scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	want := Scale(2, 2).Mul(Translate(10, 0))
	if !approxEqual(got, want) {
		t.Fatalf("Parse: got %v, want %v", got, want)
	}
}

func TestParseMatrix(t *testing.T) {
	got, err := Parse("matrix(1,0,0,1,5,6)")
	if err != nil {
		t.Fatal(err)
	}
	want := Matrix{1, 0, 0, 1, 5, 6}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse("frobnicate(1)"); err == nil {
		t.Fatal("expected error for unknown transform function")
	}
}
