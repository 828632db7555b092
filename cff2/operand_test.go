package cff2

import "testing"

func TestOperandRoundTrip(t *testing.T) {
	values := []int32{-107, 0, 107, 108, 1131, -108, -1131, -1132, 1132, -32768, 32767, -32769, 32768, 1 << 20, -(1 << 20)}
	for _, v := range values {
		enc := EncodeOperand(v)
		got, n, err := DecodeOperand(enc)
		if err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		if n != len(enc) {
			t.Fatalf("v=%d: consumed %d, want %d", v, n, len(enc))
		}
		if got.Value != v {
			t.Fatalf("round-trip mismatch: v=%d got=%d", v, got.Value)
		}
		if got.Width != OperandWidth(v) {
			t.Fatalf("v=%d: width %d != OperandWidth %d", v, got.Width, OperandWidth(v))
		}
	}
}

func TestOperandWidthBoundaries(t *testing.T) {
	cases := []struct {
		v    int32
		want int
	}{
		{107, 1}, {108, 2}, {1131, 2}, {1132, 3},
		{-108, 2}, {-1131, 2}, {-1132, 3},
		{32767, 3}, {32768, 5}, {-32768, 3}, {-32769, 5},
	}
	for _, c := range cases {
		if got := OperandWidth(c.v); got != c.want {
			t.Errorf("OperandWidth(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}
