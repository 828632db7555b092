package cff2

import "testing"

func TestIndexEmpty(t *testing.T) {
	idx := NewIndex(nil)
	enc := idx.Encode()
	if len(enc) != 4 {
		t.Fatalf("empty INDEX should be 4 bytes, got %d", len(enc))
	}
	got, n, err := DecodeIndex(enc)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || len(got.Data) != 0 {
		t.Fatalf("unexpected decode: n=%d data=%v", n, got.Data)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	data := [][]byte{
		[]byte("a"),
		[]byte("bcd"),
		{},
		[]byte("hello, world"),
	}
	idx := NewIndex(data)
	enc := idx.Encode()
	if len(enc) != idx.Size() {
		t.Fatalf("Size() = %d, Encode() len = %d", idx.Size(), len(enc))
	}
	got, n, err := DecodeIndex(enc)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(enc) {
		t.Fatalf("consumed %d, want %d", n, len(enc))
	}
	if len(got.Data) != len(data) {
		t.Fatalf("got %d entries, want %d", len(got.Data), len(data))
	}
	for i := range data {
		if string(got.Data[i]) != string(data[i]) {
			t.Errorf("entry %d: got %q, want %q", i, got.Data[i], data[i])
		}
	}
}

func TestIndexOffsetsNonDecreasing(t *testing.T) {
	idx := NewIndex([][]byte{[]byte("x"), []byte("yy"), []byte("zzz")})
	enc := idx.Encode()
	got, _, err := DecodeIndex(enc)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, d := range got.Data {
		total += len(d)
	}
	if total != 6 {
		t.Fatalf("expected total data length 6, got %d", total)
	}
}

func TestIndexOffSizeSelection(t *testing.T) {
	// body length 300 -> needs offSize 2 (300+1 >= 256)
	big := make([]byte, 300)
	idx := NewIndex([][]byte{big})
	enc := idx.Encode()
	offSize := enc[4]
	if offSize != 2 {
		t.Fatalf("expected offSize 2 for a 300-byte entry, got %d", offSize)
	}
}
