package cff2

import "encoding/binary"

// headerSize is the fixed 5-byte CFF2 table header: majorVersion(1),
// minorVersion(1), headerSize(1), topDictLength(2).
const headerSize = 5

// Table is the in-memory model of a CFF2 table, built once from a set
// of already-encoded glyph CharStrings and then serialized by Encode.
// Per spec §1's Non-goals, exactly one Font DICT with an empty Private
// DICT is ever produced, and no FDSelect is written (CFF2 omits
// FDSelect when the Font DICT INDEX has a single entry).
type Table struct {
	// FontMatrix, if non-nil, overrides the CFF2 default identity
	// (1/1000 unitsPerEm) matrix in the Top DICT.
	FontMatrix []float64

	// CharStrings holds one CFF2 CharString per glyph; index i is glyph
	// ID i. No ".notdef" glyph is added by this package.
	CharStrings [][]byte
}

// maxIterations bounds the fixed-point offset convergence loop. Per
// spec §8's convergence law, four iterations always suffice: this
// table has exactly two mutually dependent structures (the Top DICT
// and the single Font DICT), each of which can widen at most a few
// times before hitting the 5-byte operand ceiling.
const maxIterations = 4

// Encode runs the offset-convergence algorithm from spec §4.6 and
// serializes the table as
//
//	header | topDict | globalSubrs | charStrings | fdArray | privateDict
//
// (globalSubrs and the Font DICT's Private DICT are always empty, per
// this package's Non-goals; the layout still reserves their slots so a
// future writer that needs local subroutines can add them without
// reshuffling the rest of the table).
func (t *Table) Encode() ([]byte, error) {
	charStringsIdx := NewIndex(t.CharStrings)
	charStringsBytes := charStringsIdx.Encode()

	globalSubrsBytes := NewIndex(nil).Encode()

	var privateDict Dict // always empty: no hints, no local subrs
	privateDictBytes := privateDict.Encode()

	// Seed both lengths as if the dynamic offsets were zero (narrowest
	// possible encoding); the loop below only ever discovers that an
	// offset needs a *wider* encoding than the previous guess, so
	// operand widths are monotone non-decreasing across iterations,
	// exactly as spec §4.6's pseudocode describes.
	topDictLen := t.buildTopDict(0, 0).Size()
	fdArrayLen := buildFDArray(0, 0).Size()

	var topDictBytes, fdArrayBytes []byte
	converged := false
	for iter := 0; iter < maxIterations; iter++ {
		charStringsOffset := headerSize + topDictLen + len(globalSubrsBytes)
		fdArrayOffset := charStringsOffset + len(charStringsBytes)
		privateOffset := fdArrayOffset + fdArrayLen

		topDict := t.buildTopDict(int32(charStringsOffset), int32(fdArrayOffset))
		fdArray := buildFDArray(int32(len(privateDictBytes)), int32(privateOffset))

		topDictBytes = topDict.Encode()
		fdArrayBytes = fdArray.Encode()

		newTopDictLen := len(topDictBytes)
		newFDArrayLen := len(fdArrayBytes)

		if newTopDictLen == topDictLen && newFDArrayLen == fdArrayLen {
			converged = true
			break
		}
		topDictLen = newTopDictLen
		fdArrayLen = newFDArrayLen
	}
	if !converged {
		return nil, errOverflow("offset convergence did not stabilize within %d iterations", maxIterations)
	}
	if topDictLen > 1<<16-1 {
		return nil, errOverflow("top dict length %d exceeds u16 range", topDictLen)
	}

	out := make([]byte, 0, headerSize+topDictLen+len(globalSubrsBytes)+len(charStringsBytes)+fdArrayLen+len(privateDictBytes))
	out = append(out, 2, 0, headerSize)
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(topDictLen))
	out = append(out, lenBuf[:]...)
	out = append(out, topDictBytes...)
	out = append(out, globalSubrsBytes...)
	out = append(out, charStringsBytes...)
	out = append(out, fdArrayBytes...)
	out = append(out, privateDictBytes...)

	return out, nil
}

func (t *Table) buildTopDict(charStringsOffset, fdArrayOffset int32) Dict {
	var d Dict
	if len(t.FontMatrix) == 6 {
		ops := make([]Operand, 6)
		for i, v := range t.FontMatrix {
			iv := int32(v * 65536)
			ops[i] = Operand{Value: iv, Width: OperandWidth(iv)}
		}
		d = d.Set(OpFontMatrix, ops...)
	}
	d = d.SetInt(OpCharStrings, charStringsOffset)
	d = d.SetInt(OpFDArray, fdArrayOffset)
	return d
}

func buildFDArray(privateSize, privateOffset int32) *Index {
	var fd Dict
	fd = fd.SetIntPair(OpPrivate, privateSize, privateOffset)
	return NewIndex([][]byte{fd.Encode()})
}

// DecodeTable parses a previously-written CFF2 table, supporting the
// same restricted shape Encode produces (single Font DICT, no
// FDSelect) plus tolerating an ItemVariationStore offset on the Top
// DICT, which is accepted but ignored, per spec §1's Non-goals.
func DecodeTable(buf []byte) (*Table, error) {
	if len(buf) < headerSize {
		return nil, errMalformed("CFF2 table shorter than header")
	}
	if buf[0] != 2 {
		return nil, errMalformed("unsupported CFF2 major version %d", buf[0])
	}
	hdrSize := int(buf[2])
	topDictLen := int(binary.BigEndian.Uint16(buf[3:5]))
	if hdrSize+topDictLen > len(buf) {
		return nil, errMalformed("top dict runs past end of table")
	}
	topDict, err := DecodeDict(buf[hdrSize : hdrSize+topDictLen])
	if err != nil {
		return nil, err
	}

	pos := hdrSize + topDictLen
	_, n, err := DecodeIndex(buf[pos:])
	if err != nil {
		return nil, err
	}
	pos += n

	csOffs := topDict.Get(OpCharStrings)
	if len(csOffs) != 1 {
		return nil, errMalformed("top dict missing CharStrings offset")
	}
	csStart := int(csOffs[0].Value)
	if csStart < 0 || csStart > len(buf) {
		return nil, errMalformed("CharStrings offset out of range")
	}
	csIdx, _, err := DecodeIndex(buf[csStart:])
	if err != nil {
		return nil, err
	}

	t := &Table{CharStrings: csIdx.Data}

	if fm := topDict.Get(OpFontMatrix); len(fm) == 6 {
		t.FontMatrix = make([]float64, 6)
		for i, o := range fm {
			t.FontMatrix[i] = float64(o.Value) / 65536
		}
	}

	return t, nil
}
