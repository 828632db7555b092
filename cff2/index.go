package cff2

import "encoding/binary"

// Index is a CFF2 INDEX: a count-prefixed array of variable-length
// byte strings sharing a single minimally-sized offset array. This
// widens CFF1's u16 count to a u32 count, per the CFF2 specification
// and spec §4.5.
type Index struct {
	Data [][]byte
}

// NewIndex wraps data as an Index.
func NewIndex(data [][]byte) *Index {
	return &Index{Data: data}
}

// Encode serializes the INDEX. When Data is empty, only the 4-byte
// count field is written.
func (idx *Index) Encode() []byte {
	count := len(idx.Data)
	if count == 0 {
		return []byte{0, 0, 0, 0}
	}

	bodyLength := 0
	for _, d := range idx.Data {
		bodyLength += len(d)
	}

	offSize := indexOffSize(uint32(bodyLength + 1))

	out := make([]byte, 0, 5+(count+1)*offSize+bodyLength)
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(count))
	out = append(out, hdr[:]...)
	out = append(out, byte(offSize))

	pos := uint32(1)
	var buf [4]byte
	writeOffset := func(v uint32) {
		for j := 0; j < offSize; j++ {
			buf[j] = byte(v >> (8 * uint(offSize-j-1)))
		}
		out = append(out, buf[:offSize]...)
	}
	for i := 0; i <= count; i++ {
		writeOffset(pos)
		if i < count {
			pos += uint32(len(idx.Data[i]))
		}
	}
	for _, d := range idx.Data {
		out = append(out, d...)
	}
	return out
}

// Size returns the number of bytes idx.Encode() would produce, without
// allocating the payload.
func (idx *Index) Size() int {
	count := len(idx.Data)
	if count == 0 {
		return 4
	}
	bodyLength := 0
	for _, d := range idx.Data {
		bodyLength += len(d)
	}
	offSize := indexOffSize(uint32(bodyLength + 1))
	return 4 + 1 + (count+1)*offSize + bodyLength
}

func indexOffSize(maxOffset uint32) int {
	switch {
	case maxOffset < 1<<8:
		return 1
	case maxOffset < 1<<16:
		return 2
	case maxOffset < 1<<24:
		return 3
	default:
		return 4
	}
}

// DecodeIndex reads an Index from the front of buf and returns it
// together with the number of bytes consumed.
func DecodeIndex(buf []byte) (*Index, int, error) {
	if len(buf) < 4 {
		return nil, 0, errMalformed("truncated INDEX count")
	}
	count := binary.BigEndian.Uint32(buf)
	if count == 0 {
		return &Index{}, 4, nil
	}
	if len(buf) < 5 {
		return nil, 0, errMalformed("truncated INDEX header")
	}
	offSize := int(buf[4])
	if offSize < 1 || offSize > 4 {
		return nil, 0, errMalformed("invalid INDEX offSize %d", offSize)
	}

	pos := 5
	offsets := make([]uint32, count+1)
	for i := 0; i <= int(count); i++ {
		if pos+offSize > len(buf) {
			return nil, 0, errMalformed("truncated INDEX offset array")
		}
		var v uint32
		for j := 0; j < offSize; j++ {
			v = v<<8 | uint32(buf[pos+j])
		}
		offsets[i] = v
		pos += offSize
	}
	for i := 0; i <= int(count); i++ {
		if offsets[i] == 0 {
			return nil, 0, errMalformed("INDEX offset %d is zero", i)
		}
		offsets[i]--
	}
	dataStart := pos
	total := int(offsets[count])
	if dataStart+total > len(buf) {
		return nil, 0, errMalformed("INDEX data runs past end of buffer")
	}
	data := make([][]byte, count)
	for i := 0; i < int(count); i++ {
		if offsets[i] > offsets[i+1] {
			return nil, 0, errMalformed("INDEX offsets not non-decreasing")
		}
		data[i] = buf[dataStart+int(offsets[i]) : dataStart+int(offsets[i+1])]
	}
	return &Index{Data: data}, dataStart + total, nil
}
