package cff2

import (
	"seehuhn.de/go/svg2otf/glyph"
)

// Type-2 CharString operators used by this package. CFF2 charstrings
// never carry a leading width value or an endchar operator (advance
// widths live in hmtx instead), so the operator set really is just
// these three plus their multi-argument "implied width" repetition,
// matching spec §4.4 exactly.
const (
	opRLineTo   = 5
	opRRCurveTo = 8
	opRMoveTo   = 21
)

// maxStackDepth bounds how many operands accumulate before a
// multi-segment rlineto/rrcurveto is flushed. Type-2 implementations
// commonly cap the argument stack at 48 entries; this package keeps
// that conservative limit even though CFF2 permits a larger stack, to
// stay interoperable with CFF1-era rasterizers.
const maxStackDepth = 48

// EncodeCharString translates one glyph's outlines into CFF2 Type-2
// CharString bytecode: an rmoveto per contour, deltas from the current
// pen position, and runs of same-kind segments coalesced into a single
// rlineto/rrcurveto per spec §4.4.
func EncodeCharString(g *glyph.Glyph) ([]byte, error) {
	var out []byte
	px, py := 0.0, 0.0

	for _, o := range g.Outlines {
		for _, contour := range o.Contours() {
			var lineArgs []int32
			var curveArgs []int32

			flushLines := func() {
				if len(lineArgs) == 0 {
					return
				}
				out = append(out, encodeArgs(lineArgs)...)
				out = append(out, opRLineTo)
				lineArgs = nil
			}
			flushCurves := func() {
				if len(curveArgs) == 0 {
					return
				}
				out = append(out, encodeArgs(curveArgs)...)
				out = append(out, opRRCurveTo)
				curveArgs = nil
			}

			for _, cmd := range contour {
				switch cmd.Kind {
				case glyph.MoveTo:
					dx, dy, err := delta(px, py, cmd.X, cmd.Y)
					if err != nil {
						return nil, err
					}
					out = append(out, encodeArgs([]int32{dx, dy})...)
					out = append(out, opRMoveTo)
					px, py = cmd.X, cmd.Y
				case glyph.LineTo:
					flushCurves()
					dx, dy, err := delta(px, py, cmd.X, cmd.Y)
					if err != nil {
						return nil, err
					}
					lineArgs = append(lineArgs, dx, dy)
					px, py = cmd.X, cmd.Y
					if len(lineArgs) >= maxStackDepth {
						flushLines()
					}
				case glyph.CubicTo:
					flushLines()
					d1x, d1y, err := delta(px, py, cmd.C1X, cmd.C1Y)
					if err != nil {
						return nil, err
					}
					d2x, d2y, err := delta(cmd.C1X, cmd.C1Y, cmd.C2X, cmd.C2Y)
					if err != nil {
						return nil, err
					}
					d3x, d3y, err := delta(cmd.C2X, cmd.C2Y, cmd.X, cmd.Y)
					if err != nil {
						return nil, err
					}
					curveArgs = append(curveArgs, d1x, d1y, d2x, d2y, d3x, d3y)
					px, py = cmd.X, cmd.Y
					if len(curveArgs) >= maxStackDepth-(maxStackDepth%6) {
						flushCurves()
					}
				case glyph.QuadTo:
					return nil, errUnsupported("QuadTo reached the CharString encoder unconverted")
				case glyph.Close:
					// implicit: the next MoveTo (or end of charstring) closes the contour
				}
			}
			flushLines()
			flushCurves()
		}
	}

	return out, nil
}

func delta(fromX, fromY, toX, toY float64) (int32, int32, error) {
	dx := toX - fromX
	dy := toY - fromY
	if dx < -32768 || dx > 32767 || dy < -32768 || dy > 32767 {
		return 0, 0, errMalformed("charstring delta (%g,%g) exceeds 16-bit range", dx, dy)
	}
	return int32(dx), int32(dy), nil
}

// encodeArgs encodes a run of CharString numeric operands. Only the
// integer forms of the Type-2 number encoding are needed here since
// glyph coordinates are integers after normalization (spec §4.3's
// em-square step always rounds to design units); the 16.16 fixed-point
// form (lead byte 255) is never produced.
func encodeArgs(args []int32) []byte {
	var out []byte
	for _, v := range args {
		out = append(out, encodeCharStringNumber(v)...)
	}
	return out
}

func encodeCharStringNumber(v int32) []byte {
	switch {
	case v >= -107 && v <= 107:
		return []byte{byte(v + 139)}
	case v >= 108 && v <= 1131:
		a := v - 108
		return []byte{byte(a>>8) + 247, byte(a)}
	case v >= -1131 && v <= -108:
		a := -108 - v
		return []byte{byte(a>>8) + 251, byte(a)}
	default:
		u := uint16(int16(v))
		return []byte{28, byte(u >> 8), byte(u)}
	}
}

// DecodeCharString reinterprets CharString bytecode back into a
// glyph.Glyph outline, given identical pen-state rules to
// EncodeCharString, so that DecodeCharString(EncodeCharString(g)) is
// bit-for-bit equal to g's outline geometry (spec §8's round-trip law).
// Each contour is returned as its own Outline ending in a Close, since
// CFF2 contours are always closed.
func DecodeCharString(data []byte) ([]glyph.Outline, error) {
	var outlines []glyph.Outline
	var cur glyph.Outline
	var stack []int32
	px, py := 0.0, 0.0

	flush := func() {
		if len(cur) > 0 {
			cur = append(cur, glyph.Command{Kind: glyph.Close})
			outlines = append(outlines, cur)
		}
	}

	i := 0
	for i < len(data) {
		b0 := data[i]
		switch {
		case b0 == opRMoveTo:
			if len(stack) < 2 {
				return nil, errMalformed("rmoveto needs 2 operands, got %d", len(stack))
			}
			flush()
			px += float64(stack[len(stack)-2])
			py += float64(stack[len(stack)-1])
			cur = glyph.Outline{{Kind: glyph.MoveTo, X: px, Y: py}}
			stack = nil
			i++
		case b0 == opRLineTo:
			if len(stack) < 2 || len(stack)%2 != 0 {
				return nil, errMalformed("rlineto needs an even number of operands, got %d", len(stack))
			}
			for j := 0; j < len(stack); j += 2 {
				px += float64(stack[j])
				py += float64(stack[j+1])
				cur = append(cur, glyph.Command{Kind: glyph.LineTo, X: px, Y: py})
			}
			stack = nil
			i++
		case b0 == opRRCurveTo:
			if len(stack) < 6 || len(stack)%6 != 0 {
				return nil, errMalformed("rrcurveto needs a multiple of 6 operands, got %d", len(stack))
			}
			for j := 0; j < len(stack); j += 6 {
				c1x := px + float64(stack[j])
				c1y := py + float64(stack[j+1])
				c2x := c1x + float64(stack[j+2])
				c2y := c1y + float64(stack[j+3])
				x := c2x + float64(stack[j+4])
				y := c2y + float64(stack[j+5])
				cur = append(cur, glyph.Command{Kind: glyph.CubicTo, C1X: c1x, C1Y: c1y, C2X: c2x, C2Y: c2y, X: x, Y: y})
				px, py = x, y
			}
			stack = nil
			i++
		case b0 >= 32 || b0 == 28:
			v, n, err := decodeCharStringNumber(data[i:])
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
			i += n
		default:
			return nil, errUnsupported("charstring operator %d not in {rmoveto, rlineto, rrcurveto}", b0)
		}
	}
	flush()
	return outlines, nil
}

func decodeCharStringNumber(buf []byte) (int32, int, error) {
	b0 := buf[0]
	switch {
	case b0 >= 32 && b0 <= 246:
		return int32(b0) - 139, 1, nil
	case b0 >= 247 && b0 <= 250:
		if len(buf) < 2 {
			return 0, 0, errMalformed("truncated charstring number")
		}
		return (int32(b0)-247)*256 + int32(buf[1]) + 108, 2, nil
	case b0 >= 251 && b0 <= 254:
		if len(buf) < 2 {
			return 0, 0, errMalformed("truncated charstring number")
		}
		return -(int32(b0)-251)*256 - int32(buf[1]) - 108, 2, nil
	case b0 == 28:
		if len(buf) < 3 {
			return 0, 0, errMalformed("truncated charstring number")
		}
		return int32(int16(uint16(buf[1])<<8 | uint16(buf[2]))), 3, nil
	default:
		return 0, 0, errMalformed("unsupported charstring number lead byte %#02x", b0)
	}
}
