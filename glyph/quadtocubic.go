package glyph

// quadToCubic rewrites every QuadTo in o as an equivalent CubicTo, using
// the pen position immediately preceding each command as (px, py).
func quadToCubic(o Outline) Outline {
	out := make(Outline, 0, len(o))
	px, py := 0.0, 0.0
	for _, cmd := range o {
		switch cmd.Kind {
		case QuadTo:
			cx, cy := cmd.QX, cmd.QY
			x, y := cmd.X, cmd.Y
			c1x := px + 2.0/3.0*(cx-px)
			c1y := py + 2.0/3.0*(cy-py)
			c2x := x + 2.0/3.0*(cx-x)
			c2y := y + 2.0/3.0*(cy-y)
			out = append(out, Command{
				Kind: CubicTo,
				C1X:  c1x, C1Y: c1y,
				C2X: c2x, C2Y: c2y,
				X: x, Y: y,
			})
			px, py = x, y
		default:
			out = append(out, cmd)
			switch cmd.Kind {
			case MoveTo, LineTo, CubicTo:
				px, py = cmd.X, cmd.Y
			}
		}
	}
	return out
}
