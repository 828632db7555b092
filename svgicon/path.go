package svgicon

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	"seehuhn.de/go/svg2otf/glyph"
)

// UnsupportedPathError is spec §7's UnsupportedPath error kind: a path
// command letter outside the grammar this parser understands.
type UnsupportedPathError struct {
	Icon, Command string
}

func (e *UnsupportedPathError) Error() string {
	return fmt.Sprintf("svgicon: %s: unsupported path command %q", e.Icon, e.Command)
}

// ParsePath parses an SVG path "d" attribute value into a glyph.Outline,
// resolving relative commands to absolute coordinates and converting
// elliptical arcs to cubic Bézier approximations (glyph.Command has no
// arc variant, matching spec §3's PathCommand set).
func ParsePath(icon, d string) (glyph.Outline, error) {
	lex := newPathLexer(d)
	var out glyph.Outline

	var cx, cy float64       // current point
	var sx, sy float64       // start of current subpath
	var lastCmd byte         // last command letter seen (for smooth curve reflection)
	var lastC2x, lastC2y float64
	var lastQx, lastQy float64
	haveLastCubicCtrl := false
	haveLastQuadCtrl := false

	for {
		cmd, ok := lex.nextCommand()
		if !ok {
			break
		}
		abs := unicode.IsUpper(rune(cmd))
		lower := byte(unicode.ToLower(rune(cmd)))

		switch lower {
		case 'm':
			x, y, err := lex.point()
			if err != nil {
				return nil, &MalformedError{Icon: icon, Reason: err.Error()}
			}
			if !abs {
				x, y = cx+x, cy+y
			}
			out = append(out, glyph.Command{Kind: glyph.MoveTo, X: x, Y: y})
			cx, cy = x, y
			sx, sy = x, y
			// subsequent implicit pairs after 'm'/'M' are lineto
			for lex.hasMoreArgs() {
				x, y, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					x, y = cx+x, cy+y
				}
				out = append(out, glyph.Command{Kind: glyph.LineTo, X: x, Y: y})
				cx, cy = x, y
			}
			haveLastCubicCtrl, haveLastQuadCtrl = false, false

		case 'l':
			for {
				x, y, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					x, y = cx+x, cy+y
				}
				out = append(out, glyph.Command{Kind: glyph.LineTo, X: x, Y: y})
				cx, cy = x, y
				if !lex.hasMoreArgs() {
					break
				}
			}
			haveLastCubicCtrl, haveLastQuadCtrl = false, false

		case 'h':
			for {
				x, err := lex.number()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					x = cx + x
				}
				out = append(out, glyph.Command{Kind: glyph.LineTo, X: x, Y: cy})
				cx = x
				if !lex.hasMoreArgs() {
					break
				}
			}
			haveLastCubicCtrl, haveLastQuadCtrl = false, false

		case 'v':
			for {
				y, err := lex.number()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					y = cy + y
				}
				out = append(out, glyph.Command{Kind: glyph.LineTo, X: cx, Y: y})
				cy = y
				if !lex.hasMoreArgs() {
					break
				}
			}
			haveLastCubicCtrl, haveLastQuadCtrl = false, false

		case 'c':
			for {
				x1, y1, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				x2, y2, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				x, y, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					x1, y1 = cx+x1, cy+y1
					x2, y2 = cx+x2, cy+y2
					x, y = cx+x, cy+y
				}
				out = append(out, glyph.Command{Kind: glyph.CubicTo, C1X: x1, C1Y: y1, C2X: x2, C2Y: y2, X: x, Y: y})
				lastC2x, lastC2y = x2, y2
				haveLastCubicCtrl = true
				cx, cy = x, y
				if !lex.hasMoreArgs() {
					break
				}
			}

		case 's':
			for {
				x2, y2, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				x, y, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					x2, y2 = cx+x2, cy+y2
					x, y = cx+x, cy+y
				}
				var x1, y1 float64
				if haveLastCubicCtrl && (lower == byte(unicode.ToLower(rune(lastCmd)))) {
					x1, y1 = 2*cx-lastC2x, 2*cy-lastC2y
				} else {
					x1, y1 = cx, cy
				}
				out = append(out, glyph.Command{Kind: glyph.CubicTo, C1X: x1, C1Y: y1, C2X: x2, C2Y: y2, X: x, Y: y})
				lastC2x, lastC2y = x2, y2
				haveLastCubicCtrl = true
				cx, cy = x, y
				if !lex.hasMoreArgs() {
					break
				}
			}

		case 'q':
			for {
				qx, qy, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				x, y, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					qx, qy = cx+qx, cy+qy
					x, y = cx+x, cy+y
				}
				out = append(out, glyph.Command{Kind: glyph.QuadTo, QX: qx, QY: qy, X: x, Y: y})
				lastQx, lastQy = qx, qy
				haveLastQuadCtrl = true
				cx, cy = x, y
				if !lex.hasMoreArgs() {
					break
				}
			}

		case 't':
			for {
				x, y, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					x, y = cx+x, cy+y
				}
				var qx, qy float64
				if haveLastQuadCtrl && (lower == byte(unicode.ToLower(rune(lastCmd)))) {
					qx, qy = 2*cx-lastQx, 2*cy-lastQy
				} else {
					qx, qy = cx, cy
				}
				out = append(out, glyph.Command{Kind: glyph.QuadTo, QX: qx, QY: qy, X: x, Y: y})
				lastQx, lastQy = qx, qy
				haveLastQuadCtrl = true
				cx, cy = x, y
				if !lex.hasMoreArgs() {
					break
				}
			}

		case 'a':
			for {
				rx, err := lex.number()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				ry, err := lex.number()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				rot, err := lex.number()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				large, err := lex.flag()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				sweep, err := lex.flag()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				x, y, err := lex.point()
				if err != nil {
					return nil, &MalformedError{Icon: icon, Reason: err.Error()}
				}
				if !abs {
					x, y = cx+x, cy+y
				}
				cubics := arcToCubics(cx, cy, rx, ry, rot, large, sweep, x, y)
				out = append(out, cubics...)
				cx, cy = x, y
				haveLastCubicCtrl, haveLastQuadCtrl = false, false
				if !lex.hasMoreArgs() {
					break
				}
			}

		case 'z':
			out = append(out, glyph.Command{Kind: glyph.Close})
			cx, cy = sx, sy
			haveLastCubicCtrl, haveLastQuadCtrl = false, false

		default:
			return nil, &UnsupportedPathError{Icon: icon, Command: string(cmd)}
		}

		lastCmd = cmd
	}

	return out, nil
}

// arcToCubics converts an SVG elliptical arc (endpoint parametrization)
// into a sequence of CubicTo commands, using the standard
// endpoint-to-center conversion from the SVG specification followed by
// one cubic Bézier segment per arc slice of at most 90 degrees.
func arcToCubics(x0, y0, rx, ry, rotDeg float64, large, sweep bool, x1, y1 float64) []glyph.Command {
	if rx == 0 || ry == 0 {
		return []glyph.Command{{Kind: glyph.LineTo, X: x1, Y: y1}}
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := rotDeg * math.Pi / 180

	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	dx2, dy2 := (x0-x1)/2, (y0-y1)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	sign := 1.0
	if large == sweep {
		sign = -1
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den > 1e-12 && num > 0 {
		co = sign * math.Sqrt(num/den)
	}
	cxp := co * (rx * y1p / ry)
	cyp := co * (-ry * x1p / rx)

	cx := cosPhi*cxp - sinPhi*cyp + (x0+x1)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+y1)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenProd := math.Hypot(ux, uy) * math.Hypot(vx, vy)
		c := dot / lenProd
		if c > 1 {
			c = 1
		} else if c < -1 {
			c = -1
		}
		a := math.Acos(c)
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	numSegs := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if numSegs < 1 {
		numSegs = 1
	}
	segTheta := dTheta / float64(numSegs)

	cmds := make([]glyph.Command, 0, numSegs)
	t := theta1
	for i := 0; i < numSegs; i++ {
		t0, t1 := t, t+segTheta
		cmds = append(cmds, arcSegmentToCubic(cx, cy, rx, ry, cosPhi, sinPhi, t0, t1))
		t = t1
	}
	return cmds
}

// arcSegmentToCubic approximates a single elliptical-arc slice (of at
// most 90 degrees) spanning parametric angles t0..t1 with one cubic
// Bézier, using the standard "4/3 * tan(delta/4)" control-point
// magnitude formula.
func arcSegmentToCubic(cx, cy, rx, ry, cosPhi, sinPhi, t0, t1 float64) glyph.Command {
	alpha := 4.0 / 3.0 * math.Tan((t1-t0)/4)

	ex := func(t float64) (float64, float64) {
		ex := math.Cos(t) * rx
		ey := math.Sin(t) * ry
		return cosPhi*ex - sinPhi*ey + cx, sinPhi*ex + cosPhi*ey + cy
	}
	edx := func(t float64) (float64, float64) {
		dx := -math.Sin(t) * rx
		dy := math.Cos(t) * ry
		return cosPhi*dx - sinPhi*dy, sinPhi*dx + cosPhi*dy
	}

	x0, y0 := ex(t0)
	x1, y1 := ex(t1)
	dx0, dy0 := edx(t0)
	dx1, dy1 := edx(t1)

	c1x, c1y := x0+alpha*dx0, y0+alpha*dy0
	c2x, c2y := x1-alpha*dx1, y1-alpha*dy1

	return glyph.Command{Kind: glyph.CubicTo, C1X: c1x, C1Y: c1y, C2X: c2x, C2Y: c2y, X: x1, Y: y1}
}

// pathLexer tokenizes an SVG path "d" string.
type pathLexer struct {
	s   string
	pos int
}

func newPathLexer(s string) *pathLexer { return &pathLexer{s: s} }

func (l *pathLexer) skipSep() {
	for l.pos < len(l.s) {
		c := l.s[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			l.pos++
			continue
		}
		break
	}
}

func (l *pathLexer) nextCommand() (byte, bool) {
	l.skipSep()
	if l.pos >= len(l.s) {
		return 0, false
	}
	c := l.s[l.pos]
	if isCommandLetter(c) {
		l.pos++
		return c, true
	}
	return 0, false
}

// isCommandLetter reports whether c stands in command position, which is
// true of any ASCII letter. Letters outside the supported grammar are
// still returned by nextCommand, so that ParsePath rejects them with an
// UnsupportedPathError.
func isCommandLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (l *pathLexer) hasMoreArgs() bool {
	l.skipSep()
	if l.pos >= len(l.s) {
		return false
	}
	c := l.s[l.pos]
	return !isCommandLetter(c)
}

func (l *pathLexer) number() (float64, error) {
	l.skipSep()
	start := l.pos
	if l.pos < len(l.s) && (l.s[l.pos] == '+' || l.s[l.pos] == '-') {
		l.pos++
	}
	for l.pos < len(l.s) && l.s[l.pos] >= '0' && l.s[l.pos] <= '9' {
		l.pos++
	}
	if l.pos < len(l.s) && l.s[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.s) && l.s[l.pos] >= '0' && l.s[l.pos] <= '9' {
			l.pos++
		}
	}
	if l.pos < len(l.s) && (l.s[l.pos] == 'e' || l.s[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.s) && (l.s[l.pos] == '+' || l.s[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.s) && l.s[l.pos] >= '0' && l.s[l.pos] <= '9' {
			l.pos++
		}
	}
	if start == l.pos {
		return 0, fmt.Errorf("expected number at offset %d in %q", start, l.s)
	}
	return strconv.ParseFloat(l.s[start:l.pos], 64)
}

func (l *pathLexer) flag() (bool, error) {
	l.skipSep()
	if l.pos >= len(l.s) {
		return false, fmt.Errorf("expected flag at end of path data")
	}
	c := l.s[l.pos]
	if c != '0' && c != '1' {
		return false, fmt.Errorf("expected flag (0 or 1), got %q", string(c))
	}
	l.pos++
	return c == '1', nil
}

func (l *pathLexer) point() (float64, float64, error) {
	x, err := l.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := l.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
