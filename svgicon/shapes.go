package svgicon

import (
	"fmt"

	"seehuhn.de/go/svg2otf/affine"
	"seehuhn.de/go/svg2otf/glyph"
)

// ExpandRect renders a <rect> (with optional rounded corners) as the
// literal path "d" command sequence from spec §4.2. It exists both as
// the ground truth used internally by Convert and as a debugging aid
// for callers that want to see the expanded path text.
func ExpandRect(r *Rect) string {
	rx, ry := r.Rx, r.Ry
	if rx == 0 && ry == 0 {
		return fmt.Sprintf("M %g %g h %g v %g h %g z", r.X, r.Y, r.W, r.H, -r.W)
	}
	x, y, w, h := r.X, r.Y, r.W, r.H
	return fmt.Sprintf(
		"M %g %g h %g a %g %g 0 0 1 %g %g v %g a %g %g 0 0 1 %g %g h %g a %g %g 0 0 1 %g %g v %g a %g %g 0 0 1 %g %g z",
		x+rx, y,
		w-2*rx,
		rx, ry, rx, ry,
		h-2*ry,
		rx, ry, -rx, ry,
		-(w - 2*rx),
		rx, ry, -rx, -ry,
		-(h - 2*ry),
		rx, ry, rx, -ry,
	)
}

// ExpandCircle renders a <circle> as two half-arcs of radius r, per
// spec §4.2.
func ExpandCircle(c *Circle) string {
	return fmt.Sprintf(
		"M %g %g a %g %g 0 1 0 %g 0 a %g %g 0 1 0 %g 0 z",
		c.Cx-c.R, c.Cy,
		c.R, c.R, 2*c.R,
		c.R, c.R, -2*c.R,
	)
}

// ExpandEllipse renders an <ellipse> analogously to ExpandCircle.
func ExpandEllipse(e *Ellipse) string {
	return fmt.Sprintf(
		"M %g %g a %g %g 0 1 0 %g 0 a %g %g 0 1 0 %g 0 z",
		e.Cx-e.Rx, e.Cy,
		e.Rx, e.Ry, 2*e.Rx,
		e.Rx, e.Ry, -2*e.Rx,
	)
}

// Convert lowers a single leaf Node into a glyph.Outline in glyph
// (transformed) coordinates. When ignoreShapes is true, non-Path
// primitives are dropped and Convert returns (nil, nil) for them, per
// spec §4.2's shape-ignore mode.
func Convert(icon string, n Node, ignoreShapes bool) (glyph.Outline, error) {
	switch v := n.(type) {
	case *Path:
		o, err := ParsePath(icon, v.D)
		if err != nil {
			return nil, err
		}
		return applyTransform(o, v.Transform), nil
	case *Rect:
		if ignoreShapes {
			return nil, nil
		}
		if v.W <= 0 || v.H <= 0 {
			return nil, nil
		}
		o, err := ParsePath(icon, ExpandRect(v))
		if err != nil {
			return nil, err
		}
		return applyTransform(o, v.Transform), nil
	case *Circle:
		if ignoreShapes {
			return nil, nil
		}
		if v.R <= 0 {
			return nil, nil
		}
		o, err := ParsePath(icon, ExpandCircle(v))
		if err != nil {
			return nil, err
		}
		return applyTransform(o, v.Transform), nil
	case *Ellipse:
		if ignoreShapes {
			return nil, nil
		}
		if v.Rx <= 0 || v.Ry <= 0 {
			return nil, nil
		}
		o, err := ParsePath(icon, ExpandEllipse(v))
		if err != nil {
			return nil, err
		}
		return applyTransform(o, v.Transform), nil
	case *Line:
		if ignoreShapes {
			return nil, nil
		}
		o := glyph.Outline{
			{Kind: glyph.MoveTo, X: v.X1, Y: v.Y1},
			{Kind: glyph.LineTo, X: v.X2, Y: v.Y2},
		}
		return applyTransform(o, v.Transform), nil
	case *Polyline:
		if ignoreShapes {
			return nil, nil
		}
		return applyTransform(polyOutline(v.Points, false), v.Transform), nil
	case *Polygon:
		if ignoreShapes {
			return nil, nil
		}
		return applyTransform(polyOutline(v.Points, true), v.Transform), nil
	default:
		return nil, nil
	}
}

func polyOutline(pts []Point, closed bool) glyph.Outline {
	if len(pts) == 0 {
		return nil
	}
	o := make(glyph.Outline, 0, len(pts)+1)
	o = append(o, glyph.Command{Kind: glyph.MoveTo, X: pts[0].X, Y: pts[0].Y})
	for _, p := range pts[1:] {
		o = append(o, glyph.Command{Kind: glyph.LineTo, X: p.X, Y: p.Y})
	}
	if closed {
		o = append(o, glyph.Command{Kind: glyph.Close})
	}
	return o
}

func applyTransform(o glyph.Outline, m affine.Matrix) glyph.Outline {
	if m.IsIdentity() {
		return o
	}
	out := make(glyph.Outline, len(o))
	for i, cmd := range o {
		c := cmd
		switch c.Kind {
		case glyph.MoveTo, glyph.LineTo:
			c.X, c.Y = m.Apply(c.X, c.Y)
		case glyph.CubicTo:
			c.C1X, c.C1Y = m.Apply(c.C1X, c.C1Y)
			c.C2X, c.C2Y = m.Apply(c.C2X, c.C2Y)
			c.X, c.Y = m.Apply(c.X, c.Y)
		case glyph.QuadTo:
			c.QX, c.QY = m.Apply(c.QX, c.QY)
			c.X, c.Y = m.Apply(c.X, c.Y)
		}
		out[i] = c
	}
	return out
}
