package glyph

import (
	"math"
)

// DefaultEmSize is the canonical em-square size used when the caller does
// not override it.
const DefaultEmSize = 1000

// boundingBox computes the tight bounding box of a set of outlines,
// accounting for cubic Bézier control-point extrema, not just the path
// vertices.
func boundingBox(outlines []Outline) Rect {
	r := Rect{XMin: math.Inf(1), YMin: math.Inf(1), XMax: math.Inf(-1), YMax: math.Inf(-1)}
	extend := func(x, y float64) {
		if x < r.XMin {
			r.XMin = x
		}
		if x > r.XMax {
			r.XMax = x
		}
		if y < r.YMin {
			r.YMin = y
		}
		if y > r.YMax {
			r.YMax = y
		}
	}

	px, py := 0.0, 0.0
	for _, o := range outlines {
		for _, cmd := range o {
			switch cmd.Kind {
			case MoveTo, LineTo:
				extend(cmd.X, cmd.Y)
				px, py = cmd.X, cmd.Y
			case CubicTo:
				extend(cmd.X, cmd.Y)
				extendCubicExtrema(px, py, cmd.C1X, cmd.C1Y, cmd.C2X, cmd.C2Y, cmd.X, cmd.Y, extend)
				px, py = cmd.X, cmd.Y
			case QuadTo:
				extend(cmd.X, cmd.Y)
				px, py = cmd.X, cmd.Y
			case Close:
				// no coordinates
			}
		}
	}
	if math.IsInf(r.XMin, 1) {
		return Rect{}
	}
	return r
}

// extendCubicExtrema finds the local extrema of a cubic Bézier segment on
// each axis by solving the quadratic derivative for roots in (0,1), and
// feeds the corresponding points to extend.
func extendCubicExtrema(p0x, p0y, p1x, p1y, p2x, p2y, p3x, p3y float64, extend func(x, y float64)) {
	axisRoots := func(a0, a1, a2, a3 float64) []float64 {
		// derivative of a cubic Bezier: 3(1-t)^2(a1-a0) + 6(1-t)t(a2-a1) + 3t^2(a3-a2)
		ca := 3 * (-a0 + 3*a1 - 3*a2 + a3)
		cb := 6 * (a0 - 2*a1 + a2)
		cc := 3 * (a1 - a0)
		var roots []float64
		if math.Abs(ca) < 1e-12 {
			if math.Abs(cb) > 1e-12 {
				t := -cc / cb
				roots = append(roots, t)
			}
			return roots
		}
		disc := cb*cb - 4*ca*cc
		if disc < 0 {
			return roots
		}
		sq := math.Sqrt(disc)
		roots = append(roots, (-cb+sq)/(2*ca), (-cb-sq)/(2*ca))
		return roots
	}
	bezier := func(a0, a1, a2, a3, t float64) float64 {
		mt := 1 - t
		return mt*mt*mt*a0 + 3*mt*mt*t*a1 + 3*mt*t*t*a2 + t*t*t*a3
	}
	for _, t := range axisRoots(p0x, p1x, p2x, p3x) {
		if t > 0 && t < 1 {
			extend(bezier(p0x, p1x, p2x, p3x, t), bezier(p0y, p1y, p2y, p3y, t))
		}
	}
	for _, t := range axisRoots(p0y, p1y, p2y, p3y) {
		if t > 0 && t < 1 {
			extend(bezier(p0x, p1x, p2x, p3x, t), bezier(p0y, p1y, p2y, p3y, t))
		}
	}
}

// normalize scales and translates outlines so their bounding box fits a
// canonical emSize-unit em square with the baseline at y=0, rounding
// every coordinate to the nearest integer font design unit.
func normalize(outlines []Outline, bbox Rect, emSize float64) []Outline {
	if bbox.IsEmpty() {
		return outlines
	}
	w := bbox.XMax - bbox.XMin
	h := bbox.YMax - bbox.YMin
	scale := 1.0
	if w > 0 || h > 0 {
		if w >= h {
			scale = emSize / w
		} else {
			scale = emSize / h
		}
	}
	dx := -bbox.XMin
	dy := -bbox.YMin

	round := math.Round

	out := make([]Outline, len(outlines))
	for i, o := range outlines {
		no := make(Outline, len(o))
		for j, cmd := range o {
			c := cmd
			tx := func(x float64) float64 { return round((x + dx) * scale) }
			ty := func(y float64) float64 { return round((y + dy) * scale) }
			switch c.Kind {
			case MoveTo, LineTo:
				c.X, c.Y = tx(c.X), ty(c.Y)
			case CubicTo:
				c.C1X, c.C1Y = tx(c.C1X), ty(c.C1Y)
				c.C2X, c.C2Y = tx(c.C2X), ty(c.C2Y)
				c.X, c.Y = tx(c.X), ty(c.Y)
			case QuadTo:
				c.QX, c.QY = tx(c.QX), ty(c.QY)
				c.X, c.Y = tx(c.X), ty(c.Y)
			}
			no[j] = c
		}
		out[i] = no
	}
	return out
}
