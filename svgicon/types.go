// Package svgicon parses SVG icon documents into a typed element tree
// with fully composed transforms, and expands shape primitives into
// glyph outlines.
package svgicon

import "seehuhn.de/go/svg2otf/affine"

// Node is one element of a parsed SVG document.
type Node interface {
	isNode()
}

// Group is an SVG <g> element. This type only exists during parsing;
// flatten (see parse.go) resolves every Group into its leaves before a
// Document is returned, composing each Group's own Transform into its
// descendants.
type Group struct {
	Children  []Node
	Transform affine.Matrix
}

// Path is an SVG <path> element; D is the raw "d" attribute string.
type Path struct {
	D         string
	Transform affine.Matrix
}

// Rect is an SVG <rect> element. The SVG rounded-rect fallback rule
// (an absent rx falls back to ry and vice versa; if neither is present,
// both are zero) is already resolved by the time a Rect is built, so
// Rx and Ry are always the final radii.
type Rect struct {
	X, Y, W, H float64
	Rx, Ry     float64
	Transform  affine.Matrix
}

// Circle is an SVG <circle> element.
type Circle struct {
	Cx, Cy, R float64
	Transform affine.Matrix
}

// Ellipse is an SVG <ellipse> element.
type Ellipse struct {
	Cx, Cy, Rx, Ry float64
	Transform      affine.Matrix
}

// Line is an SVG <line> element.
type Line struct {
	X1, Y1, X2, Y2 float64
	Transform      affine.Matrix
}

// Point is a single vertex of a Polyline or Polygon.
type Point struct{ X, Y float64 }

// Polyline is an SVG <polyline> element.
type Polyline struct {
	Points    []Point
	Transform affine.Matrix
}

// Polygon is an SVG <polygon> element.
type Polygon struct {
	Points    []Point
	Transform affine.Matrix
}

func (*Group) isNode()    {}
func (*Path) isNode()     {}
func (*Rect) isNode()     {}
func (*Circle) isNode()   {}
func (*Ellipse) isNode()  {}
func (*Line) isNode()     {}
func (*Polyline) isNode() {}
func (*Polygon) isNode()  {}

// Document is a parsed SVG icon document: a flattened, leaves-only list
// of Nodes, each carrying its fully composed transform (spec §4.1's
// post-parse invariant: groups own no un-pushed transform).
type Document struct {
	Leaves []Node
}
