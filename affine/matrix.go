// Package affine implements 2D affine transforms used to place SVG path
// data into glyph outline coordinates.
package affine

import "math"

// Matrix is a 2D affine transform in the same 6-element layout used by
// SVG's "matrix(a,b,c,d,e,f)" transform function. If M = [a b c d e f] is a
// Matrix, it corresponds to the 3x3 matrix
//
//	/ a b 0 \
//	| c d 0 |
//	\ e f 1 /
//
// A point (x, y, 1) is transformed by M into
//
//	(x y 1) * M = (a*x+c*y+e, b*x+d*y+f, 1)
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Apply transforms the point (x, y) by M.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return x*m[0] + y*m[2] + m[4], x*m[1] + y*m[3] + m[5]
}

// ApplyVector transforms a direction vector by M, ignoring translation.
func (m Matrix) ApplyVector(x, y float64) (float64, float64) {
	return x*m[0] + y*m[2], x*m[1] + y*m[3]
}

// Mul composes two transforms: m.Mul(n).Apply(p) == n.Apply(m.Apply(p)),
// i.e. m is applied first, then n. Composing an SVG transform list or a
// group's transform onto a child's own transform requires the more local
// (innermost, later-listed) transform as the left operand.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// Translate returns a translation transform.
func Translate(dx, dy float64) Matrix {
	return Matrix{1, 0, 0, 1, dx, dy}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation transform by phi radians.
func Rotate(phi float64) Matrix {
	c := math.Cos(phi)
	s := math.Sin(phi)
	return Matrix{c, s, -s, c, 0, 0}
}

// SkewX returns a transform that skews the x axis by phi radians.
func SkewX(phi float64) Matrix {
	return Matrix{1, 0, math.Tan(phi), 1, 0, 0}
}

// SkewY returns a transform that skews the y axis by phi radians.
func SkewY(phi float64) Matrix {
	return Matrix{1, math.Tan(phi), 0, 1, 0, 0}
}

// Det returns the determinant of the linear part of M.
func (m Matrix) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// IsIdentity reports whether M is (numerically) the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity
}
