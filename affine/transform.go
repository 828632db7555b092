package affine

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses an SVG "transform" attribute value, a space- or
// comma-separated list of functions (matrix, translate, scale, rotate,
// skewX, skewY), and returns the composed Matrix. A transform list
// "A B" is equivalent to the nesting "<g transform=A><g transform=B>",
// so the last-listed function applies to the content first and the
// first-listed function applies last: "translate(10,0) scale(2)"
// scales first, then translates.
func Parse(s string) (Matrix, error) {
	m := Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		name, args, tail, err := nextFunc(rest)
		if err != nil {
			return Identity, err
		}
		fn, err := makeFunc(name, args)
		if err != nil {
			return Identity, err
		}
		m = fn.Mul(m)
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tail), ","))
	}
	return m, nil
}

func nextFunc(s string) (name string, args []float64, tail string, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", nil, "", fmt.Errorf("affine: malformed transform %q", s)
	}
	name = strings.TrimSpace(s[:open])
	close := strings.IndexByte(s[open:], ')')
	if close < 0 {
		return "", nil, "", fmt.Errorf("affine: unterminated transform %q", s)
	}
	close += open
	argStr := s[open+1 : close]
	args, err = parseNumberList(argStr)
	if err != nil {
		return "", nil, "", err
	}
	return name, args, s[close+1:], nil
}

func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("affine: bad number %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func makeFunc(name string, a []float64) (Matrix, error) {
	deg2rad := func(d float64) float64 { return d * 3.14159265358979323846 / 180 }
	switch name {
	case "matrix":
		if len(a) != 6 {
			return Identity, fmt.Errorf("affine: matrix() wants 6 args, got %d", len(a))
		}
		return Matrix{a[0], a[1], a[2], a[3], a[4], a[5]}, nil
	case "translate":
		switch len(a) {
		case 1:
			return Translate(a[0], 0), nil
		case 2:
			return Translate(a[0], a[1]), nil
		}
		return Identity, fmt.Errorf("affine: translate() wants 1 or 2 args, got %d", len(a))
	case "scale":
		switch len(a) {
		case 1:
			return Scale(a[0], a[0]), nil
		case 2:
			return Scale(a[0], a[1]), nil
		}
		return Identity, fmt.Errorf("affine: scale() wants 1 or 2 args, got %d", len(a))
	case "rotate":
		switch len(a) {
		case 1:
			return Rotate(deg2rad(a[0])), nil
		case 3:
			// rotate(angle,cx,cy) is defined as the transform list
			// "translate(cx,cy) rotate(angle) translate(-cx,-cy)", so
			// translate(-cx,-cy) (listed last) applies first.
			return Translate(-a[1], -a[2]).Mul(Rotate(deg2rad(a[0]))).Mul(Translate(a[1], a[2])), nil
		}
		return Identity, fmt.Errorf("affine: rotate() wants 1 or 3 args, got %d", len(a))
	case "skewX":
		if len(a) != 1 {
			return Identity, fmt.Errorf("affine: skewX() wants 1 arg, got %d", len(a))
		}
		return SkewX(deg2rad(a[0])), nil
	case "skewY":
		if len(a) != 1 {
			return Identity, fmt.Errorf("affine: skewY() wants 1 arg, got %d", len(a))
		}
		return SkewY(deg2rad(a[0])), nil
	default:
		return Identity, fmt.Errorf("affine: unknown transform function %q", name)
	}
}
