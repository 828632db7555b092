package svgicon

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/svg2otf/affine"
)

// MalformedError is returned when an SVG document is not well-formed XML
// or carries an unparseable numeric attribute (spec §7's MalformedSvg
// error kind).
type MalformedError struct {
	Icon   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("svgicon: %s: malformed svg: %s", e.Icon, e.Reason)
}

// Parse reads a single SVG icon document from r. Unknown elements are
// silently skipped; group transforms are pushed down onto leaf nodes so
// that Document.Leaves carry fully composed transforms.
func Parse(icon string, r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	var stack []*Group
	root := &Group{Transform: affine.Identity}
	stack = append(stack, root)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedError{Icon: icon, Reason: err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node, isContainer, err := decodeElement(icon, t)
			if err != nil {
				return nil, err
			}
			if node == nil {
				if isContainer {
					g := &Group{Transform: affine.Identity}
					if tr, err := transformOf(icon, t); err != nil {
						return nil, err
					} else {
						g.Transform = tr
					}
					top := stack[len(stack)-1]
					top.Children = append(top.Children, g)
					stack = append(stack, g)
				}
				continue
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, node)

		case xml.EndElement:
			if len(stack) > 1 && isContainerTag(t.Name.Local) {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var leaves []Node
	flatten(root, affine.Identity, &leaves)
	return &Document{Leaves: leaves}, nil
}

func isContainerTag(name string) bool {
	switch name {
	case "svg", "g":
		return true
	}
	return false
}

// decodeElement returns the leaf Node for a shape element, or
// (nil, true, nil) if t opens a container element (svg/g) that the
// caller should push onto the group stack, or (nil, false, nil) for an
// element type this parser does not understand (silently skipped, per
// spec §4.1).
func decodeElement(icon string, t xml.StartElement) (Node, bool, error) {
	tr, err := transformOf(icon, t)
	if err != nil {
		return nil, false, err
	}

	attr := attrMap(t)
	f := func(name string) (float64, error) { return parseFloatAttr(icon, attr, name) }

	switch t.Name.Local {
	case "svg", "g":
		return nil, true, nil
	case "path":
		return &Path{D: attr["d"], Transform: tr}, false, nil
	case "rect":
		x, err := f("x")
		if err != nil {
			return nil, false, err
		}
		y, err := f("y")
		if err != nil {
			return nil, false, err
		}
		w, err := f("width")
		if err != nil {
			return nil, false, err
		}
		h, err := f("height")
		if err != nil {
			return nil, false, err
		}
		rxStr, rxSet := attr["rx"]
		ryStr, rySet := attr["ry"]
		var rx, ry float64
		if rxSet {
			rx, err = strconv.ParseFloat(strings.TrimSpace(rxStr), 64)
			if err != nil {
				return nil, false, &MalformedError{Icon: icon, Reason: "rect rx: " + err.Error()}
			}
		}
		if rySet {
			ry, err = strconv.ParseFloat(strings.TrimSpace(ryStr), 64)
			if err != nil {
				return nil, false, &MalformedError{Icon: icon, Reason: "rect ry: " + err.Error()}
			}
		}
		switch {
		case rxSet && !rySet:
			ry = rx
		case rySet && !rxSet:
			rx = ry
		}
		return &Rect{X: x, Y: y, W: w, H: h, Rx: rx, Ry: ry, Transform: tr}, false, nil
	case "circle":
		cx, err := f("cx")
		if err != nil {
			return nil, false, err
		}
		cy, err := f("cy")
		if err != nil {
			return nil, false, err
		}
		r, err := f("r")
		if err != nil {
			return nil, false, err
		}
		return &Circle{Cx: cx, Cy: cy, R: r, Transform: tr}, false, nil
	case "ellipse":
		cx, err := f("cx")
		if err != nil {
			return nil, false, err
		}
		cy, err := f("cy")
		if err != nil {
			return nil, false, err
		}
		rx, err := f("rx")
		if err != nil {
			return nil, false, err
		}
		ry, err := f("ry")
		if err != nil {
			return nil, false, err
		}
		return &Ellipse{Cx: cx, Cy: cy, Rx: rx, Ry: ry, Transform: tr}, false, nil
	case "line":
		x1, err := f("x1")
		if err != nil {
			return nil, false, err
		}
		y1, err := f("y1")
		if err != nil {
			return nil, false, err
		}
		x2, err := f("x2")
		if err != nil {
			return nil, false, err
		}
		y2, err := f("y2")
		if err != nil {
			return nil, false, err
		}
		return &Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Transform: tr}, false, nil
	case "polyline", "polygon":
		pts, err := parsePoints(icon, attr["points"])
		if err != nil {
			return nil, false, err
		}
		if t.Name.Local == "polyline" {
			return &Polyline{Points: pts, Transform: tr}, false, nil
		}
		return &Polygon{Points: pts, Transform: tr}, false, nil
	default:
		return nil, false, nil
	}
}

func attrMap(t xml.StartElement) map[string]string {
	m := make(map[string]string, len(t.Attr))
	for _, a := range t.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}

func parseFloatAttr(icon string, attr map[string]string, name string) (float64, error) {
	v, ok := attr[name]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &MalformedError{Icon: icon, Reason: fmt.Sprintf("attribute %s=%q: %v", name, v, err)}
	}
	return f, nil
}

func transformOf(icon string, t xml.StartElement) (affine.Matrix, error) {
	for _, a := range t.Attr {
		if a.Name.Local == "transform" {
			m, err := affine.Parse(a.Value)
			if err != nil {
				return affine.Identity, &MalformedError{Icon: icon, Reason: err.Error()}
			}
			return m, nil
		}
	}
	return affine.Identity, nil
}

func parsePoints(icon, s string) ([]Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, &MalformedError{Icon: icon, Reason: "points attribute has an odd number of coordinates"}
	}
	pts := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, &MalformedError{Icon: icon, Reason: "points: " + err.Error()}
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, &MalformedError{Icon: icon, Reason: "points: " + err.Error()}
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// flatten walks the group tree top-down, composing each group's own
// transform onto the accumulated ancestor transform and collecting
// leaves with their fully composed transform. A group's own transform
// is more local than its ancestors' and a leaf's own transform is more
// local still, so each is composed as the left (first-applied) operand
// of Mul, per SVG's nesting-equivalence rule for transform lists.
func flatten(g *Group, parent affine.Matrix, out *[]Node) {
	composed := g.Transform.Mul(parent)
	for _, child := range g.Children {
		switch c := child.(type) {
		case *Group:
			flatten(c, composed, out)
		case *Path:
			*out = append(*out, &Path{D: c.D, Transform: c.Transform.Mul(composed)})
		case *Rect:
			cp := *c
			cp.Transform = c.Transform.Mul(composed)
			*out = append(*out, &cp)
		case *Circle:
			cp := *c
			cp.Transform = c.Transform.Mul(composed)
			*out = append(*out, &cp)
		case *Ellipse:
			cp := *c
			cp.Transform = c.Transform.Mul(composed)
			*out = append(*out, &cp)
		case *Line:
			cp := *c
			cp.Transform = c.Transform.Mul(composed)
			*out = append(*out, &cp)
		case *Polyline:
			cp := *c
			cp.Transform = c.Transform.Mul(composed)
			*out = append(*out, &cp)
		case *Polygon:
			cp := *c
			cp.Transform = c.Transform.Mul(composed)
			*out = append(*out, &cp)
		}
	}
}
