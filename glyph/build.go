package glyph

import "fmt"

// BuildOptions controls the glyph builder pipeline (spec §4.3).
type BuildOptions struct {
	// Normalize enables em-square normalization (step 3). When false, the
	// caller has declared all icons pre-aligned and outlines pass through
	// with only decompaction and quad-to-cubic conversion applied.
	Normalize bool

	// EmSize is the target em-square size used when Normalize is true.
	// Zero defaults to DefaultEmSize.
	EmSize float64
}

// ErrEmptyOutline is returned (as a warning, not aborting the build) when
// a glyph has zero contours after normalization.
type ErrEmptyOutline struct {
	Name string
}

func (e *ErrEmptyOutline) Error() string {
	return fmt.Sprintf("glyph: %q has an empty outline", e.Name)
}

// Build runs the three-stage pipeline from spec §4.3 over the outlines
// collected for one icon: decompaction, quadratic-to-cubic conversion,
// and (optionally) em-square normalization. It always returns a *Glyph;
// if the resulting glyph has no contours it also returns an
// *ErrEmptyOutline, which callers should treat as a warning per the
// EmptyOutline error kind, not a fatal condition.
func Build(name string, unicode rune, outlines []Outline, opts BuildOptions) (*Glyph, error) {
	prepped := make([]Outline, 0, len(outlines))
	for _, o := range outlines {
		prepped = append(prepped, quadToCubic(decompact(o)))
	}

	bbox := boundingBox(prepped)

	emSize := opts.EmSize
	if emSize <= 0 {
		emSize = DefaultEmSize
	}

	final := prepped
	if opts.Normalize && !bbox.IsEmpty() {
		final = normalize(prepped, bbox, emSize)
		bbox = boundingBox(final)
	}

	// drop empty contours (MoveTo with no following segment before the
	// next MoveTo/end contributes no drawable geometry)
	var nonEmpty []Outline
	for _, o := range final {
		if hasDrawableSegment(o) {
			nonEmpty = append(nonEmpty, o)
		}
	}

	g := &Glyph{
		Name:     name,
		Unicode:  unicode,
		Outlines: nonEmpty,
		BBox:     bbox,
	}
	g.AdvanceWidth = int32(emSize)

	if len(nonEmpty) == 0 {
		return g, &ErrEmptyOutline{Name: name}
	}
	return g, nil
}

func hasDrawableSegment(o Outline) bool {
	for _, cmd := range o {
		if cmd.Kind == LineTo || cmd.Kind == CubicTo || cmd.Kind == QuadTo {
			return true
		}
	}
	return false
}
