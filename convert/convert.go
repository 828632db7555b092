// Package convert is the core pipeline the CLI in cmd/svg2otf drives: it
// turns a directory of SVG icons into a single OpenType/CFF2 font plus
// the list of (name, code point) pairs the companion artifact needs.
// The package does no file I/O of its own beyond reading through the
// fs.FS it is given, and it never partially emits a font: any per-icon
// fatal or table-assembly failure aborts before Export runs.
package convert

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"seehuhn.de/go/svg2otf/cff2"
	"seehuhn.de/go/svg2otf/glyph"
	"seehuhn.de/go/svg2otf/sfnt"
	"seehuhn.de/go/svg2otf/svgicon"
)

// firstPrivateUse is the first Private Use Area code point assigned to
// icons, per spec §6.
const firstPrivateUse = 0xE000

// Options controls the three caller-visible knobs from spec §6's CLI
// surface that reach the core (the rest — output paths, indentation,
// class name — are cmd/svg2otf's own concern).
type Options struct {
	Normalize    bool
	IgnoreShapes bool
	EmSize       float64
	FontName     string

	// Logger receives per-icon warnings and errors. A nil Logger uses
	// logrus's standard logger at its default level.
	Logger *logrus.Logger
}

// DuplicateIconNameError is raised when two input files stem to the
// same icon identifier.
type DuplicateIconNameError struct {
	Name string
}

func (e *DuplicateIconNameError) Error() string {
	return fmt.Sprintf("convert: duplicate icon name %q", e.Name)
}

// IconResult is one entry of the companion artifact: an icon's
// identifier and the Private Use Area code point assigned to it.
type IconResult struct {
	Name      string
	CodePoint rune
}

// Result is the outcome of a successful BuildFont call.
type Result struct {
	Font  []byte
	Icons []IconResult
}

// BuildFont discovers every "*.svg" file at the root of fsys, assigns
// code points in lexicographic name order starting at U+E000, and
// assembles a complete OpenType/CFF2 font from their outlines.
func BuildFont(fsys fs.FS, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("convert: reading input directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	stems := make(map[string]string) // stem -> filename, for duplicate detection
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".svg") {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".svg")
		if _, dup := stems[stem]; dup {
			return nil, &DuplicateIconNameError{Name: stem}
		}
		stems[stem] = e.Name()
		names = append(names, e.Name())
	}

	col := collate.New(language.Und)
	sort.Slice(names, func(i, j int) bool {
		return col.CompareString(strings.TrimSuffix(names[i], ".svg"), strings.TrimSuffix(names[j], ".svg")) < 0
	})

	// Glyph IDs equal icon index: spec §8 scenario 1 requires an empty
	// icon set to produce a char_strings INDEX of count 0, so this
	// pipeline reserves no implicit ".notdef" slot of its own.
	glyphs := make([]*glyph.Glyph, 0, len(names))
	icons := make([]IconResult, 0, len(names))
	codePoint := rune(firstPrivateUse)

	for _, filename := range names {
		stem := strings.TrimSuffix(filename, ".svg")
		f, err := fsys.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("convert: opening %s: %w", filename, err)
		}
		doc, err := svgicon.Parse(stem, f)
		f.Close()
		if err != nil {
			log.WithFields(logrus.Fields{"icon": stem, "err": err}).Error("malformed icon, aborting conversion")
			return nil, err
		}

		var outlines []glyph.Outline
		for _, leaf := range doc.Leaves {
			o, err := svgicon.Convert(stem, leaf, opts.IgnoreShapes)
			if err != nil {
				log.WithFields(logrus.Fields{"icon": stem, "err": err}).Error("unsupported path, aborting conversion")
				return nil, err
			}
			if o != nil {
				outlines = append(outlines, o)
			}
		}

		g, buildErr := glyph.Build(stem, codePoint, outlines, glyph.BuildOptions{
			Normalize: opts.Normalize,
			EmSize:    emSizeOf(opts),
		})
		if buildErr != nil {
			log.WithFields(logrus.Fields{"icon": stem}).Warn(buildErr.Error())
		}

		glyphs = append(glyphs, g)
		icons = append(icons, IconResult{Name: stem, CodePoint: codePoint})
		codePoint++
	}

	font, err := assembleFont(glyphs, opts)
	if err != nil {
		return nil, err
	}

	return &Result{Font: font, Icons: icons}, nil
}

func emSizeOf(opts Options) float64 {
	if opts.EmSize > 0 {
		return opts.EmSize
	}
	return glyph.DefaultEmSize
}

func assembleFont(glyphs []*glyph.Glyph, opts Options) ([]byte, error) {
	charStrings := make([][]byte, len(glyphs))
	metrics := make([]sfnt.HMetric, len(glyphs))
	var cmapEntries []sfnt.CmapEntry
	emSize := emSizeOf(opts)

	bbox := glyph.Rect{}
	for i, g := range glyphs {
		cs, err := cff2.EncodeCharString(g)
		if err != nil {
			return nil, fmt.Errorf("convert: encoding %q: %w", g.Name, err)
		}
		charStrings[i] = cs
		metrics[i] = sfnt.HMetric{AdvanceWidth: uint16(g.AdvanceWidth), LeftSideBearing: int16(g.BBox.XMin)}
		cmapEntries = append(cmapEntries, sfnt.CmapEntry{CodePoint: uint16(g.Unicode), GlyphID: uint16(i)})
		bbox = union(bbox, g.BBox)
	}

	table := &cff2.Table{CharStrings: charStrings}
	cff2Bytes, err := table.Encode()
	if err != nil {
		return nil, fmt.Errorf("convert: encoding CFF2 table: %w", err)
	}

	fontName := opts.FontName
	if fontName == "" {
		fontName = "icons"
	}

	firstChar, lastChar := uint16(0), uint16(0)
	if len(cmapEntries) > 0 {
		firstChar = cmapEntries[0].CodePoint
		lastChar = cmapEntries[len(cmapEntries)-1].CodePoint
	}

	f := &sfnt.Font{
		Head: sfnt.HeadInfo{
			UnitsPerEm: uint16(emSize),
			XMin:       int16(bbox.XMin), YMin: int16(bbox.YMin),
			XMax: int16(bbox.XMax), YMax: int16(bbox.YMax),
			LowestRecPPEM: 8,
		},
		Hhea: sfnt.HheaInfo{Ascent: int16(emSize * 0.95), Descent: int16(-emSize * 0.05), CaretSlopeRise: 1},
		OS2: sfnt.OS2Info{
			WeightClass: 400, WidthClass: 5, IsRegular: true,
			Ascent: int16(emSize * 0.95), Descent: int16(-emSize * 0.05),
			CapHeight: int16(emSize * 0.7), XHeight: int16(emSize * 0.5),
			FirstCharIndex: firstChar, LastCharIndex: lastChar,
		},
		Name: sfnt.NameInfo{
			Family: fontName, Subfamily: "Regular",
			FullName: fontName, PostScriptName: strings.ReplaceAll(fontName, " ", ""),
			Version: "1.000",
		},
		Metrics:   metrics,
		Cmap:      cmapEntries,
		NumGlyphs: uint16(len(glyphs)),
		CFF2:      cff2Bytes,
	}

	return f.Export()
}

func union(a, b glyph.Rect) glyph.Rect {
	if b.IsEmpty() {
		return a
	}
	if a.IsEmpty() {
		return b
	}
	return glyph.Rect{
		XMin: min(a.XMin, b.XMin), YMin: min(a.YMin, b.YMin),
		XMax: max(a.XMax, b.XMax), YMax: max(a.YMax, b.YMax),
	}
}
