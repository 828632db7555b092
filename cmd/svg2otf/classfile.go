package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	"seehuhn.de/go/svg2otf/convert"
)

// classTemplate renders the companion source artifact: a flat list of
// name = code_point declarations grouped under a named const block, per
// spec §6 ("schema is opaque to the core"). Emitting Go source is the
// natural choice for a Go host and needs nothing beyond text/template.
const classTemplate = `// Code generated by svg2otf. DO NOT EDIT.

package {{.Package}}

// {{.ClassName}} enumerates the Private Use Area code points assigned
// to each icon glyph in this font.
const (
{{- range .Icons}}
{{.Indent}}{{.Ident}} = '\U{{.Hex}}'
{{- end}}
)
`

type classFileIcon struct {
	Indent string
	Ident  string
	Hex    string
}

type classFileData struct {
	Package   string
	ClassName string
	Icons     []classFileIcon
}

func renderClassFile(className string, indent int, icons []convert.IconResult) ([]byte, error) {
	if indent < 0 {
		indent = 0
	}
	pad := strings.Repeat(" ", indent)
	data := classFileData{
		Package:   "icons",
		ClassName: className,
		Icons:     make([]classFileIcon, len(icons)),
	}
	for i, ic := range icons {
		data.Icons[i] = classFileIcon{
			Indent: pad,
			Ident:  identifier(className, ic.Name),
			Hex:    fmt.Sprintf("%08X", ic.CodePoint),
		}
	}

	tmpl, err := template.New("class").Parse(classTemplate)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	// go/format only validates the output here: its reformatted result
	// is discarded so that the -i indentation and single-space
	// declarations are kept as rendered.
	if _, err := format.Source(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("classfile: generated source does not parse: %w", err)
	}
	return buf.Bytes(), nil
}

// identifier turns an icon's kebab/snake-case file stem into an
// exported Go identifier, e.g. "arrow-left" -> "IconsArrowLeft".
func identifier(prefix, stem string) string {
	var b strings.Builder
	b.WriteString(prefix)
	upperNext := true
	for _, r := range stem {
		switch {
		case r == '-' || r == '_' || r == ' ':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
