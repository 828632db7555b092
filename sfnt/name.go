package sfnt

import (
	"sort"
	"unicode/utf16"
)

// NameInfo holds the strings emitted into the "name" table. Unlike the
// locale-aware teacher implementation this is derived from (which
// tracks a Table per language/country pair), an icon font only ever
// ships Windows/US-English names, so NameInfo is a single flat record.
type NameInfo struct {
	Family         string
	Subfamily      string
	FullName       string
	PostScriptName string
	Version        string
}

const (
	nameIDFamily         = 1
	nameIDSubfamily      = 2
	nameIDFullName       = 4
	nameIDVersion        = 5
	nameIDPostScriptName = 6
)

// Encode builds a "name" table with a single Windows, Unicode BMP,
// US-English name record per populated field.
func (info *NameInfo) Encode() []byte {
	type entry struct {
		id   uint16
		text string
	}
	var entries []entry
	add := func(id uint16, s string) {
		if s != "" {
			entries = append(entries, entry{id, s})
		}
	}
	add(nameIDFamily, info.Family)
	add(nameIDSubfamily, info.Subfamily)
	add(nameIDFullName, info.FullName)
	add(nameIDVersion, info.Version)
	add(nameIDPostScriptName, info.PostScriptName)
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	numRec := len(entries)
	startOfStrings := 6 + numRec*12
	var strData []byte
	res := make([]byte, startOfStrings)

	putU16 := func(off int, v uint16) {
		res[off] = byte(v >> 8)
		res[off+1] = byte(v)
	}
	putU16(2, uint16(numRec))
	putU16(4, uint16(startOfStrings))

	for i, e := range entries {
		encoded := utf16BE(e.text)
		offs := len(strData)
		strData = append(strData, encoded...)

		base := 6 + i*12
		putU16(base+0, 3) // platformID: Windows
		putU16(base+2, 1) // encodingID: Unicode BMP
		putU16(base+4, 0x0409) // languageID: en-US
		putU16(base+6, e.id)
		putU16(base+8, uint16(len(encoded)))
		putU16(base+10, uint16(offs))
	}

	return append(res, strData...)
}

func utf16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[2*i] = byte(u >> 8)
		out[2*i+1] = byte(u)
	}
	return out
}
