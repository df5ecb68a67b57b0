// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refs

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/escriba/pkg/types"
)

// bibEntryRe matches one @type{...} block. The parser is deliberately
// minimal: field lines of the form key = {value} or key = "value". Entries
// that do not yield author, year, and title are skipped, not errors.
var bibEntryRe = regexp.MustCompile(`@\w+\{[^@]+\}`)

// bibFieldMap maps BibTeX field names to the reference field they fill.
var bibTypeMap = map[string]types.ReferenceType{
	"book":          types.RefLibro,
	"article":       types.RefArticulo,
	"misc":          types.RefWeb,
	"online":        types.RefWeb,
	"phdthesis":     types.RefTesis,
	"mastersthesis": types.RefTesis,
	"inproceedings": types.RefConferencia,
	"techreport":    types.RefInforme,
}

// ImportBibTeX parses BibTeX content and returns the references it could
// extract, numbered after the existing list. Unparseable entries are
// counted in skipped (R5.1).
func ImportBibTeX(content string, existing []types.Reference) (imported []types.Reference, skipped int) {
	next := len(existing)
	for _, block := range bibEntryRe.FindAllString(content, -1) {
		ref, ok := parseBibEntry(block)
		if !ok {
			skipped++
			continue
		}
		next++
		ref.ID = next
		imported = append(imported, ref)
	}
	return imported, skipped
}

func parseBibEntry(block string) (types.Reference, bool) {
	var ref types.Reference

	head := strings.SplitN(block, "{", 2)[0]
	entryType := strings.ToLower(strings.TrimPrefix(head, "@"))
	if t, ok := bibTypeMap[entryType]; ok {
		ref.Type = t
	} else {
		ref.Type = types.RefLibro
	}

	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `,{}" `)
		switch key {
		case "author":
			ref.Author = value
		case "year":
			ref.Year = value
		case "title":
			ref.Title = value
		case "publisher", "journal", "institution", "url", "howpublished":
			if ref.Source == "" {
				ref.Source = value
			}
		}
	}

	if ref.Author == "" || ref.Year == "" || ref.Title == "" {
		return types.Reference{}, false
	}
	return ref, true
}

// WriteBibTeX renders the list as BibTeX for interop with reference
// managers (R5.2). Keys are Surname+Year.
func WriteBibTeX(w io.Writer, refs []types.Reference) error {
	var b strings.Builder
	for _, r := range Sorted(refs) {
		key := citationKey(r)
		fmt.Fprintf(&b, "@%s{%s,\n", bibEntryType(r.Type), key)
		fmt.Fprintf(&b, "  author = {%s},\n", r.Author)
		fmt.Fprintf(&b, "  title = {%s},\n", r.Title)
		fmt.Fprintf(&b, "  year = {%s},\n", r.Year)
		if r.Source != "" {
			fmt.Fprintf(&b, "  %s = {%s},\n", bibSourceField(r.Type), r.Source)
		}
		fmt.Fprintf(&b, "}\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func bibEntryType(t types.ReferenceType) string {
	switch t {
	case types.RefArticulo:
		return "article"
	case types.RefWeb:
		return "misc"
	case types.RefTesis:
		return "phdthesis"
	case types.RefConferencia:
		return "inproceedings"
	case types.RefInforme:
		return "techreport"
	default:
		return "book"
	}
}

func bibSourceField(t types.ReferenceType) string {
	switch t {
	case types.RefArticulo:
		return "journal"
	case types.RefWeb:
		return "url"
	case types.RefTesis:
		return "institution"
	default:
		return "publisher"
	}
}

// citationKey derives a Surname+Year BibTeX key, with non-alphanumeric
// runes dropped.
func citationKey(r types.Reference) string {
	surname := strings.TrimSpace(strings.SplitN(r.Author, ",", 2)[0])
	var b strings.Builder
	for _, c := range surname {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String() + r.Year
}
