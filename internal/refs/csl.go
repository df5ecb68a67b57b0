// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refs

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/escriba/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-YAML schema so the output is
// consumable by Pandoc and reference managers (R5.3).
type CSLItem struct {
	ID        string    `yaml:"id"`
	Type      string    `yaml:"type"`
	Title     string    `yaml:"title"`
	Author    []CSLName `yaml:"author,omitempty"`
	Publisher string    `yaml:"publisher,omitempty"`
	URL       string    `yaml:"URL,omitempty"`
	Issued    *CSLDate  `yaml:"issued,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes the reference list as a CSL-YAML list to w, sorted the
// same way the bibliography renders.
func WriteCSL(w io.Writer, refs []types.Reference) error {
	items := make([]CSLItem, 0, len(refs))
	for _, r := range Sorted(refs) {
		items = append(items, toCSLItem(r))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(r types.Reference) CSLItem {
	item := CSLItem{
		ID:    citationKey(r),
		Type:  cslType(r.Type),
		Title: r.Title,
	}

	if name := parseAPAName(r.Author); name != (CSLName{}) {
		item.Author = []CSLName{name}
	}

	if r.Type == types.RefWeb {
		item.URL = r.Source
	} else {
		item.Publisher = r.Source
	}

	if year, err := strconv.Atoi(strings.TrimSpace(r.Year)); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}

	return item
}

func cslType(t types.ReferenceType) string {
	switch t {
	case types.RefArticulo:
		return "article-journal"
	case types.RefWeb:
		return "webpage"
	case types.RefTesis:
		return "thesis"
	case types.RefConferencia:
		return "paper-conference"
	case types.RefInforme:
		return "report"
	default:
		return "book"
	}
}

// parseAPAName splits an APA author string "Apellido, N." into CSL
// family/given parts. Strings without a comma (organizations) use the
// literal field.
func parseAPAName(author string) CSLName {
	author = strings.TrimSpace(author)
	if author == "" {
		return CSLName{}
	}
	family, given, found := strings.Cut(author, ",")
	if !found {
		return CSLName{Literal: author}
	}
	return CSLName{
		Family: strings.TrimSpace(family),
		Given:  strings.TrimSpace(given),
	}
}
