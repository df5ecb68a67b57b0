// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"sort"
	"strings"

	"github.com/pdiddy/escriba/pkg/types"
)

// AuthorYear is the identity under which citations and references are
// matched: first author's surname plus year.
type AuthorYear struct {
	Author string `json:"autor" yaml:"autor"`
	Year   string `json:"año" yaml:"año"`
}

// CoherenceReport holds the symmetric difference between cited and
// referenced works. Per prd001-citas R3.
type CoherenceReport struct {
	// Unreferenced lists cited works with no bibliography entry.
	Unreferenced []AuthorYear `json:"citas_sin_referencia" yaml:"citas_sin_referencia"`

	// Uncited lists bibliography entries never cited in the text.
	Uncited []AuthorYear `json:"referencias_sin_citar" yaml:"referencias_sin_citar"`

	// Complete reports whether both lists are empty.
	Complete bool `json:"coherencia_completa" yaml:"coherencia_completa"`
}

// surname extracts the first author's surname: the text before the first
// comma, " y ", or " & " separator.
func surname(author string) string {
	s := author
	for _, sep := range []string{",", " y ", " & "} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// CheckCoherence compares the {surname, year} pairs cited in the document
// against the pairs present in the bibliography and returns both orphan
// lists, sorted for stable output. Neither list blocks generation; the
// caller decides how loudly to warn.
func CheckCoherence(citations []types.Citation, refs []types.Reference) CoherenceReport {
	cited := make(map[AuthorYear]bool)
	for _, c := range citations {
		cited[AuthorYear{Author: surname(c.Author), Year: strings.TrimSpace(c.Year)}] = true
	}

	referenced := make(map[AuthorYear]bool)
	for _, r := range refs {
		referenced[AuthorYear{Author: surname(r.Author), Year: strings.TrimSpace(r.Year)}] = true
	}

	var report CoherenceReport
	for ay := range cited {
		if !referenced[ay] {
			report.Unreferenced = append(report.Unreferenced, ay)
		}
	}
	for ay := range referenced {
		if !cited[ay] {
			report.Uncited = append(report.Uncited, ay)
		}
	}

	sortAuthorYears(report.Unreferenced)
	sortAuthorYears(report.Uncited)
	report.Complete = len(report.Unreferenced) == 0 && len(report.Uncited) == 0
	return report
}

func sortAuthorYears(list []AuthorYear) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Author != list[j].Author {
			return list[i].Author < list[j].Author
		}
		return list[i].Year < list[j].Year
	})
}
