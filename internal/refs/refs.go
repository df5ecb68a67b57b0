// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refs validates, formats, sorts, and converts bibliography entries.
// Everything here is a pure function over Reference slices; the entries
// themselves are owned by the project state.
// Implements: prd003-referencias (R1-R5);
//
//	docs/ARCHITECTURE § References.
package refs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/escriba/pkg/types"
)

// yearRe matches a 4-digit year string.
var yearRe = regexp.MustCompile(`^\d{4}$`)

// Validate checks the fields a reference must carry before insertion.
// Failures are plain error values with human-readable messages; the caller
// aborts the single add/edit operation, never the session (R1.2).
func Validate(r types.Reference) error {
	var missing []string
	if strings.TrimSpace(r.Author) == "" {
		missing = append(missing, "autor")
	}
	if strings.TrimSpace(r.Year) == "" {
		missing = append(missing, "año")
	}
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "titulo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("campos requeridos vacíos: %s", strings.Join(missing, ", "))
	}
	if !yearRe.MatchString(strings.TrimSpace(r.Year)) {
		return fmt.Errorf("año inválido %q: se esperan 4 dígitos", r.Year)
	}
	return nil
}

// New builds an insertable reference: validated, numbered after the current
// list, and timestamped (R1.3).
func New(r types.Reference, existing []types.Reference) (types.Reference, error) {
	if r.Type == "" {
		r.Type = types.RefLibro
	}
	if err := Validate(r); err != nil {
		return types.Reference{}, err
	}
	r.ID = len(existing) + 1
	r.Added = time.Now().Format(time.RFC3339)
	return r, nil
}

// SortKey is the bibliography ordering key: the author text before the
// first comma, trimmed, lowercased, and with diacritics folded so accented
// surnames sort with their base letters (Álvarez before García) (R2.1).
func SortKey(r types.Reference) string {
	key := strings.ToLower(strings.TrimSpace(strings.SplitN(r.Author, ",", 2)[0]))
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, key); err == nil {
		key = folded
	}
	return key
}

// Sorted returns a copy ordered by first-author surname. The sort is
// stable, so insertion order breaks ties (R2.2). The input is never
// reordered: the stored list round-trips verbatim.
func Sorted(refs []types.Reference) []types.Reference {
	out := append([]types.Reference(nil), refs...)
	sort.SliceStable(out, func(i, j int) bool {
		return SortKey(out[i]) < SortKey(out[j])
	})
	return out
}

// SortedBy orders a copy by an alternate criterion: autor, año (descending,
// the recency view), titulo, or tipo. Unknown criteria fall back to autor.
func SortedBy(refs []types.Reference, criterion string) []types.Reference {
	out := append([]types.Reference(nil), refs...)
	switch criterion {
	case "año":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	case "titulo":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case "tipo":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(string(out[i].Type)) < strings.ToLower(string(out[j].Type))
		})
	default:
		return Sorted(refs)
	}
	return out
}

// Search returns the indices and entries whose author, title, or source
// contain term, case-insensitively (R4.1).
func Search(refs []types.Reference, term string) []types.Reference {
	term = strings.ToLower(term)
	var out []types.Reference
	for _, r := range refs {
		if strings.Contains(strings.ToLower(r.Author), term) ||
			strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Source), term) {
			out = append(out, r)
		}
	}
	return out
}

// Duplicate copies the entry at index, renumbers it after the list, and
// marks the title as a copy.
func Duplicate(refs []types.Reference, index int) (types.Reference, error) {
	if index < 0 || index >= len(refs) {
		return types.Reference{}, fmt.Errorf("índice de referencia inválido: %d", index)
	}
	dup := refs[index]
	dup.ID = len(refs) + 1
	dup.Title = dup.Title + " (Copia)"
	dup.Added = time.Now().Format(time.RFC3339)
	dup.Modified = ""
	return dup, nil
}

// Stats summarizes a reference list.
type Stats struct {
	Total     int            `json:"total" yaml:"total"`
	ByType    map[string]int `json:"por_tipo" yaml:"por_tipo"`
	ByYear    map[string]int `json:"por_año" yaml:"por_año"`
	YearRange string         `json:"rango_años" yaml:"rango_años"`
}

// Statistics counts entries per type and year and computes the year range
// over entries with numeric years (R4.2).
func Statistics(refs []types.Reference) Stats {
	s := Stats{
		Total:  len(refs),
		ByType: make(map[string]int),
		ByYear: make(map[string]int),
	}
	minYear, maxYear := "", ""
	for _, r := range refs {
		typ := string(r.Type)
		if typ == "" {
			typ = string(types.RefLibro)
		}
		s.ByType[typ]++
		year := r.Year
		if year == "" {
			year = "Sin año"
		}
		s.ByYear[year]++
		if yearRe.MatchString(r.Year) {
			if minYear == "" || r.Year < minYear {
				minYear = r.Year
			}
			if maxYear == "" || r.Year > maxYear {
				maxYear = r.Year
			}
		}
	}
	if minYear != "" {
		s.YearRange = minYear + "-" + maxYear
	}
	return s
}
