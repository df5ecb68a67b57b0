// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks a project before document generation: blocking
// problems that make the output incomplete, and warnings about weak spots
// the author may still accept.
// Implements: prd004-ensamblado R6;
//
//	docs/ARCHITECTURE § Validation.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/escriba/internal/cite"
	"github.com/pdiddy/escriba/internal/section"
	"github.com/pdiddy/escriba/pkg/types"
)

// minSectionChars is the minimum content length for a required section.
const minSectionChars = 50

// requiredInfoFields must be filled before generation.
var requiredInfoFields = []string{"titulo", "estudiantes", "tutores"}

// infinitiveSuffixes detect Spanish infinitive verbs in the objectives
// section.
var infinitiveSuffixes = []string{"ar", "er", "ir"}

// Input is the project snapshot the checks run against.
type Input struct {
	Info       map[string]string
	Sections   map[string]types.Section
	Active     []string
	Content    map[string]string
	References []types.Reference
}

// Report separates blocking problems from advisories. Ready is false when
// any problem exists; warnings never block.
type Report struct {
	Problems []string `json:"problemas"`
	Warnings []string `json:"avisos"`
}

// Ready reports whether generation may proceed without override.
func (r Report) Ready() bool { return len(r.Problems) == 0 }

// Check runs every validation against the snapshot.
func Check(in Input) Report {
	var rep Report

	for _, field := range requiredInfoFields {
		if strings.TrimSpace(in.Info[field]) == "" {
			rep.Problems = append(rep.Problems, fmt.Sprintf("falta el campo %q en la información general", field))
		}
	}

	for _, id := range in.Active {
		s, ok := in.Sections[id]
		if !ok || s.Chapter || !s.Required {
			continue
		}
		content := strings.TrimSpace(in.Content[id])
		if len([]rune(content)) < minSectionChars {
			rep.Problems = append(rep.Problems, fmt.Sprintf(
				"la sección requerida %q tiene menos de %d caracteres", id, minSectionChars))
		}
	}

	rep.Warnings = append(rep.Warnings, warnings(in)...)
	return rep
}

// warnings collects the advisory checks: a theory section without citation
// tags, an empty bibliography, objectives without infinitive verbs, and
// citation/reference orphans in either direction.
func warnings(in Input) []string {
	var out []string

	if marco := in.Content["marco_teorico"]; strings.TrimSpace(marco) != "" {
		if len(cite.Citations(marco)) == 0 {
			out = append(out, "el marco teórico no contiene etiquetas [CITA:...]")
		}
	}

	if len(in.References) == 0 {
		out = append(out, "el proyecto no tiene referencias bibliográficas")
	}

	if obj := strings.TrimSpace(in.Content["objetivos"]); obj != "" && !hasInfinitive(obj) {
		out = append(out, "los objetivos no parecen usar verbos en infinitivo")
	}

	coh := cite.CheckCoherence(cite.Citations(allText(in)), in.References)
	for _, c := range coh.Unreferenced {
		out = append(out, fmt.Sprintf("cita sin referencia: %s (%s)", c.Author, c.Year))
	}
	for _, r := range coh.Uncited {
		out = append(out, fmt.Sprintf("referencia sin citar: %s (%s)", r.Author, r.Year))
	}
	return out
}

// hasInfinitive reports whether any word looks like a Spanish infinitive.
// Words under four letters are skipped so prepositions like "ir a" do not
// trigger on their own.
func hasInfinitive(text string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:()")
		if len([]rune(word)) < 4 {
			continue
		}
		for _, suffix := range infinitiveSuffixes {
			if strings.HasSuffix(word, suffix) {
				return true
			}
		}
	}
	return false
}

// allText joins the content of every active section, in order.
func allText(in Input) string {
	var parts []string
	for _, id := range in.Active {
		if text := strings.TrimSpace(in.Content[id]); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Stats aggregates progress counters for the status display.
type Stats struct {
	Words       int     `json:"palabras"`
	Sections    int     `json:"secciones_activas"`
	WithContent int     `json:"secciones_con_contenido"`
	Completion  float64 `json:"avance"`
	References  int     `json:"referencias"`
	Citations   int     `json:"citas"`
}

// Statistics computes the progress counters. Completion is the fraction of
// active non-chapter sections that hold any content.
func Statistics(in Input) Stats {
	st := Stats{References: len(in.References)}

	contentSections := 0
	for _, id := range in.Active {
		s, ok := in.Sections[id]
		if !ok || s.Chapter {
			continue
		}
		contentSections++
		text := strings.TrimSpace(in.Content[id])
		if text == "" {
			continue
		}
		st.WithContent++
		st.Words += len(strings.Fields(text))
	}
	st.Sections = contentSections
	if contentSections > 0 {
		st.Completion = float64(st.WithContent) / float64(contentSections)
	}
	st.Citations = len(cite.Citations(allText(in)))
	return st
}

// FromRegistry builds the snapshot from live project pieces. It is a
// convenience for the CLI layer.
func FromRegistry(info map[string]string, reg *section.Registry, content map[string]string, references []types.Reference) Input {
	return Input{
		Info:       info,
		Sections:   reg.Available,
		Active:     reg.Active,
		Content:    content,
		References: references,
	}
}

// SortedProblems returns the report's problems sorted for stable display.
func (r Report) SortedProblems() []string {
	out := append([]string(nil), r.Problems...)
	sort.Strings(out)
	return out
}
