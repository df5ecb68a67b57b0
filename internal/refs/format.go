// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refs

import (
	"fmt"
	"strings"

	"github.com/pdiddy/escriba/pkg/types"
)

// sourcePlaceholders describes the missing source per type. Generation is
// never blocked on an empty fuente; the placeholder names what is missing.
var sourcePlaceholders = map[types.ReferenceType]string{
	types.RefLibro:       "Editorial desconocida",
	types.RefArticulo:    "Revista desconocida",
	types.RefWeb:         "Sitio web",
	types.RefTesis:       "Institución",
	types.RefConferencia: "Congreso desconocido",
	types.RefInforme:     "Organismo desconocido",
}

// Format renders one reference in APA form. It is a pure function of
// {tipo, autor, año, titulo, fuente} with a fixed per-type template: no
// wrapping, no page numbers (R3.1).
func Format(r types.Reference) string {
	source := strings.TrimSpace(r.Source)
	if source == "" {
		if p, ok := sourcePlaceholders[r.Type]; ok {
			source = p
		} else {
			source = sourcePlaceholders[types.RefLibro]
		}
	}

	switch r.Type {
	case types.RefWeb:
		return fmt.Sprintf("%s (%s). %s. Recuperado de %s", r.Author, r.Year, r.Title, source)
	case types.RefTesis:
		return fmt.Sprintf("%s (%s). %s [Tesis]. %s.", r.Author, r.Year, r.Title, source)
	default:
		// Libro, Artículo, Conferencia, Informe, and unknown types share
		// the base template.
		return fmt.Sprintf("%s (%s). %s. %s.", r.Author, r.Year, r.Title, source)
	}
}

// ExportAPA renders the whole list, sorted by first-author surname, one
// blank line between entries (R3.2). Used by the stand-alone export and by
// tests; document assembly renders entries individually for the hanging
// indent.
func ExportAPA(refs []types.Reference) string {
	formatted := make([]string, 0, len(refs))
	for _, r := range Sorted(refs) {
		formatted = append(formatted, Format(r))
	}
	return strings.Join(formatted, "\n\n")
}
