// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/escriba/pkg/types"
)

// WriteReport writes a plain-text citation report for a document's raw
// text: totals, a per-kind breakdown, and the detail of every well-formed
// citation found. Per prd001-citas R4.
func WriteReport(w io.Writer, text string) error {
	citations := Citations(text)

	var b strings.Builder
	b.WriteString("INFORME DE CITAS DEL DOCUMENTO\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	authors := make(map[string]bool)
	for _, c := range citations {
		authors[c.Author] = true
	}
	fmt.Fprintf(&b, "Total de citas: %d\n", len(citations))
	fmt.Fprintf(&b, "Autores únicos: %d\n\n", len(authors))

	b.WriteString("CITAS POR TIPO:\n")
	for _, kind := range types.CitationKinds {
		n := 0
		for _, c := range citations {
			if c.Kind == kind {
				n++
			}
		}
		if n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", kind, n)
		}
	}

	b.WriteString("\nDETALLE DE CITAS:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for i, c := range citations {
		fmt.Fprintf(&b, "\n%d. %s (%s)\n", i+1, c.Author, c.Year)
		fmt.Fprintf(&b, "   Tipo: %s\n", c.Kind)
		if c.Extra != "" {
			fmt.Fprintf(&b, "   Info adicional: %s\n", c.Extra)
		}
		fmt.Fprintf(&b, "   Formato original: %s\n", c.Raw)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
