// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite parses the [CITA:...] tag mini-language embedded in section
// text and renders each well-formed tag as an APA inline or block citation.
// Implements: prd001-citas (R1, R2);
//
//	docs/ARCHITECTURE § Citation Processing.
package cite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/escriba/pkg/types"
)

// tagRe matches any bracketed token with the CITA: prefix. Whether the
// token is well formed is decided by Parse, not by the regex (R1.3).
var tagRe = regexp.MustCompile(`\[CITA:[^\]]*\]`)

// Parse decodes a single [CITA:...] token. It returns either a structured
// Citation or a ParseError describing what is wrong; it never fails in the
// Go sense. Malformed tags are data for the caller to report (R2.1).
func Parse(raw string) (types.Citation, *types.ParseError) {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "[CITA:"), "]")
	parts := strings.Split(inner, ":")

	if len(parts) < 3 {
		return types.Citation{}, &types.ParseError{
			Raw:    raw,
			Reason: "faltan campos: se esperaba [CITA:tipo:Autor:Año]",
		}
	}

	kind := types.CitationKind(parts[0])
	if !kind.Valid() {
		return types.Citation{}, &types.ParseError{
			Raw:    raw,
			Reason: fmt.Sprintf("tipo de cita desconocido: %q", parts[0]),
		}
	}

	c := types.Citation{
		Kind:   kind,
		Author: strings.TrimSpace(parts[1]),
		Year:   strings.TrimSpace(parts[2]),
		Raw:    raw,
	}

	if c.Author == "" {
		return types.Citation{}, &types.ParseError{Raw: raw, Reason: "autor vacío"}
	}
	if c.Year == "" {
		return types.Citation{}, &types.ParseError{Raw: raw, Reason: "año vacío"}
	}

	switch kind {
	case types.CiteTextual, types.CiteLarga:
		// Optional page number.
		if len(parts) == 4 {
			c.Extra = strings.TrimSpace(parts[3])
		} else if len(parts) > 4 {
			return types.Citation{}, &types.ParseError{
				Raw:    raw,
				Reason: fmt.Sprintf("demasiados campos para %s: se esperaba [CITA:%s:Autor:Año:Página]", kind, kind),
			}
		}
	case types.CitePersonal:
		// The note is mandatory and may itself contain colons.
		if len(parts) < 4 {
			return types.Citation{}, &types.ParseError{
				Raw:    raw,
				Reason: "personal requiere una nota: [CITA:personal:Autor:Año:comunicación personal]",
			}
		}
		c.Extra = strings.TrimSpace(strings.Join(parts[3:], ":"))
	default:
		if len(parts) > 3 {
			return types.Citation{}, &types.ParseError{
				Raw:    raw,
				Reason: fmt.Sprintf("el tipo %s no admite campo adicional", kind),
			}
		}
	}

	return c, nil
}

// Format renders a parsed citation as its APA replacement string. The
// leading space and the larga block form are part of the contract (R1.4).
//
// The multi-author collapse is checked before the kind dispatch, so a
// textual tag whose author field names several authors renders without its
// page number. This matches the original tool's behavior.
func Format(c types.Citation) string {
	author := strings.TrimSpace(c.Author)
	year := strings.TrimSpace(c.Year)

	if strings.Contains(author, " y ") || strings.Contains(author, " & ") || strings.Contains(author, ",") {
		if strings.Count(author, ",") >= 2 {
			first := strings.TrimSpace(strings.SplitN(author, ",", 2)[0])
			return fmt.Sprintf(" (%s et al., %s)", first, year)
		}
		return fmt.Sprintf(" (%s, %s)", author, year)
	}

	switch c.Kind {
	case types.CiteTextual:
		if c.Extra != "" {
			return fmt.Sprintf(" (%s, %s, p. %s)", author, year, c.Extra)
		}
		return fmt.Sprintf(" (%s, %s)", author, year)
	case types.CiteLarga:
		if c.Extra != "" {
			return fmt.Sprintf("\n\n\t(%s, %s, p. %s)\n\n", author, year, c.Extra)
		}
		return fmt.Sprintf("\n\n\t(%s, %s)\n\n", author, year)
	case types.CitePersonal:
		// Argument order (Autor, nota, Año) reproduces the original tool;
		// see DESIGN.md.
		return fmt.Sprintf(" (%s, %s, %s)", author, c.Extra, year)
	default:
		return fmt.Sprintf(" (%s, %s)", author, year)
	}
}

// Process replaces every well-formed tag in text with its APA rendering and
// leaves all other text, malformed tags included, unchanged (R1.5). Running
// Process on already-processed text is a no-op.
//
// The replacement carries a leading space so a tag typed flush against a
// word still renders separated; when the tag already follows whitespace the
// leading space is dropped to avoid doubling it.
func Process(text string) string {
	matches := tagRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		raw := text[m[0]:m[1]]
		if c, perr := Parse(raw); perr != nil {
			b.WriteString(raw)
		} else {
			rep := Format(c)
			if m[0] > 0 && isSpace(text[m[0]-1]) && strings.HasPrefix(rep, " ") {
				rep = rep[1:]
			}
			b.WriteString(rep)
		}
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Citations returns every well-formed citation in text, sorted by author
// then year for stable reporting (R1.6).
func Citations(text string) []types.Citation {
	var out []types.Citation
	for _, m := range tagRe.FindAllString(text, -1) {
		c, perr := Parse(m)
		if perr != nil {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Author != out[j].Author {
			return out[i].Author < out[j].Author
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// Errors returns a ParseError for every CITA-prefixed token that is not
// well formed (R2.2).
func Errors(text string) []types.ParseError {
	var out []types.ParseError
	for _, m := range tagRe.FindAllString(text, -1) {
		if _, perr := Parse(m); perr != nil {
			out = append(out, *perr)
		}
	}
	return out
}

// Near-miss patterns: parenthetical citations typed without tag syntax and
// bracketed Autor:Año tokens missing the CITA: prefix (R2.3).
var (
	bareParenRe   = regexp.MustCompile(`\(([^,()]+),\s*(\d{4})\)`)
	bareBracketRe = regexp.MustCompile(`\[([^:\[\]]+):(\d{4})\]`)
)

// Suggest scans raw (unprocessed) text for malformed or near-miss citation
// patterns and returns human-readable correction suggestions. Suggested
// tokens are never rewritten; the caller decides whether to warn or block.
func Suggest(text string) []string {
	var out []string
	for _, perr := range Errors(text) {
		out = append(out, fmt.Sprintf("%q: %s", perr.Raw, perr.Reason))
	}
	for _, m := range bareParenRe.FindAllString(text, -1) {
		out = append(out, fmt.Sprintf("%q: usar [CITA:parafraseo:Autor:Año]", m))
	}
	for _, m := range bareBracketRe.FindAllString(text, -1) {
		out = append(out, fmt.Sprintf("%q: falta el prefijo CITA: — usar [CITA:tipo:Autor:Año]", m))
	}
	return out
}

// templates holds the insertion skeleton for each kind, shown by the CLI
// when the author asks for a citation of that kind.
var templates = map[types.CitationKind]string{
	types.CiteTextual:       "[CITA:textual:Apellido:Año:Página]",
	types.CiteParafraseo:    "[CITA:parafraseo:Apellido:Año]",
	types.CiteLarga:         "[CITA:larga:Apellido:Año:Página]",
	types.CiteWeb:           "[CITA:web:Organización:Año]",
	types.CiteMultiple:      "[CITA:multiple:Apellido1 y Apellido2:Año]",
	types.CitePersonal:      "[CITA:personal:Apellido:Año:comunicación personal]",
	types.CiteInstitucional: "[CITA:institucional:NombreCompleto:Año]",
}

// Template returns the insertion skeleton for kind, falling back to the
// parafraseo form for unknown kinds.
func Template(kind types.CitationKind) string {
	if t, ok := templates[kind]; ok {
		return t
	}
	return templates[types.CiteParafraseo]
}
