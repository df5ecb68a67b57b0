// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CitationKind identifies one of the seven supported citation tag variants.
// The string values are part of the tag wire format [CITA:kind:autor:año]
// and must match the tags authors type byte-for-byte.
// Per prd001-citas R1.1.
type CitationKind string

const (
	CiteTextual       CitationKind = "textual"
	CiteParafraseo    CitationKind = "parafraseo"
	CiteLarga         CitationKind = "larga"
	CiteWeb           CitationKind = "web"
	CiteMultiple      CitationKind = "multiple"
	CitePersonal      CitationKind = "personal"
	CiteInstitucional CitationKind = "institucional"
)

// CitationKinds lists every supported kind in declaration order.
var CitationKinds = []CitationKind{
	CiteTextual, CiteParafraseo, CiteLarga, CiteWeb,
	CiteMultiple, CitePersonal, CiteInstitucional,
}

// Valid reports whether k names a supported citation kind.
func (k CitationKind) Valid() bool {
	for _, kind := range CitationKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Citation is a parsed, well-formed citation tag.
// Per prd001-citas R1.2.
type Citation struct {
	// Kind is the tag variant.
	Kind CitationKind `json:"tipo" yaml:"tipo"`

	// Author is the author field as typed: "Apellido", "Apellido, N.",
	// "A y B", or an organization name.
	Author string `json:"autor" yaml:"autor"`

	// Year is the 4-digit year string. Not validated at parse time.
	Year string `json:"año" yaml:"año"`

	// Extra is the optional trailing field: a page number for textual and
	// larga, a note for personal. Empty when absent.
	Extra string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Raw is the full tag text as it appeared in the source.
	Raw string `json:"texto_completo" yaml:"texto_completo"`
}

// ParseError describes a token that uses citation bracket syntax but does
// not form a well-formed tag. It is data, not a Go error: malformed tags
// never abort processing. Per prd001-citas R2.
type ParseError struct {
	// Raw is the offending token.
	Raw string `json:"texto" yaml:"texto"`

	// Reason is a human-readable explanation of what is wrong.
	Reason string `json:"motivo" yaml:"motivo"`
}
