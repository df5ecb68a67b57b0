// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"regexp"
	"strings"
)

// IndentStyle is the paragraph indentation decision. Classification is a
// pure function evaluated once per paragraph; there is no shared formatting
// state between paragraphs.
type IndentStyle string

const (
	// IndentFirstLine is the APA first-line indent for ordinary prose.
	IndentFirstLine IndentStyle = "first_line"

	// IndentBlockQuote suppresses the first-line indent and applies a
	// symmetric left/right indent. Used for quotes over 40 words and for
	// manually indented paragraphs.
	IndentBlockQuote IndentStyle = "block_quote"

	// IndentListItem suppresses the first-line indent and applies a left
	// indent only.
	IndentListItem IndentStyle = "list_item"

	// IndentNone leaves the paragraph flush.
	IndentNone IndentStyle = "none"
)

// listMarkers are the bullet and number prefixes that mark a list item.
var listMarkers = []string{
	"•", "-", "*",
	"1.", "2.", "3.", "4.", "5.", "6.", "7.", "8.", "9.", "10.",
}

// noIndentTitles is the fixed set of section titles whose paragraphs never
// receive a first-line indent.
var noIndentTitles = map[string]bool{
	"RESUMEN":                true,
	"PALABRAS CLAVE":         true,
	"AGRADECIMIENTOS":        true,
	"ÍNDICE":                 true,
	"TABLA DE ILUSTRACIONES": true,
	"REFERENCIAS":            true,
}

// multiBreakRe collapses runs of three or more line breaks to exactly two.
var multiBreakRe = regexp.MustCompile(`\n{3,}`)

// NormalizeParagraphs prepares raw section content for paragraph splitting.
// Content that already uses double line breaks is kept (with 3+ breaks
// collapsed to 2); content written with single newlines is reinterpreted as
// one paragraph per non-empty line. Per prd004-ensamblado R2.
func NormalizeParagraphs(content string) string {
	text := strings.TrimSpace(content)
	if strings.Contains(text, "\n\n") {
		return multiBreakRe.ReplaceAllString(text, "\n\n")
	}
	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// Classify decides the indentation of one paragraph (R3). sectionIndent is
// false when the section title is in the no-indent set or the document's
// sangría option is off. The rules, in order:
//
//	>40 words                      → block quote
//	leading tab or five spaces      → block quote
//	bullet/number marker            → list item
//	otherwise                       → first-line indent or none
func Classify(paragraph string, sectionIndent bool) IndentStyle {
	if len(strings.Fields(paragraph)) > 40 {
		return IndentBlockQuote
	}
	if strings.HasPrefix(paragraph, "\t") || strings.HasPrefix(paragraph, "     ") {
		return IndentBlockQuote
	}
	trimmed := strings.TrimSpace(paragraph)
	for _, marker := range listMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return IndentListItem
		}
	}
	if sectionIndent {
		return IndentFirstLine
	}
	return IndentNone
}

// titleCleanRe keeps word characters, spaces, and hyphens; everything else
// (emoji prefixes included) is stripped before rendering.
var titleCleanRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// CleanTitle strips decoration from a section title.
func CleanTitle(title string) string {
	return strings.TrimSpace(titleCleanRe.ReplaceAllString(title, ""))
}

// SectionIndent reports whether paragraphs of the section with the given
// cleaned title take a first-line indent, given the document-level sangría
// option.
func SectionIndent(cleanedTitle string, sangria bool) bool {
	if !sangria {
		return false
	}
	return !noIndentTitles[strings.ToUpper(cleanedTitle)]
}
