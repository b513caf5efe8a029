// Package csvimport turns uploaded spreadsheet exports into header-keyed rows.
package csvimport

import "strings"

// Supported field separators.
const (
	Semicolon = ';'
	Comma     = ','
	Tab       = '\t'
)

// DetectDelimiter guesses the field separator of a CSV export. Semicolon is the
// default because Hungarian-locale Excel writes it; a comma only wins when the
// text has no semicolon at all.
func DetectDelimiter(text string) rune {
	hasComma := strings.ContainsRune(text, Comma)
	hasSemicolon := strings.ContainsRune(text, Semicolon)

	switch {
	case hasComma && !hasSemicolon:
		return Comma
	case strings.ContainsRune(text, Tab):
		return Tab
	default:
		return Semicolon
	}
}
