package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented runes and drops the combining marks,
// so "Número" and "Numero" normalize to the same header key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader reduces a spreadsheet header to its canonical matching key:
// diacritics stripped, trailing colon dropped, whitespace collapsed, lowercased.
// Back-office spreadsheets are hand-maintained, so header matching has to
// survive stray accents, spaces and punctuation.
func NormalizeHeader(header string) string {
	folded, _, err := transform.String(stripMarks, header)
	if err != nil {
		folded = header
	}
	folded = strings.TrimSpace(folded)
	folded = strings.TrimSuffix(folded, ":")
	folded = strings.Join(strings.Fields(folded), " ")
	return strings.ToLower(folded)
}
