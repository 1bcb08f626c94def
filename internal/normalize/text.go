package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CleanText trims surrounding whitespace and collapses internal runs of
// whitespace to a single space.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase canonicalizes the case of a name field.
func TitleCase(s string) string {
	return titleCaser.String(CleanText(s))
}

// CanonicalIndustry lower-cases the cleaned value and looks it up in the
// industry vocabulary. Unrecognized values pass through title-cased
// verbatim rather than collapsing to "Unknown"; "Unknown" is reserved
// for genuinely absent values.
func CanonicalIndustry(s string, vocab map[string]string) string {
	cleaned := CleanText(s)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := vocab[strings.ToLower(cleaned)]; ok {
		return canonical
	}
	return titleCaser.String(cleaned)
}
