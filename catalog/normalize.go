package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folder decomposes to NFD, drops combining marks, then recomposes. That
// turns "Lập Trình" into "Lap Trinh" regardless of which accent convention
// the writer used.
var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// dReplacer handles đ/Đ, which NFD does not decompose into a base letter.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "d")

// Normalize folds text to the comparable form used for both the indexed
// corpus and incoming queries: lower-cased, accent-stripped, whitespace
// collapsed, word order preserved.
func Normalize(text string) string {
	lowered := strings.ToLower(dReplacer.Replace(text))
	folded, _, err := transform.String(folder, lowered)
	if err != nil {
		folded = lowered
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Tokens splits normalized text into search terms on any non-alphanumeric
// boundary.
func Tokens(text string) []string {
	return strings.FieldsFunc(Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// matchScore grades a summary against a normalized query. Zero means no
// match. Keyword mode requires every query term to appear as a token of the
// indexed text; an exact substring of the whole normalized query is the
// fallback for short or partial input. Token hits outrank a bare substring
// hit so relevance ordering prefers full keyword matches.
func matchScore(sum *CourseSummary, normQuery string, queryTokens []string) int {
	if normQuery == "" {
		return 1
	}

	score := 0
	if len(queryTokens) > 0 {
		indexed := make(map[string]struct{})
		for _, tok := range Tokens(sum.SearchText) {
			indexed[tok] = struct{}{}
		}
		hits := 0
		for _, tok := range queryTokens {
			if _, ok := indexed[tok]; ok {
				hits++
			}
		}
		if hits == len(queryTokens) {
			score = 2 * hits
		}
	}
	if strings.Contains(sum.SearchText, normQuery) {
		score++
	}
	return score
}
