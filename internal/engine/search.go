package engine

import (
	"unicode"
	"unicode/utf8"

	"instruction-viewer/internal/domain"
)

// contextWindow is the number of bytes of surrounding text captured on each
// side of a match.
const contextWindow = 50

// SearchDocument scans the document text for a query substring and returns
// positioned matches with surrounding context.
//
// The scan is case-insensitive and records each non-overlapping occurrence in
// document order. Matching walks the original text rune by rune under simple
// Unicode case folding, so every recorded position is a byte offset into the
// original text even where folding changes UTF-8 widths. Relevance is 1.0 for
// every match; ties break by document order. An empty query yields an empty
// result set, not an error.
func SearchDocument(text, query string) []domain.SearchResult {
	results := []domain.SearchResult{}
	if query == "" || text == "" {
		return results
	}

	for i := 0; i < len(text); {
		matchLen, ok := foldPrefixLen(text[i:], query)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		results = append(results, domain.SearchResult{
			Text:      query,
			Position:  i,
			Context:   contextAround(text, i, matchLen),
			Relevance: 1.0,
		})
		// Skip past the whole match so occurrences never overlap.
		i += matchLen
	}
	return results
}

// foldPrefixLen reports whether s begins with a case-insensitive match of
// query and, if so, the byte length of the matched prefix in s. The length is
// measured in s, not in query: the two can differ when folding maps a rune to
// one of a different UTF-8 width.
func foldPrefixLen(s, query string) (int, bool) {
	n := 0
	for _, qr := range query {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || !foldEqual(r, qr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// foldEqual reports whether two runes are equal under simple Unicode case
// folding.
func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// contextAround cuts the window [pos-contextWindow, pos+matchLen+contextWindow)
// from the original text, clamped to the text bounds and widened outward to
// rune boundaries so the cut never splits a multi-byte character.
func contextAround(text string, pos, matchLen int) string {
	start := pos - contextWindow
	if start < 0 {
		start = 0
	}
	end := pos + matchLen + contextWindow
	if end > len(text) {
		end = len(text)
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return text[start:end]
}
