// Package normalize canonicalizes free-text name, position and organization
// fields into comparison keys. Two records whose normalized fields are equal
// are treated as the same appointment lineage downstream.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field normalizes a raw field into a Value. The function is pure and never
// fails: unparseable input degrades to the missing marker.
//
// Rewrites, in order: trim, diacritic stripping, lower-casing, punctuation to
// spaces, whitespace collapse, honorific prefix and suffix token removal.
func (rs *RuleSet) Field(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	if rs.isMissingLiteral(s) {
		return Missing()
	}

	toks := tokenize(s)
	if len(toks) == 0 {
		return Missing()
	}
	for len(toks) > 0 && rs.isHonorific(toks[0]) {
		toks = toks[1:]
	}
	for len(toks) > 0 && rs.isSuffix(toks[len(toks)-1]) {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		// The field was nothing but honorifics; it carries no identity.
		return Missing()
	}
	return Of(strings.Join(toks, " "))
}

// tokenize splits on whitespace after mapping punctuation to spaces, which
// both strips periods/commas and collapses internal whitespace runs.
func tokenize(s string) []string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Fields(mapped)
}

// stripDiacritics removes combining marks so that "Côté" and "Cote" compare
// equal. The transform chain is stateful, so a fresh one is built per call.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
