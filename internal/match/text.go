package match

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Stopwords dropped from free-text queries before token filtering.
var Stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "on": {},
	"at": {}, "for": {}, "to": {}, "in": {}, "by": {}, "with": {},
}

// Canonical reduces a value to its comparison key: all whitespace
// removed, case-folded. Canonical is idempotent.
func Canonical(value string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(value, ""))
}

// Fold lowercases and trims a value, keeping interior whitespace.
func Fold(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Tokens splits a query on whitespace, folds each token and drops
// stopwords.
func Tokens(query string) []string {
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if _, stop := Stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// RawTokens splits a query on whitespace and folds each token, keeping
// stopwords. The staff sub-search matches on every token.
func RawTokens(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Slug lowercases a name and collapses runs of non-alphanumeric
// characters to single hyphens. An empty result falls back to
// "property".
func Slug(name string) string {
	slug := nonAlnumRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "property"
	}
	return slug
}

// PropertyID derives a stable identifier for a property that has no
// explicit id: slug of the name plus the first six hex digits of the
// sha1 of its folded name. Stable across reloads for an unchanged name.
func PropertyID(name string) string {
	digest := sha1.Sum([]byte(Fold(name)))
	return Slug(name) + "-" + hex.EncodeToString(digest[:])[:6]
}
