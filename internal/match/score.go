package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Jaro-Winkler vs Levenshtein blend weights.
const (
	jwWeight  = 0.7
	levWeight = 0.3
)

// Result is one scored candidate from Extract.
type Result struct {
	ID    string
	Score float64
}

// similarity blends Jaro-Winkler with normalized Levenshtein distance,
// returning 0..1. Both inputs are assumed folded.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	j := smetrics.JaroWinkler(a, b, 0.7, 4)
	ld := levenshtein.ComputeDistance(a, b)
	den := len(a)
	if len(b) > den {
		den = len(b)
	}
	lev := 1.0 - float64(ld)/float64(den)
	return jwWeight*j + levWeight*lev
}

func sortedTokens(s string) string {
	toks := strings.Fields(s)
	sort.Strings(toks)
	return strings.Join(toks, " ")
}

// Score rates how well a free-text query matches a candidate text,
// scaled 0..100. Tolerant of word reordering (sorted-token comparison)
// and of queries much shorter than the candidate (substring floor).
func Score(query, text string) float64 {
	q := Fold(query)
	t := Fold(text)
	if q == "" || t == "" {
		return 0
	}
	best := similarity(q, t)
	if s := similarity(sortedTokens(q), sortedTokens(t)); s > best {
		best = s
	}
	if strings.Contains(t, q) {
		// Exact containment outranks near-miss fuzzy hits; longer
		// shared spans score closer to 100.
		sub := 0.90 + 0.10*float64(len(q))/float64(len(t))
		if sub > best {
			best = sub
		}
	}
	return best * 100
}

// Extract scores every candidate text against the query and returns
// those at or above cutoff, best first, capped at limit. Ties keep the
// caller's candidate order, so results are reproducible.
func Extract(query string, order []string, texts map[string]string, cutoff float64, limit int) []Result {
	results := make([]Result, 0, len(order))
	for _, id := range order {
		score := Score(query, texts[id])
		if score >= cutoff {
			results = append(results, Result{ID: id, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
