package catalog

import (
	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum ratio, inclusive, for an approximate match.
const DefaultThreshold = 0.6

// MatchKind says how a requested code was resolved.
type MatchKind string

const (
	Exact       MatchKind = "exact"
	Approximate MatchKind = "approximate"
	NotFound    MatchKind = "not_found"
)

type MatchResult struct {
	RequestedCode string
	// MatchedCode is the catalog code, or the requested code when not found.
	MatchedCode string
	Kind        MatchKind
	// Score is 1 for exact matches, otherwise the best similarity ratio seen,
	// even when it fell below the threshold.
	Score float64
	Entry *Entry
}

func (r MatchResult) Found() bool { return r.Entry != nil }

// Matcher resolves requested codes against a catalog. A zero Threshold means
// DefaultThreshold.
type Matcher struct {
	Threshold float64
}

// NewMatcher returns a Matcher accepting approximate matches scoring at least threshold.
func NewMatcher(threshold float64) Matcher {
	return Matcher{Threshold: threshold}
}

func (m Matcher) threshold() float64 {
	if m.Threshold <= 0 {
		return DefaultThreshold
	}
	return m.Threshold
}

// Match tries an exact lookup first and only then scans every code for the
// most similar one. Ties on the ratio go to the smaller edit distance, then
// to the lexicographically smaller code.
func (m Matcher) Match(code string, c *Catalog) MatchResult {
	code = NormalizeCode(code)
	res := MatchResult{RequestedCode: code, MatchedCode: code, Kind: NotFound}
	if c == nil {
		return res
	}
	if e, ok := c.Lookup(code); ok {
		res.Kind = Exact
		res.Score = 1
		res.Entry = &e
		return res
	}

	var (
		best     string
		bestRat  = -1.0
		bestDist int
	)
	for _, key := range c.keys {
		r := Ratio(code, key)
		if r < bestRat {
			continue
		}
		d := levenshtein.ComputeDistance(code, key)
		if r > bestRat || d < bestDist {
			best, bestRat, bestDist = key, r, d
		}
	}
	if best == "" || bestRat < m.threshold() {
		if bestRat > 0 {
			res.Score = bestRat
		}
		return res
	}

	e, _ := c.Lookup(best)
	res.Kind = Approximate
	res.MatchedCode = best
	res.Score = bestRat
	res.Entry = &e
	return res
}
