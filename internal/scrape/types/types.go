package types

import (
	"context"
	"strings"

	"jobmatch-engine/internal/domain"
)

// Query is one aggregation request as seen by an adapter.
type Query struct {
	// Raw is the user's query text, passed through to sources that do their
	// own server-side matching.
	Raw string
	// Keywords are the derived search tokens used for local OR-filtering.
	Keywords []string
	// Location is the optional location hint.
	Location string
	// Limit caps how many records the adapter may return.
	Limit int
}

// MatchesAny reports whether text contains at least one keyword,
// case-insensitively.
func (q Query) MatchesAny(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range q.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Adapter fetches raw listings from one external source and transforms them
// into canonical records. Returned records are pre-validation. A total source
// failure is reported as an error; the aggregator isolates it.
type Adapter interface {
	Name() string
	Search(ctx context.Context, q Query) ([]domain.Job, error)
}

// RegionGate is implemented by adapters that only make sense for certain
// location hints. The aggregator skips gated adapters outside their region.
type RegionGate interface {
	InRegion(location string) bool
}
