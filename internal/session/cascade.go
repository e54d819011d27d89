package session

import (
	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Options maps each filter dimension to its currently valid values.
type Options map[domain.Dimension][]string

// recomputeOptions walks the fixed dependency chain and rebuilds every
// dropdown's option set from the rows matching all filters earlier in
// the chain. A chosen value that is no longer in its option set is reset
// to FilterAll, so the cascade can never leave the user pinned to a
// dead-end combination. Free-text search is applied later by the view
// projection and takes no part in the chain.
func recomputeOptions(rows []domain.AggregatedRow, state *domain.FilterState, minQuantity float64) Options {
	opts := make(Options, len(domain.Dimensions))
	coll := collate.New(language.Korean)

	for i, dim := range domain.Dimensions {
		seen := make(map[string]struct{})
		values := make([]string, 0)

	scan:
		for idx := range rows {
			row := &rows[idx]
			if row.TotalQuantity <= minQuantity {
				continue
			}
			for _, earlier := range domain.Dimensions[:i] {
				chosen := state.Value(earlier)
				if chosen != domain.FilterAll && row.Attribute(earlier) != chosen {
					continue scan
				}
			}
			v := row.Attribute(dim)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}

		coll.SortStrings(values)
		opts[dim] = values

		if chosen := state.Value(dim); chosen != domain.FilterAll {
			if _, ok := seen[chosen]; !ok {
				state.SetValue(dim, domain.FilterAll)
			}
		}
	}

	return opts
}
