package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"enrichment-dash/internal/gene"
)

const maxSuggestions = 5

// FilterConfig bundles tuning parameters for search suggestions.
type FilterConfig struct {
	MinCoverage float64 // minimal share of the query that must match
	MaxSpread   int     // maximal distance between first and last match index
	MaxResults  int     // upper limit of returned results
}

// suggest returns gene ids that fuzzily match q, best first.
func suggest(q string, ds *gene.Dataset, cfg FilterConfig) []string {
	if ds.Len() == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	base := make([]string, ds.Len())
	idx := make([]int, ds.Len())
	for i := range base {
		base[i] = strings.ToLower(ds.At(i).ID)
		idx[i] = i
	}
	hits := filterByFuzzy(strings.ToLower(q), base, idx, cfg)
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = ds.At(h).ID
	}
	return out
}

// filterByFuzzy applies fuzzy matching on the subset defined by idx and
// filters results based on coverage and spread thresholds from cfg.
func filterByFuzzy(q string, base []string, idx []int, cfg FilterConfig) []int {
	subset := make([]string, len(idx))
	mapBack := make([]int, len(idx))
	for j, i := range idx {
		subset[j] = base[i]
		mapBack[j] = i
	}
	matches := fuzzy.Find(q, subset)

	pruned := make([]int, 0, min(len(matches), cfg.MaxResults))
	for _, mt := range matches {
		if matchCoverage(q, mt) < cfg.MinCoverage {
			continue
		}
		if matchSpread(mt) > cfg.MaxSpread {
			continue
		}
		pruned = append(pruned, mapBack[mt.Index])
		if len(pruned) >= cfg.MaxResults {
			break
		}
	}
	if len(pruned) == 0 {
		for i := 0; i < len(matches) && i < cfg.MaxResults; i++ {
			pruned = append(pruned, mapBack[matches[i].Index])
		}
	}
	return pruned
}

// matchCoverage returns the ratio of matched characters to the query length.
func matchCoverage(q string, m fuzzy.Match) float64 {
	if len(q) == 0 {
		return 1
	}
	return float64(len(m.MatchedIndexes)) / float64(len(q))
}

// matchSpread returns the distance between the first and last matched index.
func matchSpread(m fuzzy.Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0]
}
