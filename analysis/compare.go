package analysis

import (
	"sort"
)

// ComparisonEntry pairs a model name with its metric set in the ranking.
type ComparisonEntry struct {
	Name string `json:"model"`
	*MetricSet
}

// CompareModels ranks all registered models by descending test R². Ties are
// broken by name so the ranking is deterministic. An empty model set yields
// an empty ranking.
func (s *Session) CompareModels() []ComparisonEntry {
	ranking := make([]ComparisonEntry, 0, len(s.table))
	for name, ms := range s.table {
		ranking = append(ranking, ComparisonEntry{Name: name, MetricSet: ms})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].TestR2 != ranking[j].TestR2 {
			return ranking[i].TestR2 > ranking[j].TestR2
		}
		return ranking[i].Name < ranking[j].Name
	})

	return ranking
}
