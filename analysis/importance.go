package analysis

import (
	"fmt"
	"math"
	"sort"

	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

// ImportanceEntry is one feature in an importance ranking.
type ImportanceEntry struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// FeatureImportance ranks a model's features by absolute coefficient value
// and returns the top entries together with a horizontal bar plot of the
// ranking. Ties keep the lower feature index first. topN <= 0 uses the
// default of 10; models without coefficients return NoCoefficientsError.
func (s *Session) FeatureImportance(name string, topN int) (entries []ImportanceEntry, plotB64 string, err error) {
	defer regressErrors.Recover(&err, "FeatureImportance")

	m, err := s.lookup(name)
	if err != nil {
		return nil, "", err
	}

	coefs := m.Coefficients()
	if len(coefs) == 0 {
		return nil, "", regressErrors.NewNoCoefficientsError(name)
	}

	if topN <= 0 {
		topN = DefaultTopN
	}

	order := make([]int, len(coefs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(coefs[order[a]]) > math.Abs(coefs[order[b]])
	})

	if topN > len(order) {
		topN = len(order)
	}

	entries = make([]ImportanceEntry, topN)
	for i := 0; i < topN; i++ {
		j := order[i]
		entries[i] = ImportanceEntry{
			Feature:    fmt.Sprintf("Feature_%d", j),
			Importance: math.Abs(coefs[j]),
		}
	}

	plotB64, err = renderImportanceBars(fmt.Sprintf("%s Feature Importance", name), entries)
	if err != nil {
		return nil, "", err
	}

	return entries, plotB64, nil
}
