package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/linear"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

// VIFEntry is the collinearity score of one feature.
type VIFEntry struct {
	Feature int     `json:"feature"`
	VIF     float64 `json:"vif"`
	HighVIF bool    `json:"high_vif"`
}

// VIFReport is the result of the collinearity diagnostic. When the
// computation is numerically infeasible the report is marked unavailable and
// carries the reason; the surrounding analysis is never aborted.
type VIFReport struct {
	Available bool       `json:"available"`
	Reason    string     `json:"reason,omitempty"`
	Features  []VIFEntry `json:"features,omitempty"`
}

// CheckMulticollinearity computes a variance inflation factor for every
// column of the full (unsplit) feature matrix: VIF_i = 1/(1-R²) where R² is
// obtained by regressing column i on all other columns. Features whose VIF
// exceeds the threshold are flagged; threshold <= 0 uses the default of 5.
//
// This is an advisory check. Numerical failure (for example a singular
// design) degrades to an unavailable report and a warning.
func (s *Session) CheckMulticollinearity(threshold float64) *VIFReport {
	if threshold <= 0 {
		threshold = DefaultVIFThreshold
	}

	n, m := s.x.Dims()
	entries := make([]VIFEntry, 0, m)

	for i := 0; i < m; i++ {
		vif, err := s.featureVIF(n, m, i)
		if err != nil {
			regressErrors.Warn(regressErrors.NewDiagnosticUnavailableWarning("collinearity", err.Error()))
			return &VIFReport{Available: false, Reason: err.Error()}
		}
		entries = append(entries, VIFEntry{
			Feature: i,
			VIF:     vif,
			HighVIF: vif > threshold,
		})
	}

	return &VIFReport{Available: true, Features: entries}
}

// featureVIF regresses column i on the remaining columns and converts the
// resulting R² to a variance inflation factor.
func (s *Session) featureVIF(n, m, i int) (float64, error) {
	// A single-column matrix has nothing to regress on.
	if m < 2 {
		return 1.0, nil
	}

	others := mat.NewDense(n, m-1, nil)
	target := mat.NewDense(n, 1, nil)
	for r := 0; r < n; r++ {
		k := 0
		for c := 0; c < m; c++ {
			if c == i {
				target.Set(r, 0, s.x.At(r, c))
				continue
			}
			others.Set(r, k, s.x.At(r, c))
			k++
		}
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(others, target); err != nil {
		return 0, err
	}

	r2, err := lr.Score(others, target)
	if err != nil {
		return 0, err
	}

	// A perfect fit means infinite variance inflation.
	if 1-r2 < 1e-12 {
		return math.Inf(1), nil
	}
	return 1 / (1 - r2), nil
}
