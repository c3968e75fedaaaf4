package analysis

import (
	"gonum.org/v1/gonum/mat"

	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// ModelReport is the full per-model section of an exported report.
type ModelReport struct {
	Metrics           *MetricSet        `json:"metrics"`
	Diagnostics       DiagnosticBundle  `json:"diagnostics"`
	FeatureImportance []ImportanceEntry `json:"feature_importance,omitempty"`
	ImportancePlot    string            `json:"importance_plot,omitempty"`
}

// Report is the exported result of an analysis: the cross-model ranking plus
// one full section per fitted model.
type Report struct {
	ModelComparison []ComparisonEntry      `json:"model_comparison"`
	Models          map[string]ModelReport `json:"models"`
}

// Export assembles the report for every registered model. Metrics come from
// the comparison table as computed at fit time; diagnostics and importance
// plots are rendered fresh.
func (s *Session) Export() (report *Report, err error) {
	defer regressErrors.Recover(&err, "Export")

	report = &Report{
		ModelComparison: s.CompareModels(),
		Models:          make(map[string]ModelReport, len(s.models)),
	}

	for _, name := range s.modelNames() {
		section := ModelReport{Metrics: s.table[name]}

		if section.Diagnostics, err = s.Diagnostics(name); err != nil {
			return nil, err
		}

		entries, plotB64, err := s.FeatureImportance(name, DefaultTopN)
		switch {
		case err == nil:
			section.FeatureImportance = entries
			section.ImportancePlot = plotB64
		case regressErrors.As(err, new(*regressErrors.NoCoefficientsError)):
			// No coefficients to rank; the section stays metrics-only.
		default:
			return nil, err
		}

		report.Models[name] = section
	}

	s.logger.Info("Report exported",
		log.ModelNameKey, s.modelNames(),
	)

	return report, nil
}

// Analyze runs the default end-to-end workflow: validate and split the data,
// standardize features, fit all four model families with cross-validated
// hyperparameter selection, and export the comparison report.
func Analyze(X *mat.Dense, y *mat.VecDense, opts ...Option) (*Report, error) {
	s, err := NewSession(X, y, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Preprocess(DefaultPreprocess); err != nil {
		return nil, err
	}

	if _, err := s.FitLinear(); err != nil {
		return nil, err
	}
	if _, err := s.FitRidge(nil, 0); err != nil {
		return nil, err
	}
	if _, err := s.FitLasso(nil, 0); err != nil {
		return nil, err
	}
	if _, err := s.FitElasticNet(nil, nil, 0); err != nil {
		return nil, err
	}

	return s.Export()
}
