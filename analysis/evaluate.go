package analysis

import (
	"github.com/mlkit-go/regress/linear"
	"github.com/mlkit-go/regress/metrics"
	"github.com/mlkit-go/regress/modelselection"
	"github.com/mlkit-go/regress/pkg/log"
)

// MetricSet is the fixed-shape evaluation record produced for every fitted
// model. It is computed once per fit and stored in the session's comparison
// table; regularized variants additionally carry their selected
// hyperparameters and support size.
type MetricSet struct {
	TrainR2           float64 `json:"train_r2"`
	TestR2            float64 `json:"test_r2"`
	TrainMAE          float64 `json:"train_mae"`
	TestMAE           float64 `json:"test_mae"`
	TrainRMSE         float64 `json:"train_rmse"`
	TestRMSE          float64 `json:"test_rmse"`
	ExplainedVariance float64 `json:"explained_variance"`
	CVR2              float64 `json:"cv_r2"`

	// Coefficients and Intercept are present when the model exposes them.
	Coefficients []float64 `json:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept"`

	// Alpha is the selected regularization strength (ridge, lasso,
	// elastic net).
	Alpha float64 `json:"alpha,omitempty"`

	// L1Ratio is the selected mixing ratio (elastic net).
	L1Ratio float64 `json:"l1_ratio,omitempty"`

	// FeaturesSelected is the support size (lasso, elastic net).
	FeaturesSelected int `json:"features_selected,omitempty"`
}

// evaluate computes the metric set for a fitted model and records it in the
// comparison table under name, overwriting any prior entry.
func (s *Session) evaluate(name string, m linear.Regressor) (*MetricSet, error) {
	predTrain, err := predictVec(m, s.xTrain)
	if err != nil {
		return nil, err
	}
	predTest, err := predictVec(m, s.xTest)
	if err != nil {
		return nil, err
	}

	ms := &MetricSet{}

	if ms.TrainR2, err = metrics.R2Score(s.yTrain, predTrain); err != nil {
		return nil, err
	}
	if ms.TestR2, err = metrics.R2Score(s.yTest, predTest); err != nil {
		return nil, err
	}
	if ms.TrainMAE, err = metrics.MAE(s.yTrain, predTrain); err != nil {
		return nil, err
	}
	if ms.TestMAE, err = metrics.MAE(s.yTest, predTest); err != nil {
		return nil, err
	}
	if ms.TrainRMSE, err = metrics.RMSE(s.yTrain, predTrain); err != nil {
		return nil, err
	}
	if ms.TestRMSE, err = metrics.RMSE(s.yTest, predTest); err != nil {
		return nil, err
	}
	if ms.ExplainedVariance, err = metrics.ExplainedVarianceScore(s.yTest, predTest); err != nil {
		return nil, err
	}

	// Mean R² across 5 folds, refitting a fresh clone of the same family
	// and hyperparameters on each fold's training rows.
	ms.CVR2, err = modelselection.CrossValR2(func() modelselection.Estimator {
		return m.Clone()
	}, s.xTrain, s.yTrain, DefaultFolds, s.seed)
	if err != nil {
		return nil, err
	}

	if coefs := m.Coefficients(); len(coefs) > 0 {
		ms.Coefficients = coefs
		ms.Intercept = m.Intercept()
	}

	s.table[name] = ms

	s.logger.Info("Model evaluated",
		log.OperationKey, log.OperationEvaluate,
		log.ModelNameKey, name,
		log.R2ScoreKey, ms.TestR2,
	)

	return ms, nil
}
