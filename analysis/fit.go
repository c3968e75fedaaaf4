package analysis

import (
	"github.com/mlkit-go/regress/linear"
)

// FitLinear fits ordinary least squares on the training partition, registers
// it as "Linear", and returns its metric set.
func (s *Session) FitLinear() (*MetricSet, error) {
	m := linear.NewLinearRegression()
	if err := m.Fit(s.xTrain, s.yTrain); err != nil {
		return nil, err
	}
	s.models[ModelLinear] = m
	return s.evaluate(ModelLinear, m)
}

// FitRidge fits ridge regression with cross-validated alpha selection over
// the given grid, registers it as "Ridge", and returns its metric set with
// the chosen alpha recorded. A nil grid uses DefaultAlphas; folds <= 1 uses
// DefaultFolds.
func (s *Session) FitRidge(alphas []float64, folds int) (*MetricSet, error) {
	if alphas == nil {
		alphas = DefaultAlphas
	}
	if folds <= 1 {
		folds = DefaultFolds
	}

	m := linear.NewRidgeCV(alphas, folds)
	m.Seed = s.seed
	if err := m.Fit(s.xTrain, s.yTrain); err != nil {
		return nil, err
	}
	s.models[ModelRidge] = m

	ms, err := s.evaluate(ModelRidge, m)
	if err != nil {
		return nil, err
	}
	ms.Alpha = m.Alpha
	return ms, nil
}

// FitLasso fits lasso regression with cross-validated alpha selection over
// the given grid, registers it as "Lasso", and returns its metric set with
// the chosen alpha and support size recorded. A nil grid uses DefaultAlphas;
// folds <= 1 uses DefaultFolds.
func (s *Session) FitLasso(alphas []float64, folds int) (*MetricSet, error) {
	if alphas == nil {
		alphas = DefaultAlphas
	}
	if folds <= 1 {
		folds = DefaultFolds
	}

	m := linear.NewLassoCV(alphas, folds)
	m.Seed = s.seed
	if err := m.Fit(s.xTrain, s.yTrain); err != nil {
		return nil, err
	}
	s.models[ModelLasso] = m

	ms, err := s.evaluate(ModelLasso, m)
	if err != nil {
		return nil, err
	}
	ms.Alpha = m.Alpha
	ms.FeaturesSelected = m.SupportSize()
	return ms, nil
}

// FitElasticNet fits elastic net regression with joint cross-validated
// selection over the alpha and L1-ratio grids, registers it as "ElasticNet",
// and returns its metric set with both chosen hyperparameters and the support
// size recorded. Nil grids use DefaultAlphas/DefaultL1Ratios; folds <= 1 uses
// DefaultFolds.
func (s *Session) FitElasticNet(alphas, l1Ratios []float64, folds int) (*MetricSet, error) {
	if alphas == nil {
		alphas = DefaultAlphas
	}
	if l1Ratios == nil {
		l1Ratios = DefaultL1Ratios
	}
	if folds <= 1 {
		folds = DefaultFolds
	}

	m := linear.NewElasticNetCV(alphas, l1Ratios, folds)
	m.Seed = s.seed
	if err := m.Fit(s.xTrain, s.yTrain); err != nil {
		return nil, err
	}
	s.models[ModelElasticNet] = m

	ms, err := s.evaluate(ModelElasticNet, m)
	if err != nil {
		return nil, err
	}
	ms.Alpha = m.Alpha
	ms.L1Ratio = m.L1Ratio
	ms.FeaturesSelected = m.SupportSize()
	return ms, nil
}
