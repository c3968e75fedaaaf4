// Package preprocessing provides data preprocessing for the regression
// engine.
//
// Components follow the estimator pattern: statistics are computed from
// training data with Fit and applied unchanged to any partition with
// Transform. Both the StandardScaler and PolynomialFeatures are fit once per
// analysis session on the training split and reused for the test split.
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/core/model"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

// StandardScaler standardizes features by removing the per-column mean and
// dividing by the per-column standard deviation, both computed at fit time.
type StandardScaler struct {
	state *model.StateManager

	// Mean holds the per-feature mean computed during Fit.
	Mean []float64

	// Scale holds the per-feature standard deviation computed during Fit.
	Scale []float64

	// NFeatures is the number of features seen during Fit.
	NFeatures int
}

// NewStandardScaler creates a new StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		state: model.NewStateManager(),
	}
}

// Fit computes the per-column mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "StandardScaler.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return regressErrors.NewValueError("StandardScaler.Fit", "empty data")
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - s.Mean[j]
			sumSquares += diff * diff
		}
		s.Scale[j] = math.Sqrt(sumSquares / float64(r))

		// Constant column: avoid division by zero.
		if s.Scale[j] < 1e-8 {
			s.Scale[j] = 1.0
		}
	}

	s.state.SetFitted()
	s.state.SetDimensions(c, r)
	return nil
}

// Transform standardizes X using the statistics computed during Fit. The
// statistics are never refit here, so train and test partitions receive the
// identical transform.
func (s *StandardScaler) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer regressErrors.Recover(&err, "StandardScaler.Transform")
	if !s.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, regressErrors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}

	return result, nil
}

// FitTransform fits the scaler on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// IsFitted returns whether the scaler has been fitted.
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}
