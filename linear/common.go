// Package linear provides the regression variants fitted by the analysis
// engine: ordinary least squares, ridge, lasso and elastic net, plus
// cross-validated wrappers that select regularization strength.
//
// All models share the estimator interface with Fit/Predict methods, expose
// their coefficient vector and intercept after fitting, and can produce an
// unfitted clone of themselves with identical hyperparameters for per-fold
// refitting during cross-validation.
package linear

import (
	"gonum.org/v1/gonum/mat"

	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

// Regressor is the contract shared by all regression variants.
type Regressor interface {
	// Fit trains the model. X has shape (n_samples, n_features); y is a
	// column vector of length n_samples.
	Fit(X, y mat.Matrix) error

	// Predict returns an (n_samples, 1) matrix of predictions.
	Predict(X mat.Matrix) (mat.Matrix, error)

	// Coefficients returns the fitted coefficient vector, or nil when the
	// model is unfitted.
	Coefficients() []float64

	// Intercept returns the fitted intercept.
	Intercept() float64

	// Clone returns a fresh unfitted model with the same hyperparameters.
	Clone() Regressor
}

// validateFit checks the common Fit input invariants and returns the data
// shape.
func validateFit(op string, X, y mat.Matrix) (r, c int, err error) {
	r, c = X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return 0, 0, regressErrors.NewValueError(op, "empty data")
	}
	if ry != r {
		return 0, 0, regressErrors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return 0, 0, regressErrors.NewValueError(op, "y must be a column vector")
	}

	return r, c, nil
}

// predictLinear computes X*w + b as an (n, 1) matrix.
func predictLinear(X mat.Matrix, weights []float64, intercept float64) *mat.Dense {
	r, c := X.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * weights[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions
}

// countNonZero returns the support size of a coefficient vector.
func countNonZero(coefs []float64) int {
	count := 0
	for _, w := range coefs {
		if w != 0 {
			count++
		}
	}
	return count
}
