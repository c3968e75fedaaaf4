package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/core/model"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// Default solver settings for the coordinate descent variants.
const (
	// DefaultMaxIter is the iteration cap of the coordinate descent
	// solver. Hitting the cap raises a ConvergenceWarning, never an error.
	DefaultMaxIter = 10000

	// DefaultTol is the convergence tolerance on the largest coefficient
	// update within one sweep.
	DefaultTol = 1e-4
)

// Lasso is a linear model with L1 regularization, fitted by coordinate
// descent. The L1 penalty drives coefficients to exactly zero, so the fitted
// model selects a subset of the features.
type Lasso struct {
	state *model.StateManager

	// Alpha is the regularization strength.
	Alpha float64

	// MaxIter caps the coordinate descent sweeps.
	MaxIter int

	// Tol is the convergence tolerance.
	Tol float64

	weights   []float64
	intercept float64
	nFeatures int
	logger    log.Logger
}

// NewLasso creates a new untrained lasso model with the given regularization
// strength and default solver settings.
func NewLasso(alpha float64) *Lasso {
	return &Lasso{
		state:   model.NewStateManager(),
		Alpha:   alpha,
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "Lasso",
			log.ComponentKey, "linear",
		),
	}
}

// Fit trains the model by coordinate descent. If the solver does not
// converge within MaxIter sweeps, the partial solution is kept and a
// ConvergenceWarning is emitted.
func (ls *Lasso) Fit(X, y mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "Lasso.Fit")

	startTime := time.Now()
	r, c, err := validateFit("Lasso.Fit", X, y)
	if err != nil {
		return err
	}
	if ls.Alpha < 0 {
		return regressErrors.NewValidationError("alpha", "must be non-negative", ls.Alpha)
	}

	result := coordinateDescent(X, y, ls.Alpha, 1.0, ls.MaxIter, ls.Tol)
	if !result.converged {
		regressErrors.Warn(regressErrors.NewConvergenceWarning("Lasso", result.iterations, ""))
	}

	ls.weights = result.weights
	ls.intercept = result.intercept
	ls.nFeatures = c
	ls.state.SetFitted()
	ls.state.SetDimensions(c, r)

	ls.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.AlphaKey, ls.Alpha,
		log.IterationKey, result.iterations,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// Predict returns predictions for X as an (n, 1) matrix.
func (ls *Lasso) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer regressErrors.Recover(&err, "Lasso.Predict")
	if !ls.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("Lasso", "Predict")
	}

	_, c := X.Dims()
	if c != ls.nFeatures {
		return nil, regressErrors.NewDimensionError("Lasso.Predict", ls.nFeatures, c, 1)
	}

	return predictLinear(X, ls.weights, ls.intercept), nil
}

// Coefficients returns the fitted coefficient vector.
func (ls *Lasso) Coefficients() []float64 {
	if ls.weights == nil {
		return nil
	}
	return append([]float64(nil), ls.weights...)
}

// Intercept returns the fitted intercept.
func (ls *Lasso) Intercept() float64 {
	return ls.intercept
}

// SupportSize returns the number of non-zero coefficients.
func (ls *Lasso) SupportSize() int {
	return countNonZero(ls.weights)
}

// Clone returns a fresh unfitted lasso model with the same hyperparameters.
func (ls *Lasso) Clone() Regressor {
	clone := NewLasso(ls.Alpha)
	clone.MaxIter = ls.MaxIter
	clone.Tol = ls.Tol
	return clone
}

// IsFitted returns whether the model has been fitted.
func (ls *Lasso) IsFitted() bool {
	return ls.state.IsFitted()
}
