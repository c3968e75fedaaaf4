package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/core/model"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// ElasticNet is a linear model combining L1 and L2 regularization, fitted by
// coordinate descent. L1Ratio controls the mix: 1 is pure lasso, 0 is pure
// ridge shrinkage.
type ElasticNet struct {
	state *model.StateManager

	// Alpha is the overall regularization strength.
	Alpha float64

	// L1Ratio is the fraction of the penalty attributed to L1.
	L1Ratio float64

	// MaxIter caps the coordinate descent sweeps.
	MaxIter int

	// Tol is the convergence tolerance.
	Tol float64

	weights   []float64
	intercept float64
	nFeatures int
	logger    log.Logger
}

// NewElasticNet creates a new untrained elastic net model with the given
// regularization strength and mixing ratio.
func NewElasticNet(alpha, l1Ratio float64) *ElasticNet {
	return &ElasticNet{
		state:   model.NewStateManager(),
		Alpha:   alpha,
		L1Ratio: l1Ratio,
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "ElasticNet",
			log.ComponentKey, "linear",
		),
	}
}

// Fit trains the model by coordinate descent. If the solver does not
// converge within MaxIter sweeps, the partial solution is kept and a
// ConvergenceWarning is emitted.
func (en *ElasticNet) Fit(X, y mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "ElasticNet.Fit")

	startTime := time.Now()
	r, c, err := validateFit("ElasticNet.Fit", X, y)
	if err != nil {
		return err
	}
	if en.Alpha < 0 {
		return regressErrors.NewValidationError("alpha", "must be non-negative", en.Alpha)
	}
	if en.L1Ratio < 0 || en.L1Ratio > 1 {
		return regressErrors.NewValidationError("l1_ratio", "must be in [0, 1]", en.L1Ratio)
	}

	result := coordinateDescent(X, y, en.Alpha, en.L1Ratio, en.MaxIter, en.Tol)
	if !result.converged {
		regressErrors.Warn(regressErrors.NewConvergenceWarning("ElasticNet", result.iterations, ""))
	}

	en.weights = result.weights
	en.intercept = result.intercept
	en.nFeatures = c
	en.state.SetFitted()
	en.state.SetDimensions(c, r)

	en.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.AlphaKey, en.Alpha,
		log.L1RatioKey, en.L1Ratio,
		log.IterationKey, result.iterations,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// Predict returns predictions for X as an (n, 1) matrix.
func (en *ElasticNet) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer regressErrors.Recover(&err, "ElasticNet.Predict")
	if !en.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("ElasticNet", "Predict")
	}

	_, c := X.Dims()
	if c != en.nFeatures {
		return nil, regressErrors.NewDimensionError("ElasticNet.Predict", en.nFeatures, c, 1)
	}

	return predictLinear(X, en.weights, en.intercept), nil
}

// Coefficients returns the fitted coefficient vector.
func (en *ElasticNet) Coefficients() []float64 {
	if en.weights == nil {
		return nil
	}
	return append([]float64(nil), en.weights...)
}

// Intercept returns the fitted intercept.
func (en *ElasticNet) Intercept() float64 {
	return en.intercept
}

// SupportSize returns the number of non-zero coefficients.
func (en *ElasticNet) SupportSize() int {
	return countNonZero(en.weights)
}

// Clone returns a fresh unfitted elastic net model with the same
// hyperparameters.
func (en *ElasticNet) Clone() Regressor {
	clone := NewElasticNet(en.Alpha, en.L1Ratio)
	clone.MaxIter = en.MaxIter
	clone.Tol = en.Tol
	return clone
}

// IsFitted returns whether the model has been fitted.
func (en *ElasticNet) IsFitted() bool {
	return en.state.IsFitted()
}
