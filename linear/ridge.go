package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/core/model"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// Ridge is a linear model with L2 regularization. The penalty shrinks the
// coefficients toward zero; the intercept is never penalized.
type Ridge struct {
	state *model.StateManager

	// Alpha is the regularization strength.
	Alpha float64

	weights   []float64
	intercept float64
	nFeatures int
	logger    log.Logger
}

// NewRidge creates a new untrained ridge model with the given regularization
// strength.
func NewRidge(alpha float64) *Ridge {
	return &Ridge{
		state: model.NewStateManager(),
		Alpha: alpha,
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "Ridge",
			log.ComponentKey, "linear",
		),
	}
}

// Fit trains the model by solving the penalized normal equations
// (X'X + αI)w = X'y.
func (rd *Ridge) Fit(X, y mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "Ridge.Fit")

	startTime := time.Now()
	r, c, err := validateFit("Ridge.Fit", X, y)
	if err != nil {
		return err
	}
	if rd.Alpha < 0 {
		return regressErrors.NewValidationError("alpha", "must be non-negative", rd.Alpha)
	}

	weights, intercept, err := solvePenalizedNormal(X, y, rd.Alpha)
	if err != nil {
		return err
	}

	rd.weights = weights
	rd.intercept = intercept
	rd.nFeatures = c
	rd.state.SetFitted()
	rd.state.SetDimensions(c, r)

	rd.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.AlphaKey, rd.Alpha,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// Predict returns predictions for X as an (n, 1) matrix.
func (rd *Ridge) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer regressErrors.Recover(&err, "Ridge.Predict")
	if !rd.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("Ridge", "Predict")
	}

	_, c := X.Dims()
	if c != rd.nFeatures {
		return nil, regressErrors.NewDimensionError("Ridge.Predict", rd.nFeatures, c, 1)
	}

	return predictLinear(X, rd.weights, rd.intercept), nil
}

// Coefficients returns the fitted coefficient vector.
func (rd *Ridge) Coefficients() []float64 {
	if rd.weights == nil {
		return nil
	}
	return append([]float64(nil), rd.weights...)
}

// Intercept returns the fitted intercept.
func (rd *Ridge) Intercept() float64 {
	return rd.intercept
}

// Clone returns a fresh unfitted ridge model with the same alpha.
func (rd *Ridge) Clone() Regressor {
	return NewRidge(rd.Alpha)
}

// IsFitted returns whether the model has been fitted.
func (rd *Ridge) IsFitted() bool {
	return rd.state.IsFitted()
}
