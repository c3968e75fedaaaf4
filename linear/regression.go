package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/core/model"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// LinearRegression is an ordinary least squares model.
type LinearRegression struct {
	state     *model.StateManager
	weights   []float64
	intercept float64
	nFeatures int
	logger    log.Logger
}

// NewLinearRegression creates a new untrained ordinary least squares model.
// The normal equations are solved with an intercept column appended to the
// design matrix.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{
		state: model.NewStateManager(),
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "LinearRegression",
			log.ComponentKey, "linear",
		),
	}
}

// Fit trains the model on X and y by solving the normal equations
// (X'X)w = X'y with an unregularized intercept term.
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c, err := validateFit("LinearRegression.Fit", X, y)
	if err != nil {
		return err
	}

	weights, intercept, err := solvePenalizedNormal(X, y, 0)
	if err != nil {
		return err
	}

	lr.weights = weights
	lr.intercept = intercept
	lr.nFeatures = c
	lr.state.SetFitted()
	lr.state.SetDimensions(c, r)

	lr.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// Predict returns predictions for X as an (n, 1) matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer regressErrors.Recover(&err, "LinearRegression.Predict")
	if !lr.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("LinearRegression", "Predict")
	}

	_, c := X.Dims()
	if c != lr.nFeatures {
		return nil, regressErrors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, c, 1)
	}

	return predictLinear(X, lr.weights, lr.intercept), nil
}

// Coefficients returns the fitted coefficient vector.
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.weights == nil {
		return nil
	}
	return append([]float64(nil), lr.weights...)
}

// Intercept returns the fitted intercept.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Clone returns a fresh unfitted ordinary least squares model.
func (lr *LinearRegression) Clone() Regressor {
	return NewLinearRegression()
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Score computes the coefficient of determination (R²) of the model on X, y.
func (lr *LinearRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer regressErrors.Recover(&err, "LinearRegression.Score")
	if !lr.state.IsFitted() {
		return 0, regressErrors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yPredVal := yPred.At(i, 0)

		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPredVal) * (yTrue - yPredVal)
	}

	if tss == 0 {
		return 0, regressErrors.NewValueError("LinearRegression.Score", "total sum of squares is zero")
	}

	return 1 - rss/tss, nil
}

// solvePenalizedNormal solves the normal equations with an L2 penalty of
// strength alpha on the coefficients (never on the intercept). alpha == 0
// gives ordinary least squares.
func solvePenalizedNormal(X, y mat.Matrix, alpha float64) (weights []float64, intercept float64, err error) {
	r, c := X.Dims()

	// Design matrix with a leading column of ones for the intercept.
	XWithIntercept := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		XWithIntercept.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			XWithIntercept.Set(i, j+1, X.At(i, j))
		}
	}

	var XT mat.Dense
	XT.CloneFrom(XWithIntercept.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XWithIntercept)

	if alpha > 0 {
		for j := 1; j <= c; j++ {
			XTX.Set(j, j, XTX.At(j, j)+alpha)
		}
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	var solution mat.VecDense
	if err := solution.SolveVec(&XTX, &XTy); err != nil {
		return nil, 0, regressErrors.Wrap(regressErrors.ErrSingularMatrix, "solving normal equations")
	}

	intercept = solution.AtVec(0)
	weights = make([]float64, c)
	for j := 0; j < c; j++ {
		weights[j] = solution.AtVec(j + 1)
	}

	return weights, intercept, nil
}
