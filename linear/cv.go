package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/modelselection"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// The cross-validated variants select regularization strength by k-fold
// cross-validation over a candidate grid, then refit on the full training
// data with the winning parameters. Selection minimizes mean squared error;
// ties are broken by grid order, so a fixed seed makes the choice
// deterministic.

// RidgeCV selects the ridge alpha by cross-validation.
type RidgeCV struct {
	*Ridge

	// Alphas is the candidate grid of regularization strengths.
	Alphas []float64

	// Folds is the number of cross-validation folds.
	Folds int

	// Seed drives the fold layout.
	Seed int64
}

// NewRidgeCV creates a cross-validated ridge model over the given alpha grid.
func NewRidgeCV(alphas []float64, folds int) *RidgeCV {
	return &RidgeCV{
		Ridge:  NewRidge(0),
		Alphas: alphas,
		Folds:  folds,
	}
}

// Fit selects the best alpha by cross-validation on X, y and refits the final
// model with it.
func (rc *RidgeCV) Fit(X, y mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "RidgeCV.Fit")
	if len(rc.Alphas) == 0 {
		return regressErrors.NewValidationError("alphas", "must not be empty", rc.Alphas)
	}

	Xd, yd, err := denseInputs("RidgeCV.Fit", X, y)
	if err != nil {
		return err
	}

	bestAlpha, err := selectByCV(rc.Alphas, rc.Folds, rc.Seed, Xd, yd, func(alpha float64) modelselection.Estimator {
		return NewRidge(alpha)
	})
	if err != nil {
		return err
	}

	rc.Ridge = NewRidge(bestAlpha)
	return rc.Ridge.Fit(X, y)
}

// Clone returns a fresh unfitted RidgeCV with the same grid and fold layout.
func (rc *RidgeCV) Clone() Regressor {
	clone := NewRidgeCV(rc.Alphas, rc.Folds)
	clone.Seed = rc.Seed
	return clone
}

// LassoCV selects the lasso alpha by cross-validation.
type LassoCV struct {
	*Lasso

	// Alphas is the candidate grid of regularization strengths.
	Alphas []float64

	// Folds is the number of cross-validation folds.
	Folds int

	// Seed drives the fold layout.
	Seed int64

	// MaxIter and Tol configure the coordinate descent solver for both the
	// fold fits and the final fit.
	MaxIter int
	Tol     float64
}

// NewLassoCV creates a cross-validated lasso model over the given alpha grid.
func NewLassoCV(alphas []float64, folds int) *LassoCV {
	return &LassoCV{
		Lasso:   NewLasso(0),
		Alphas:  alphas,
		Folds:   folds,
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
	}
}

// Fit selects the best alpha by cross-validation on X, y and refits the final
// model with it.
func (lc *LassoCV) Fit(X, y mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "LassoCV.Fit")
	if len(lc.Alphas) == 0 {
		return regressErrors.NewValidationError("alphas", "must not be empty", lc.Alphas)
	}

	Xd, yd, err := denseInputs("LassoCV.Fit", X, y)
	if err != nil {
		return err
	}

	bestAlpha, err := selectByCV(lc.Alphas, lc.Folds, lc.Seed, Xd, yd, func(alpha float64) modelselection.Estimator {
		return lc.newLasso(alpha)
	})
	if err != nil {
		return err
	}

	lc.Lasso = lc.newLasso(bestAlpha)
	return lc.Lasso.Fit(X, y)
}

func (lc *LassoCV) newLasso(alpha float64) *Lasso {
	ls := NewLasso(alpha)
	ls.MaxIter = lc.MaxIter
	ls.Tol = lc.Tol
	return ls
}

// Clone returns a fresh unfitted LassoCV with the same grid and solver
// settings.
func (lc *LassoCV) Clone() Regressor {
	clone := NewLassoCV(lc.Alphas, lc.Folds)
	clone.Seed = lc.Seed
	clone.MaxIter = lc.MaxIter
	clone.Tol = lc.Tol
	return clone
}

// ElasticNetCV jointly selects the elastic net alpha and L1 ratio by
// cross-validation over the product of both grids.
type ElasticNetCV struct {
	*ElasticNet

	// Alphas is the candidate grid of regularization strengths.
	Alphas []float64

	// L1Ratios is the candidate grid of mixing ratios.
	L1Ratios []float64

	// Folds is the number of cross-validation folds.
	Folds int

	// Seed drives the fold layout.
	Seed int64

	// MaxIter and Tol configure the coordinate descent solver for both the
	// fold fits and the final fit.
	MaxIter int
	Tol     float64
}

// NewElasticNetCV creates a cross-validated elastic net model over the given
// alpha and L1-ratio grids.
func NewElasticNetCV(alphas, l1Ratios []float64, folds int) *ElasticNetCV {
	return &ElasticNetCV{
		ElasticNet: NewElasticNet(0, 0.5),
		Alphas:     alphas,
		L1Ratios:   l1Ratios,
		Folds:      folds,
		MaxIter:    DefaultMaxIter,
		Tol:        DefaultTol,
	}
}

// Fit selects the best (alpha, l1 ratio) pair by cross-validation on X, y and
// refits the final model with it.
func (ec *ElasticNetCV) Fit(X, y mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "ElasticNetCV.Fit")
	if len(ec.Alphas) == 0 {
		return regressErrors.NewValidationError("alphas", "must not be empty", ec.Alphas)
	}
	if len(ec.L1Ratios) == 0 {
		return regressErrors.NewValidationError("l1_ratios", "must not be empty", ec.L1Ratios)
	}

	Xd, yd, err := denseInputs("ElasticNetCV.Fit", X, y)
	if err != nil {
		return err
	}

	bestMSE := math.Inf(1)
	bestAlpha := ec.Alphas[0]
	bestRatio := ec.L1Ratios[0]
	for _, alpha := range ec.Alphas {
		for _, ratio := range ec.L1Ratios {
			alpha, ratio := alpha, ratio
			mse, err := modelselection.CrossValMSE(func() modelselection.Estimator {
				return ec.newElasticNet(alpha, ratio)
			}, Xd, yd, ec.Folds, ec.Seed)
			if err != nil {
				return err
			}
			if mse < bestMSE {
				bestMSE = mse
				bestAlpha = alpha
				bestRatio = ratio
			}
		}
	}

	ec.ElasticNet = ec.newElasticNet(bestAlpha, bestRatio)
	return ec.ElasticNet.Fit(X, y)
}

func (ec *ElasticNetCV) newElasticNet(alpha, ratio float64) *ElasticNet {
	en := NewElasticNet(alpha, ratio)
	en.MaxIter = ec.MaxIter
	en.Tol = ec.Tol
	return en
}

// Clone returns a fresh unfitted ElasticNetCV with the same grids and solver
// settings.
func (ec *ElasticNetCV) Clone() Regressor {
	clone := NewElasticNetCV(ec.Alphas, ec.L1Ratios, ec.Folds)
	clone.Seed = ec.Seed
	clone.MaxIter = ec.MaxIter
	clone.Tol = ec.Tol
	return clone
}

// selectByCV returns the grid value minimizing cross-validated MSE. Ties keep
// the earliest grid entry.
func selectByCV(grid []float64, folds int, seed int64, X *mat.Dense, y *mat.VecDense, build func(v float64) modelselection.Estimator) (float64, error) {
	bestMSE := math.Inf(1)
	best := grid[0]
	for _, v := range grid {
		v := v
		mse, err := modelselection.CrossValMSE(func() modelselection.Estimator {
			return build(v)
		}, X, y, folds, seed)
		if err != nil {
			return 0, err
		}
		if mse < bestMSE {
			bestMSE = mse
			best = v
		}
	}

	logger := log.GetLoggerWithName("linear")
	logger.Debug("Cross-validated selection completed",
		log.OperationKey, log.OperationFit,
		log.AlphaKey, best,
	)

	return best, nil
}

// denseInputs converts generic matrix inputs to the concrete types the
// cross-validation utilities operate on.
func denseInputs(op string, X, y mat.Matrix) (*mat.Dense, *mat.VecDense, error) {
	r, _, err := validateFit(op, X, y)
	if err != nil {
		return nil, nil, err
	}

	Xd := mat.DenseCopyOf(X)
	yd := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yd.SetVec(i, y.At(i, 0))
	}
	return Xd, yd, nil
}
