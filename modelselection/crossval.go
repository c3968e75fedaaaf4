package modelselection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/metrics"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

// Estimator is the minimal contract a model must satisfy to be
// cross-validated: fit on one partition, predict on another.
type Estimator interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// CrossValR2 computes the mean R² across k folds. Each fold trains a fresh
// estimator from the factory on the remaining rows and scores it on the held
// out rows.
func CrossValR2(factory func() Estimator, X *mat.Dense, y *mat.VecDense, folds int, seed int64) (float64, error) {
	return crossVal(factory, X, y, folds, seed, metrics.R2Score)
}

// CrossValMSE computes the mean squared error across k folds. Used for
// regularization-strength selection, where lower is better.
func CrossValMSE(factory func() Estimator, X *mat.Dense, y *mat.VecDense, folds int, seed int64) (float64, error) {
	return crossVal(factory, X, y, folds, seed, metrics.MSE)
}

func crossVal(factory func() Estimator, X *mat.Dense, y *mat.VecDense, folds int, seed int64, score func(yTrue, yPred *mat.VecDense) (float64, error)) (float64, error) {
	n, _ := X.Dims()
	if y.Len() != n {
		return 0, regressErrors.NewDimensionError("crossVal", n, y.Len(), 0)
	}

	foldIdx, err := KFold(n, folds, seed)
	if err != nil {
		return 0, err
	}

	inFold := make([]bool, n)
	var total float64
	for _, fold := range foldIdx {
		for i := range inFold {
			inFold[i] = false
		}
		for _, i := range fold {
			inFold[i] = true
		}

		trainIdx := make([]int, 0, n-len(fold))
		for i := 0; i < n; i++ {
			if !inFold[i] {
				trainIdx = append(trainIdx, i)
			}
		}

		XTrain, yTrain := subset(X, y, trainIdx)
		XVal, yVal := subset(X, y, fold)

		est := factory()
		if err := est.Fit(XTrain, yTrain); err != nil {
			return 0, regressErrors.Wrap(err, "cross-validation fold fit failed")
		}

		pred, err := est.Predict(XVal)
		if err != nil {
			return 0, regressErrors.Wrap(err, "cross-validation fold predict failed")
		}

		s, err := score(yVal, toVec(pred))
		if err != nil {
			return 0, regressErrors.Wrap(err, "cross-validation fold score failed")
		}
		total += s
	}

	return total / float64(len(foldIdx)), nil
}

func subset(X *mat.Dense, y *mat.VecDense, idx []int) (*mat.Dense, *mat.VecDense) {
	_, c := X.Dims()
	Xs := mat.NewDense(len(idx), c, nil)
	ys := mat.NewVecDense(len(idx), nil)
	for i, row := range idx {
		copyRow(Xs, i, X, row)
		ys.SetVec(i, y.AtVec(row))
	}
	return Xs, ys
}

func toVec(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
