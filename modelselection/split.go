// Package modelselection provides deterministic data splitting and
// cross-validation utilities.
//
// All shuffling is driven by caller-supplied seeds: the same seed and inputs
// always produce byte-for-byte identical partitions and fold layouts.
package modelselection

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

// TrainTestSplit partitions X and y into train and test subsets using a
// seeded shuffle-then-split. testSize is the fraction of rows assigned to the
// test partition and must lie in (0, 1).
func TrainTestSplit(X *mat.Dense, y *mat.VecDense, testSize float64, seed int64) (XTrain, XTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	if X == nil || y == nil {
		return nil, nil, nil, nil, regressErrors.NewValueError("TrainTestSplit", "X and y must be non-nil")
	}

	n, c := X.Dims()
	if n == 0 || c == 0 {
		return nil, nil, nil, nil, regressErrors.NewValueError("TrainTestSplit", "empty data")
	}
	if y.Len() != n {
		return nil, nil, nil, nil, regressErrors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, regressErrors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest >= n {
		nTest = n - 1
	}
	nTrain := n - nTest

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	XTest = mat.NewDense(nTest, c, nil)
	yTest = mat.NewVecDense(nTest, nil)
	for i := 0; i < nTest; i++ {
		copyRow(XTest, i, X, perm[i])
		yTest.SetVec(i, y.AtVec(perm[i]))
	}

	XTrain = mat.NewDense(nTrain, c, nil)
	yTrain = mat.NewVecDense(nTrain, nil)
	for i := 0; i < nTrain; i++ {
		copyRow(XTrain, i, X, perm[nTest+i])
		yTrain.SetVec(i, y.AtVec(perm[nTest+i]))
	}

	return XTrain, XTest, yTrain, yTest, nil
}

// KFold partitions row indices [0, n) into k disjoint validation folds over a
// seeded permutation. Fold sizes differ by at most one row.
func KFold(n, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, regressErrors.NewValidationError("folds", "must be at least 2", k)
	}
	if n < k {
		return nil, regressErrors.NewValidationError("folds", "cannot exceed the number of samples", k)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	folds := make([][]int, k)
	base := n / k
	extra := n % k
	offset := 0
	for f := 0; f < k; f++ {
		size := base
		if f < extra {
			size++
		}
		folds[f] = append([]int(nil), perm[offset:offset+size]...)
		offset += size
	}

	return folds, nil
}

func copyRow(dst *mat.Dense, dstRow int, src *mat.Dense, srcRow int) {
	_, c := src.Dims()
	for j := 0; j < c; j++ {
		dst.Set(dstRow, j, src.At(srcRow, j))
	}
}
