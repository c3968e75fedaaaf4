package linear

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// cdResult is the outcome of a coordinate descent run.
type cdResult struct {
	weights    []float64
	intercept  float64
	iterations int
	converged  bool
}

// coordinateDescent minimizes the elastic-net objective
//
//	(1/2n)·‖y − Xw − b‖² + α·ρ·‖w‖₁ + α·(1−ρ)/2·‖w‖₂²
//
// by cyclic coordinate descent with soft thresholding. l1Ratio ρ = 1 gives
// the lasso. Features and target are centered internally; the intercept is
// recovered from the column means afterwards. The coordinate update order is
// fixed, so the result is deterministic for identical inputs.
func coordinateDescent(X, y mat.Matrix, alpha, l1Ratio float64, maxIter int, tol float64) cdResult {
	n, p := X.Dims()

	// Column-major centered copy of X; centered copy of y.
	cols := make([][]float64, p)
	xMeans := make([]float64, p)
	for j := 0; j < p; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = X.At(i, j)
		}
		xMeans[j] = floats.Sum(col) / float64(n)
		floats.AddConst(-xMeans[j], col)
		cols[j] = col
	}

	yc := make([]float64, n)
	for i := 0; i < n; i++ {
		yc[i] = y.At(i, 0)
	}
	yMean := floats.Sum(yc) / float64(n)
	floats.AddConst(-yMean, yc)

	// Per-column second moments, fixed across iterations.
	colSq := make([]float64, p)
	for j := 0; j < p; j++ {
		var sq float64
		for i := 0; i < n; i++ {
			sq += cols[j][i] * cols[j][i]
		}
		colSq[j] = sq / float64(n)
	}

	weights := make([]float64, p)
	residuals := append([]float64(nil), yc...)

	l1Penalty := alpha * l1Ratio
	l2Penalty := alpha * (1 - l1Ratio)

	result := cdResult{}
	for iter := 0; iter < maxIter; iter++ {
		maxDelta := 0.0

		for j := 0; j < p; j++ {
			if colSq[j] == 0 {
				continue // constant column
			}

			oldWeight := weights[j]
			if oldWeight != 0 {
				floats.AddScaled(residuals, oldWeight, cols[j])
			}

			var rho float64
			for i := 0; i < n; i++ {
				rho += cols[j][i] * residuals[i]
			}
			rho /= float64(n)

			newWeight := softThreshold(rho, l1Penalty) / (colSq[j] + l2Penalty)
			if newWeight != 0 {
				floats.AddScaled(residuals, -newWeight, cols[j])
			}
			weights[j] = newWeight

			if delta := math.Abs(newWeight - oldWeight); delta > maxDelta {
				maxDelta = delta
			}
		}

		result.iterations = iter + 1
		if maxDelta < tol {
			result.converged = true
			break
		}
	}

	var dot float64
	for j := 0; j < p; j++ {
		dot += xMeans[j] * weights[j]
	}

	result.weights = weights
	result.intercept = yMean - dot
	return result
}

// softThreshold applies the soft-thresholding operator.
func softThreshold(z, lambda float64) float64 {
	switch {
	case z > lambda:
		return z - lambda
	case z < -lambda:
		return z + lambda
	default:
		return 0
	}
}
