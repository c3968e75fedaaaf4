package linear

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// noisyLinearData builds y = 3*x0 - 2*x1 + 1 + noise with standard normal
// features.
func noisyLinearData(n int, noise float64, seed int64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := rng.NormFloat64()
		x1 := rng.NormFloat64()
		X.Set(i, 0, x0)
		X.Set(i, 1, x1)
		y.Set(i, 0, 3*x0-2*x1+1+noise*rng.NormFloat64())
	}
	return X, y
}

func TestLinearRegressionExactFit(t *testing.T) {
	// y = 2x + 1, recoverable exactly.
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{3, 5, 7, 9, 11})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	coefs := lr.Coefficients()
	if len(coefs) != 1 {
		t.Fatalf("Coefficients() length = %d, want 1", len(coefs))
	}
	if math.Abs(coefs[0]-2.0) > 1e-8 {
		t.Errorf("coefficient = %v, want 2.0", coefs[0])
	}
	if math.Abs(lr.Intercept()-1.0) > 1e-8 {
		t.Errorf("intercept = %v, want 1.0", lr.Intercept())
	}

	pred, err := lr.Predict(mat.NewDense(2, 1, []float64{6, 7}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(pred.At(0, 0)-13.0) > 1e-8 || math.Abs(pred.At(1, 0)-15.0) > 1e-8 {
		t.Errorf("Predict() = [%v, %v], want [13, 15]", pred.At(0, 0), pred.At(1, 0))
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(score-1.0) > 1e-10 {
		t.Errorf("Score() = %v, want 1.0", score)
	}
}

func TestLinearRegressionNotFitted(t *testing.T) {
	lr := NewLinearRegression()
	if _, err := lr.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Predict() before Fit() should return an error")
	}
}

func TestLinearRegressionDimensionMismatch(t *testing.T) {
	X, y := noisyLinearData(20, 0.1, 1)

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := lr.Predict(mat.NewDense(3, 5, nil)); err == nil {
		t.Error("Predict() with wrong feature count should return an error")
	}
}

func TestRidgeShrinksCoefficients(t *testing.T) {
	X, y := noisyLinearData(50, 1.0, 3)

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("LinearRegression.Fit() error = %v", err)
	}

	rd := NewRidge(50.0)
	if err := rd.Fit(X, y); err != nil {
		t.Fatalf("Ridge.Fit() error = %v", err)
	}

	olsNorm := l2(lr.Coefficients())
	ridgeNorm := l2(rd.Coefficients())
	if ridgeNorm >= olsNorm {
		t.Errorf("ridge norm %v should be below OLS norm %v", ridgeNorm, olsNorm)
	}
}

func TestRidgeZeroAlphaMatchesOLS(t *testing.T) {
	X, y := noisyLinearData(40, 0.5, 4)

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("LinearRegression.Fit() error = %v", err)
	}

	rd := NewRidge(0)
	if err := rd.Fit(X, y); err != nil {
		t.Fatalf("Ridge.Fit() error = %v", err)
	}

	for i, w := range lr.Coefficients() {
		if math.Abs(w-rd.Coefficients()[i]) > 1e-8 {
			t.Errorf("coefficient %d: ridge(0) = %v, OLS = %v", i, rd.Coefficients()[i], w)
		}
	}
}

func TestRidgeNegativeAlpha(t *testing.T) {
	X, y := noisyLinearData(10, 0.1, 5)
	rd := NewRidge(-1)
	if err := rd.Fit(X, y); err == nil {
		t.Error("Fit() with negative alpha should return an error")
	}
}

func TestLassoSparsity(t *testing.T) {
	// Only x0 carries signal; the L1 penalty should zero out x1.
	rng := rand.New(rand.NewSource(6))
	n := 100
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := rng.NormFloat64()
		x1 := rng.NormFloat64()
		X.Set(i, 0, x0)
		X.Set(i, 1, x1)
		y.Set(i, 0, 5*x0+0.01*rng.NormFloat64())
	}

	ls := NewLasso(1.0)
	if err := ls.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	coefs := ls.Coefficients()
	if coefs[0] < 3.0 {
		t.Errorf("informative coefficient = %v, want > 3", coefs[0])
	}
	if math.Abs(coefs[1]) > 0.2 {
		t.Errorf("noise coefficient = %v, want near 0", coefs[1])
	}
	if got := ls.SupportSize(); got != 1 {
		t.Errorf("SupportSize() = %d, want 1", got)
	}
}

func TestLassoNotFitted(t *testing.T) {
	ls := NewLasso(1.0)
	if _, err := ls.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Predict() before Fit() should return an error")
	}
}

func TestElasticNetValidation(t *testing.T) {
	X, y := noisyLinearData(10, 0.1, 7)

	for _, ratio := range []float64{-0.1, 1.5} {
		en := NewElasticNet(1.0, ratio)
		if err := en.Fit(X, y); err == nil {
			t.Errorf("Fit() with l1_ratio %v should return an error", ratio)
		}
	}
}

func TestElasticNetFit(t *testing.T) {
	X, y := noisyLinearData(80, 0.2, 8)

	en := NewElasticNet(0.1, 0.5)
	if err := en.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	coefs := en.Coefficients()
	if len(coefs) != 2 {
		t.Fatalf("Coefficients() length = %d, want 2", len(coefs))
	}
	// Regularized estimates stay near the true weights (3, -2).
	if coefs[0] < 2.0 || coefs[0] > 3.5 {
		t.Errorf("coefficient 0 = %v, want near 3", coefs[0])
	}
	if coefs[1] > -1.2 || coefs[1] < -2.5 {
		t.Errorf("coefficient 1 = %v, want near -2", coefs[1])
	}
}

func TestRidgeCVSelectsFromGrid(t *testing.T) {
	X, y := noisyLinearData(60, 1.0, 9)

	grid := []float64{0.1, 1.0, 10.0}
	rc := NewRidgeCV(grid, 5)
	rc.Seed = 42
	if err := rc.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	found := false
	for _, a := range grid {
		if rc.Alpha == a {
			found = true
		}
	}
	if !found {
		t.Errorf("selected alpha %v is not in the grid %v", rc.Alpha, grid)
	}

	if _, err := rc.Predict(X); err != nil {
		t.Errorf("Predict() after CV fit error = %v", err)
	}
}

func TestRidgeCVDeterministic(t *testing.T) {
	X, y := noisyLinearData(60, 1.0, 10)
	grid := []float64{0.1, 1.0, 10.0}

	a := NewRidgeCV(grid, 5)
	a.Seed = 42
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	b := NewRidgeCV(grid, 5)
	b.Seed = 42
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if a.Alpha != b.Alpha {
		t.Errorf("same seed selected different alphas: %v vs %v", a.Alpha, b.Alpha)
	}
}

func TestLassoCVSelectsFromGrid(t *testing.T) {
	X, y := noisyLinearData(60, 0.5, 11)

	grid := []float64{0.01, 0.1, 1.0}
	lc := NewLassoCV(grid, 5)
	lc.Seed = 42
	if err := lc.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	found := false
	for _, a := range grid {
		if lc.Alpha == a {
			found = true
		}
	}
	if !found {
		t.Errorf("selected alpha %v is not in the grid %v", lc.Alpha, grid)
	}
}

func TestElasticNetCVSelectsPair(t *testing.T) {
	X, y := noisyLinearData(60, 0.5, 12)

	alphas := []float64{0.01, 0.1}
	ratios := []float64{0.1, 0.5, 0.9}
	ec := NewElasticNetCV(alphas, ratios, 5)
	ec.Seed = 42
	if err := ec.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	foundAlpha, foundRatio := false, false
	for _, a := range alphas {
		if ec.Alpha == a {
			foundAlpha = true
		}
	}
	for _, r := range ratios {
		if ec.L1Ratio == r {
			foundRatio = true
		}
	}
	if !foundAlpha || !foundRatio {
		t.Errorf("selected pair (%v, %v) outside the grids", ec.Alpha, ec.L1Ratio)
	}
}

func TestCVEmptyGrid(t *testing.T) {
	X, y := noisyLinearData(20, 0.1, 13)

	rc := NewRidgeCV(nil, 5)
	if err := rc.Fit(X, y); err == nil {
		t.Error("RidgeCV.Fit() with empty grid should return an error")
	}

	ec := NewElasticNetCV([]float64{0.1}, nil, 5)
	if err := ec.Fit(X, y); err == nil {
		t.Error("ElasticNetCV.Fit() with empty ratio grid should return an error")
	}
}

func l2(ws []float64) float64 {
	var sum float64
	for _, w := range ws {
		sum += w * w
	}
	return math.Sqrt(sum)
}
