package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/core/model"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
)

// PolynomialFeatures expands a feature matrix with all polynomial
// combinations of the input features up to Degree, excluding the constant
// bias column. For two features and degree 2 the output columns are
// [x0, x1, x0², x0·x1, x1²].
type PolynomialFeatures struct {
	state *model.StateManager

	// Degree is the maximum total degree of the generated terms.
	Degree int

	// NInputFeatures is the number of input features seen during Fit.
	NInputFeatures int

	// combos holds, per output column, the input column indices whose
	// product forms that term. Fixed at fit time so train and test expand
	// identically.
	combos [][]int
}

// NewPolynomialFeatures creates a polynomial feature expander of the given
// degree. The degree is validated at Fit time.
func NewPolynomialFeatures(degree int) *PolynomialFeatures {
	return &PolynomialFeatures{
		state:  model.NewStateManager(),
		Degree: degree,
	}
}

// Fit fixes the expansion's column structure on the training data.
func (p *PolynomialFeatures) Fit(X mat.Matrix) (err error) {
	defer regressErrors.Recover(&err, "PolynomialFeatures.Fit")
	if p.Degree < 1 {
		return regressErrors.NewValidationError("degree", "must be a positive integer", p.Degree)
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return regressErrors.NewValueError("PolynomialFeatures.Fit", "empty data")
	}

	p.NInputFeatures = c
	p.combos = p.combos[:0]
	for degree := 1; degree <= p.Degree; degree++ {
		p.combos = append(p.combos, combinationsWithReplacement(c, degree)...)
	}

	p.state.SetFitted()
	p.state.SetDimensions(c, r)
	return nil
}

// Transform expands X using the column structure fixed during Fit.
func (p *PolynomialFeatures) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer regressErrors.Recover(&err, "PolynomialFeatures.Transform")
	if !p.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("PolynomialFeatures", "Transform")
	}

	r, c := X.Dims()
	if c != p.NInputFeatures {
		return nil, regressErrors.NewDimensionError("PolynomialFeatures.Transform", p.NInputFeatures, c, 1)
	}

	result := mat.NewDense(r, len(p.combos), nil)
	for i := 0; i < r; i++ {
		for k, combo := range p.combos {
			term := 1.0
			for _, j := range combo {
				term *= X.At(i, j)
			}
			result.Set(i, k, term)
		}
	}

	return result, nil
}

// FitTransform fits the expander on X and returns the expanded X.
func (p *PolynomialFeatures) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// NOutputFeatures returns the number of generated columns.
func (p *PolynomialFeatures) NOutputFeatures() int {
	return len(p.combos)
}

// IsFitted returns whether the expander has been fitted.
func (p *PolynomialFeatures) IsFitted() bool {
	return p.state.IsFitted()
}

// combinationsWithReplacement enumerates all non-decreasing index tuples of
// the given length over [0, nFeatures), in lexicographic order.
func combinationsWithReplacement(nFeatures, length int) [][]int {
	var result [][]int
	combo := make([]int, length)

	var recurse func(pos, start int)
	recurse = func(pos, start int) {
		if pos == length {
			result = append(result, append([]int(nil), combo...))
			return
		}
		for j := start; j < nFeatures; j++ {
			combo[pos] = j
			recurse(pos+1, j)
		}
	}
	recurse(0, 0)

	return result
}
