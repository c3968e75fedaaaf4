package analysis

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/mlkit-go/regress/linear"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// RegularizationPath traces how a model family's coefficients respond to the
// regularization strength. Coefficients holds one row per alpha, in the input
// grid order; Plot is the rendered trajectory as a base64-encoded PNG.
type RegularizationPath struct {
	Family       string      `json:"family"`
	Alphas       []float64   `json:"alphas"`
	Coefficients [][]float64 `json:"coefficients"`
	Plot         string      `json:"plot"`
}

// DefaultPathAlphas returns the default path grid: 100 points log-spaced
// between 1e-4 and 1e4.
func DefaultPathAlphas() []float64 {
	return floats.LogSpan(make([]float64, 100), 1e-4, 1e4)
}

// RegularizationPath refits the given family ("ridge" or "lasso", case
// insensitive) on the training partition once per alpha and collects the
// coefficient trajectories. A nil grid uses DefaultPathAlphas.
func (s *Session) RegularizationPath(family string, alphas []float64) (path *RegularizationPath, err error) {
	defer regressErrors.Recover(&err, "RegularizationPath")

	family = strings.ToLower(family)
	if family != "ridge" && family != "lasso" {
		return nil, regressErrors.NewValueError("RegularizationPath", "family must be ridge or lasso")
	}

	if alphas == nil {
		alphas = DefaultPathAlphas()
	}
	if len(alphas) == 0 {
		return nil, regressErrors.NewValueError("RegularizationPath", "empty alpha grid")
	}

	coefRows := make([][]float64, len(alphas))
	for i, alpha := range alphas {
		var m linear.Regressor
		switch family {
		case "ridge":
			m = linear.NewRidge(alpha)
		case "lasso":
			m = linear.NewLasso(alpha)
		}
		if err := m.Fit(s.xTrain, s.yTrain); err != nil {
			return nil, err
		}
		coefRows[i] = m.Coefficients()
	}

	plotB64, err := renderRegularizationPath(family, alphas, coefRows)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Regularization path traced",
		log.OperationKey, log.OperationRender,
		log.ModelNameKey, family,
	)

	return &RegularizationPath{
		Family:       family,
		Alphas:       append([]float64(nil), alphas...),
		Coefficients: coefRows,
		Plot:         plotB64,
	}, nil
}
