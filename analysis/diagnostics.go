package analysis

import (
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
)

// DiagnosticBundle maps plot names to base64-encoded PNG images.
type DiagnosticBundle map[string]string

// Diagnostics renders the residual diagnostics for a registered model from
// its test-partition predictions: "predicted_vs_actual", "residuals" and
// "qq_plot", plus "coefficients" when the model exposes coefficients. Plots
// are rendered fresh on every call.
func (s *Session) Diagnostics(name string) (bundle DiagnosticBundle, err error) {
	defer regressErrors.Recover(&err, "Diagnostics")

	m, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	predVec, err := predictVec(m, s.xTest)
	if err != nil {
		return nil, err
	}

	n := predVec.Len()
	pred := make([]float64, n)
	actual := make([]float64, n)
	resid := make([]float64, n)
	for i := 0; i < n; i++ {
		pred[i] = predVec.AtVec(i)
		actual[i] = s.yTest.AtVec(i)
		resid[i] = actual[i] - pred[i]
	}

	bundle = make(DiagnosticBundle, 4)

	if bundle["predicted_vs_actual"], err = renderPredictedVsActual(pred, actual); err != nil {
		return nil, err
	}
	if bundle["residuals"], err = renderResiduals(pred, resid); err != nil {
		return nil, err
	}
	if bundle["qq_plot"], err = renderQQ(resid); err != nil {
		return nil, err
	}

	if coefs := m.Coefficients(); len(coefs) > 0 {
		if bundle["coefficients"], err = renderCoefficientBars(coefs); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("Diagnostics rendered",
		log.OperationKey, log.OperationRender,
		log.PhaseKey, log.PhaseDiagnostics,
		log.ModelNameKey, name,
	)

	return bundle, nil
}
