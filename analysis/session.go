// Package analysis implements the regression analysis engine.
//
// A Session owns one feature matrix and target vector, their train/test
// split, the fitted preprocessing state, the registered models, and the
// comparison table of per-model metrics. Sessions are created once per
// analysis, mutated by preprocessing and fitting, and discarded afterwards;
// they are not safe for concurrent mutation.
//
// Analyze runs the whole default workflow in one call.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/mlkit-go/regress/linear"
	"github.com/mlkit-go/regress/modelselection"
	regressErrors "github.com/mlkit-go/regress/pkg/errors"
	"github.com/mlkit-go/regress/pkg/log"
	"github.com/mlkit-go/regress/preprocessing"
)

// Registered model names, fixed per variant.
const (
	ModelLinear     = "Linear"
	ModelRidge      = "Ridge"
	ModelLasso      = "Lasso"
	ModelElasticNet = "ElasticNet"
)

// Workflow defaults.
const (
	DefaultTestSize     = 0.2
	DefaultSeed         = 42
	DefaultFolds        = 5
	DefaultVIFThreshold = 5.0
	DefaultTopN         = 10
)

// Default hyperparameter grids for the cross-validated variants.
var (
	DefaultAlphas   = []float64{0.1, 1.0, 10.0}
	DefaultL1Ratios = []float64{0.1, 0.5, 0.9}
)

// Session holds the state of one regression analysis.
type Session struct {
	x *mat.Dense
	y *mat.VecDense

	xTrain, xTest *mat.Dense
	yTrain, yTest *mat.VecDense

	scaler *preprocessing.StandardScaler
	poly   *preprocessing.PolynomialFeatures

	models map[string]linear.Regressor
	table  map[string]*MetricSet

	testSize float64
	seed     int64
	logger   log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithTestSize sets the fraction of rows held out for testing. Default 0.2.
func WithTestSize(testSize float64) Option {
	return func(s *Session) { s.testSize = testSize }
}

// WithSeed sets the seed driving the split and all fold layouts. Default 42.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// NewSession validates the inputs and derives the train/test split. X must be
// an N×M matrix of finite values and y a target vector of length N.
func NewSession(X *mat.Dense, y *mat.VecDense, opts ...Option) (*Session, error) {
	if X == nil || y == nil {
		return nil, regressErrors.NewValueError("NewSession", "X and y must be non-nil")
	}

	n, m := X.Dims()
	if n == 0 || m == 0 {
		return nil, regressErrors.NewValueError("NewSession", "empty data")
	}
	if y.Len() != n {
		return nil, regressErrors.NewDimensionError("NewSession", n, y.Len(), 0)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if v := X.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, regressErrors.NewValueError("NewSession", "X contains non-finite values")
			}
		}
		if v := y.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, regressErrors.NewValueError("NewSession", "y contains non-finite values")
		}
	}

	s := &Session{
		x:        mat.DenseCopyOf(X),
		y:        mat.VecDenseCopyOf(y),
		scaler:   preprocessing.NewStandardScaler(),
		models:   make(map[string]linear.Regressor),
		table:    make(map[string]*MetricSet),
		testSize: DefaultTestSize,
		seed:     DefaultSeed,
		logger:   log.GetLoggerWithName("analysis"),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	s.xTrain, s.xTest, s.yTrain, s.yTest, err = modelselection.TrainTestSplit(s.x, s.y, s.testSize, s.seed)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session created",
		log.SamplesKey, n,
		log.FeaturesKey, m,
		log.RandomSeedKey, s.seed,
	)

	return s, nil
}

// PreprocessConfig selects the optional preprocessing steps.
type PreprocessConfig struct {
	// Scale standardizes features using statistics fit on the training
	// partition only.
	Scale bool

	// PolyDegree, when non-zero, expands features with all polynomial
	// combinations up to that degree before scaling. Must be positive.
	PolyDegree int
}

// DefaultPreprocess scales features without polynomial expansion.
var DefaultPreprocess = PreprocessConfig{Scale: true}

// Preprocess applies the configured steps to the train and test partitions in
// place. Polynomial expansion runs before scaling so the scaler sees the
// expanded feature space; both are fit on the training partition only.
func (s *Session) Preprocess(cfg PreprocessConfig) error {
	if cfg.PolyDegree != 0 {
		if cfg.PolyDegree < 1 {
			return regressErrors.NewValidationError("poly_degree", "must be a positive integer", cfg.PolyDegree)
		}

		s.poly = preprocessing.NewPolynomialFeatures(cfg.PolyDegree)
		expandedTrain, err := s.poly.FitTransform(s.xTrain)
		if err != nil {
			return err
		}
		expandedTest, err := s.poly.Transform(s.xTest)
		if err != nil {
			return err
		}
		s.xTrain, s.xTest = expandedTrain, expandedTest
	}

	if cfg.Scale {
		scaledTrain, err := s.scaler.FitTransform(s.xTrain)
		if err != nil {
			return err
		}
		scaledTest, err := s.scaler.Transform(s.xTest)
		if err != nil {
			return err
		}
		s.xTrain, s.xTest = scaledTrain, scaledTest
	}

	_, m := s.xTrain.Dims()
	s.logger.Info("Preprocessing completed",
		log.OperationKey, log.OperationTransform,
		log.PhaseKey, log.PhasePreprocessing,
		log.FeaturesKey, m,
	)

	return nil
}

// TrainShape returns the dimensions of the (possibly preprocessed) training
// partition.
func (s *Session) TrainShape() (rows, cols int) {
	return s.xTrain.Dims()
}

// TestShape returns the dimensions of the (possibly preprocessed) test
// partition.
func (s *Session) TestShape() (rows, cols int) {
	return s.xTest.Dims()
}

// ModelNames returns the registered model names in sorted order.
func (s *Session) ModelNames() []string {
	return s.modelNames()
}

func (s *Session) modelNames() []string {
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Session) lookup(name string) (linear.Regressor, error) {
	m, ok := s.models[name]
	if !ok {
		return nil, regressErrors.NewModelNotFoundError(name, s.modelNames())
	}
	return m, nil
}

// predictVec runs a model over X and flattens the (n, 1) prediction matrix.
func predictVec(m linear.Regressor, X *mat.Dense) (*mat.VecDense, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return nil, err
	}
	r, _ := pred.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, pred.At(i, 0))
	}
	return v, nil
}
