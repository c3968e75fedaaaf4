package log

// Model and operation context keys.
const (
	// ModelNameKey identifies the regression variant.
	// Examples: "Linear", "Ridge", "Lasso", "ElasticNet"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "evaluate", "render"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "linear", "preprocessing", "analysis"
	ComponentKey = "ml.component"

	// PhaseKey indicates the workflow phase.
	// Examples: "training", "inference", "preprocessing", "diagnostics"
	PhaseKey = "ml.phase"
)

// Data shape keys.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns being processed.
	FeaturesKey = "data.features"
)

// Performance and metric keys.
const (
	// DurationMsKey records execution time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records an R² value.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records solver iteration counts.
	IterationKey = "training.iteration"
)

// Hyperparameter and configuration keys.
const (
	// AlphaKey records a regularization strength.
	AlphaKey = "hyperparams.alpha"

	// L1RatioKey records an elastic-net mixing ratio.
	L1RatioKey = "hyperparams.l1_ratio"

	// RandomSeedKey records the seed used for shuffling and fold layout.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationEvaluate  = "evaluate"
	OperationRender    = "render"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
	PhaseDiagnostics   = "diagnostics"
)
