// Package regress provides an end-to-end regression analysis workflow.
//
// Given a numeric feature matrix and target vector, the engine splits the
// data, optionally preprocesses it, fits four regularized regression variants
// (ordinary least squares, ridge, lasso, elastic net), evaluates and ranks
// them, and produces diagnostic artifacts: metric tables, base64-encoded plot
// images, and feature-importance rankings.
//
// The main entry point is the analysis package:
//
//	report, err := analysis.Analyze(X, y)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := json.Marshal(report)
//
// Finer-grained control is available through analysis.Session, which exposes
// each step of the workflow (splitting, preprocessing, per-variant fitting,
// collinearity checks, diagnostics, regularization paths) individually.
//
// All computation is deterministic: identical inputs and seed always produce
// identical splits, fits, and metrics. Sessions are single-threaded and must
// not be shared between goroutines while being mutated.
package regress
