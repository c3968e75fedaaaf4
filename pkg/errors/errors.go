// Package errors provides structured error handling and the warning system
// used across the regression engine. Errors carry stack traces via
// cockroachdb/errors and marshal themselves into zerolog events for
// structured logging.
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("regress-warning: %v\n", w)
	}
	// zerolog sink, registered lazily by pkg/log to avoid an import cycle.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the engine-wide warning handler. Warnings are
// advisory conditions (failed convergence, degraded diagnostics) that never
// abort the surrounding operation.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings through a zerolog-backed sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the zerolog sink when one is registered,
// falling back to the plain handler otherwise.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConvergenceWarning is raised when an iterative solver hits its iteration
// cap before meeting its tolerance. The fit is still usable; the warning
// records how far the solver got.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max_iter or adjusting parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// DiagnosticUnavailableWarning is raised when an advisory diagnostic (such as
// the collinearity check) cannot be computed numerically. The analysis
// continues; the diagnostic degrades to an "unavailable" result.
type DiagnosticUnavailableWarning struct {
	Diagnostic string
	Reason     string
}

func (w *DiagnosticUnavailableWarning) Error() string {
	return fmt.Sprintf("%s diagnostic unavailable: %s", w.Diagnostic, w.Reason)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *DiagnosticUnavailableWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("diagnostic", w.Diagnostic).
		Str("reason", w.Reason).
		Str("type", "DiagnosticUnavailableWarning")
}

// NewDiagnosticUnavailableWarning creates a new DiagnosticUnavailableWarning.
func NewDiagnosticUnavailableWarning(diagnostic, reason string) *DiagnosticUnavailableWarning {
	return &DiagnosticUnavailableWarning{Diagnostic: diagnostic, Reason: reason}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Predict, Transform or Score is called on an
// estimator that has not been fitted.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("regress: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when input data has a different shape than
// expected.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("regress: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError is returned when a configuration parameter fails
// validation, for example a non-positive polynomial degree.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("regress: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned when an argument's value is malformed or out of
// range, for example a target vector containing NaN.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("regress: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelNotFoundError is returned when a diagnostic is requested for a model
// name that has not been registered with the session.
type ModelNotFoundError struct {
	Name      string
	Available []string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("regress: model %q not found. Available models: [%s]", e.Name, strings.Join(e.Available, ", "))
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ModelNotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.Name).
		Strs("available", e.Available).
		Str("type", "ModelNotFoundError")
}

// NewModelNotFoundError creates a ModelNotFoundError with a stack trace
// attached.
func NewModelNotFoundError(name string, available []string) error {
	err := &ModelNotFoundError{Name: name, Available: available}
	return errors.WithStack(err)
}

// NoCoefficientsError is returned when a coefficient-based operation (feature
// importance, coefficient plot) is requested on a model without coefficients.
type NoCoefficientsError struct {
	Name string
}

func (e *NoCoefficientsError) Error() string {
	return fmt.Sprintf("regress: model %q does not expose coefficients", e.Name)
}

// NewNoCoefficientsError creates a NoCoefficientsError with a stack trace
// attached.
func NewNoCoefficientsError(name string) error {
	err := &NoCoefficientsError{Name: name}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty matrix or vector is supplied.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a design matrix cannot be solved.
	ErrSingularMatrix = New("singular matrix")
)
