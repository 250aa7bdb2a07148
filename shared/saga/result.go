package saga

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FailureKind classifies every failure a step may report. Steps never retry
// internally and never leak raw storage errors; each failure is wrapped into a
// StepError exactly once at the point it is detected.
type FailureKind string

const (
	// FailureValidation means the input payload was malformed
	FailureValidation FailureKind = "validation"
	// FailureNotFound means a required order or prior transaction is missing
	FailureNotFound FailureKind = "not_found"
	// FailureWrite means the store reported a non-success write outcome
	FailureWrite FailureKind = "write"
	// FailureSimulated is the injected test-only failure path
	FailureSimulated FailureKind = "simulated"
)

// StepError is the typed failure a step reports to its orchestrator
type StepError struct {
	Step string
	Kind FailureKind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError wraps err into a classified step failure
func NewStepError(step string, kind FailureKind, err error) *StepError {
	return &StepError{Step: step, Kind: kind, Err: err}
}

// Errorf builds a classified step failure from a format string
func Errorf(step string, kind FailureKind, format string, args ...any) *StepError {
	return &StepError{Step: step, Kind: kind, Err: errors.Errorf(format, args...)}
}

// KindOf extracts the failure kind from an error chain. Unclassified errors
// count as write failures: the conservative bucket the caller treats as
// transient-or-fatal.
func KindOf(err error) FailureKind {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Kind
	}
	return FailureWrite
}

// StatusCode maps an error to the step result contract: 400 for validation
// and simulated failures, 404 for missing records, 500 for storage failures.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case FailureValidation, FailureSimulated:
		return http.StatusBadRequest
	case FailureNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// StepResult is the normalized {statusCode, body} shape every step invocation
// resolves to, success or failure.
type StepResult struct {
	StatusCode int `json:"status_code"`
	Body       any `json:"body"`
}

type errorBody struct {
	Error string `json:"error"`
}

// OK wraps a successful step outcome
func OK(body any) StepResult {
	return StepResult{StatusCode: http.StatusOK, Body: body}
}

// Fail wraps a step failure into its result shape
func Fail(err error) StepResult {
	return StepResult{StatusCode: StatusCode(err), Body: errorBody{Error: err.Error()}}
}
