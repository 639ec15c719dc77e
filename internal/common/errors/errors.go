// Package errors provides the standardized error taxonomy for the assessment core
// and its conversion into BPMN errors for the zeebe workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Recoverable, reported inline per field.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStep      ErrorCode = "INVALID_STEP"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"

	// Storage collaborator failures; execution continues in memory.
	ErrCodePersistenceFailed  ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// Stored record could not be parsed or failed the structural check.
	ErrCodeStateCorrupted ErrorCode = "STATE_CORRUPTED"

	ErrCodeScoringFailed        ErrorCode = "SCORING_FAILED"
	ErrCodeRecommendationFailed ErrorCode = "RECOMMENDATION_FAILED"
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"

	// Workflow engine connectivity.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// Fields renders the error as structured log fields.
func (e *StandardError) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"errorCode":     string(e.Code),
		"errorMessage":  e.Message,
		"retryable":     e.Retryable,
		"errorCategory": GetErrorCategory(e.Code),
	}
	if e.Details != "" {
		fields["details"] = e.Details
	}
	for k, v := range e.Metadata {
		fields[k] = v
	}
	return fields
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the zeebe workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationFailedError reports field-level validation failures.
func NewValidationFailedError(step string, fieldErrors map[string]string) *StandardError {
	meta := make(map[string]interface{}, len(fieldErrors)+1)
	meta["step"] = step
	for field, msg := range fieldErrors {
		meta["field."+field] = msg
	}
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Step data failed validation",
		Details:   fmt.Sprintf("step: %s, invalidFields: %d", step, len(fieldErrors)),
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStepError reports a step id outside every known flow.
func NewInvalidStepError(step string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidStep,
		Message:   "Unknown assessment step",
		Details:   fmt.Sprintf("step: %s", step),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError reports an undecodable job or command payload.
func NewInvalidInputError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Input could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPersistenceFailedError reports a storage read or write failure.
func NewPersistenceFailedError(operation, key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailed,
		Message:   "Assessment state could not be persisted",
		Details:   fmt.Sprintf("operation: %s, key: %s, error: %s", operation, key, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation, "key": key},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStorageUnavailableError reports that no storage backend could be reached.
func NewStorageUnavailableError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   "Storage backend unavailable",
		Details:   fmt.Sprintf("backend: %s, error: %s", backend, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"backend": backend},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStateCorruptedError reports a stored aggregate that had to be discarded.
func NewStateCorruptedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStateCorrupted,
		Message:   "Stored assessment state is corrupted",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"key": key},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewScoringFailedError wraps a failure while deriving the maturity score.
func NewScoringFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringFailed,
		Message:   "Maturity score calculation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRecommendationFailedError wraps a failure while building recommendations.
func NewRecommendationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecommendationFailed,
		Message:   "Recommendation generation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidConfigurationError reports tables or settings that break an invariant.
func NewInvalidConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidConfiguration,
		Message:   "Invalid assessment configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError reports an unreachable or failing remote service.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalService,
		Message:   "External service call failed",
		Details:   fmt.Sprintf("service: %s, error: %s", service, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewTimeoutError reports a remote call that exceeded its deadline.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   "Operation timed out",
		Details:   fmt.Sprintf("service: %s, error: %s", service, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidationFailed:     "ASSESSMENT_VALIDATION_FAILED",
	ErrCodeInvalidStep:          "INVALID_STEP",
	ErrCodeInvalidInput:         "PARSE_ERROR",
	ErrCodePersistenceFailed:    "PERSISTENCE_FAILED",
	ErrCodeStorageUnavailable:   "STORAGE_UNAVAILABLE",
	ErrCodeStateCorrupted:       "STATE_CORRUPTED",
	ErrCodeScoringFailed:        "SCORING_FAILED",
	ErrCodeRecommendationFailed: "RECOMMENDATION_FAILED",
	ErrCodeInvalidConfiguration: "INVALID_CONFIGURATION",
	ErrCodeExternalService:      "EXTERNAL_SERVICE_ERROR",
	ErrCodeTimeout:              "TIMEOUT_ERROR",
}

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodePersistenceFailed, ErrCodeStorageUnavailable, ErrCodeExternalService, ErrCodeTimeout:
		return 3
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}
	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err into a *StandardError when one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// GetErrorCategory returns the taxonomy bucket of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidStep, ErrCodeInvalidInput:
		return "VALIDATION"
	case ErrCodePersistenceFailed, ErrCodeStorageUnavailable:
		return "PERSISTENCE"
	case ErrCodeStateCorrupted:
		return "STATE_CORRUPTION"
	case ErrCodeScoringFailed, ErrCodeRecommendationFailed:
		return "COMPUTATION"
	case ErrCodeInvalidConfiguration:
		return "CONFIGURATION"
	case ErrCodeExternalService, ErrCodeTimeout:
		return "INFRASTRUCTURE"
	default:
		return "UNKNOWN"
	}
}
