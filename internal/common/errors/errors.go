// Package errors provides the structured errors shared by the HTTP API and
// the job workers, and their conversion to BPMN errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode is a stable, caller-visible error identifier.
type ErrorCode string

const (
	ErrCodeEmptyPrompt    ErrorCode = "EMPTY_PROMPT"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrCodeEncodingFailed       ErrorCode = "ENCODING_FAILED"
	ErrCodeFeatureOrderMismatch ErrorCode = "FEATURE_ORDER_MISMATCH"
	ErrCodeModelLoadFailed      ErrorCode = "MODEL_LOAD_FAILED"
	ErrCodePredictionFailed     ErrorCode = "PREDICTION_FAILED"
	ErrCodePredictionTimeout    ErrorCode = "PREDICTION_TIMEOUT"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"

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

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e with one metadata entry added.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
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

func newError(code ErrorCode, message string, retryable bool, cause error) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

func NewEmptyPromptError() *StandardError {
	return newError(ErrCodeEmptyPrompt, "Prompt is required and must not be blank", false, nil)
}

// NewInvalidRequestError carries the validation messages in Details.
func NewInvalidRequestError(details string) *StandardError {
	e := newError(ErrCodeInvalidRequest, "Invalid request", false, nil)
	e.Details = details
	return e
}

func NewEncodingFailedError(err error) *StandardError {
	return newError(ErrCodeEncodingFailed, "Structured query is outside the trained vocabulary", false, err)
}

func NewFeatureOrderMismatchError(err error) *StandardError {
	return newError(ErrCodeFeatureOrderMismatch, "Model feature order does not match the pipeline", false, err)
}

func NewModelLoadFailedError(path string, err error) *StandardError {
	return newError(ErrCodeModelLoadFailed, fmt.Sprintf("Failed to load model from %s", path), false, err)
}

func NewPredictionFailedError(err error) *StandardError {
	return newError(ErrCodePredictionFailed, "Model prediction failed", true, err)
}

func NewPredictionTimeoutError(err error) *StandardError {
	return newError(ErrCodePredictionTimeout, "Model prediction timed out", true, err)
}

func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Prediction cache unavailable", true, err)
}

func NewExtractionFailedError(err error) *StandardError {
	return newError(ErrCodeExtractionFailed, "Entity extraction failed", false, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes modelled in BPMN.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeEmptyPrompt:          "EMPTY_PROMPT",
	ErrCodeInvalidRequest:       "INVALID_PASSENGER_QUERY",
	ErrCodeEncodingFailed:       "ENCODING_FAILED",
	ErrCodeFeatureOrderMismatch: "MODEL_MISCONFIGURED",
	ErrCodeModelLoadFailed:      "MODEL_MISCONFIGURED",
	ErrCodePredictionFailed:     "PREDICTION_FAILED",
	ErrCodePredictionTimeout:    "PREDICTION_TIMEOUT",
	ErrCodeCacheUnavailable:     "CACHE_UNAVAILABLE",
	ErrCodeExtractionFailed:     "EXTRACTION_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodePredictionFailed,
		ErrCodeCacheUnavailable:
		return 3
	case ErrCodePredictionTimeout:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
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

// AsStandardError unwraps err to a *StandardError, wrapping anything else
// as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// HTTPStatus maps a code to the status the API responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeEmptyPrompt, ErrCodeInvalidRequest, ErrCodeEncodingFailed:
		return http.StatusBadRequest
	case ErrCodePredictionTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROMPT") || strings.Contains(codeStr, "REQUEST"):
		return "VALIDATION"
	case strings.Contains(codeStr, "ENCODING") || strings.Contains(codeStr, "EXTRACTION"):
		return "PIPELINE"
	case strings.Contains(codeStr, "MODEL") || strings.Contains(codeStr, "FEATURE") || strings.Contains(codeStr, "PREDICTION"):
		return "MODEL"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	default:
		return "OTHER"
	}
}
