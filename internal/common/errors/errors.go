// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Dialogue
	ErrCodeMissingName           ErrorCode = "MISSING_NAME"
	ErrCodeUpstreamIntentFailure ErrorCode = "UPSTREAM_INTENT_FAILURE"
	ErrCodeInvalidJobInput       ErrorCode = "INVALID_JOB_INPUT"

	// Order store
	ErrCodeOrderNotFound            ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeOrderStoreFailed         ErrorCode = "ORDER_STORE_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	// Search and events
	ErrCodeOrderIndexFailed        ErrorCode = "ORDER_INDEX_FAILED"
	ErrCodeSearchQueryFailed       ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeOrderEventPublishFailed ErrorCode = "ORDER_EVENT_PUBLISH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a value that is forwarded to the process as an
// error variable.
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

// NewMissingNameError creates a non-retryable error carrying the prompt
// that asks the customer for a name.
func NewMissingNameError(replyText string) *StandardError {
	return (&StandardError{
		Code:      ErrCodeMissingName,
		Message:   "Order has no customer name",
		Details:   "name absent from input and dialog history",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}).WithMetadata("replyText", replyText)
}

// NewUpstreamIntentFailureError creates a retryable classifier error.
func NewUpstreamIntentFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamIntentFailure,
		Message:   "Intent classifier failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidJobInputError creates a non-retryable input error.
func NewInvalidJobInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidJobInput,
		Message:   "Job variables failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderNotFoundError creates a non-retryable lookup error.
func NewOrderNotFoundError(orderID string) *StandardError {
	return (&StandardError{
		Code:      ErrCodeOrderNotFound,
		Message:   "Order not found",
		Details:   fmt.Sprintf("orderId: %s", orderID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}).WithMetadata("orderId", orderID)
}

// NewOrderStoreFailedError creates a retryable persistence error.
func NewOrderStoreFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderStoreFailed,
		Message:   "Order store operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderIndexFailedError creates a retryable search indexing error.
func NewOrderIndexFailedError(orderID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderIndexFailed,
		Message:   "Order could not be indexed",
		Details:   fmt.Sprintf("orderId: %s, error: %s", orderID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(query string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Order search failed",
		Details:   fmt.Sprintf("query: %s, error: %s", query, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderEventPublishFailedError creates a retryable event publishing error.
func NewOrderEventPublishFailedError(orderID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderEventPublishFailed,
		Message:   "Order event delivery failed",
		Details:   fmt.Sprintf("orderId: %s, error: %s", orderID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the BPMN error codes
// caught by boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeMissingName:              "MISSING_NAME",
	ErrCodeUpstreamIntentFailure:    "UPSTREAM_INTENT_FAILURE",
	ErrCodeInvalidJobInput:          "INVALID_JOB_INPUT",
	ErrCodeOrderNotFound:            "ORDER_NOT_FOUND",
	ErrCodeOrderStoreFailed:         "ORDER_STORE_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeOrderIndexFailed:         "ORDER_INDEX_FAILED",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeOrderEventPublishFailed:  "ORDER_EVENT_PUBLISH_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeOrderStoreFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeOrderEventPublishFailed:
		return 3

	case ErrCodeUpstreamIntentFailure:
		return 2

	case ErrCodeOrderIndexFailed:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
// Metadata entries become error variables.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "NAME") || strings.Contains(codeStr, "INTENT"):
		return "DIALOGUE"
	case strings.Contains(codeStr, "EVENT"):
		return "EVENTS"
	case strings.Contains(codeStr, "INDEX") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "ORDER") || strings.Contains(codeStr, "DATABASE"):
		return "ORDERS"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
