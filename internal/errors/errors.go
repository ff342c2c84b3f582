package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidReference indicates a malformed dotted serializer reference
	InvalidReference ErrorCode = "INVALID_REFERENCE"
	// ClassNotFound indicates the serializer class definition was not located
	ClassNotFound ErrorCode = "CLASS_NOT_FOUND"
	// RegistryEmpty indicates no scannable app roots could be resolved
	RegistryEmpty ErrorCode = "REGISTRY_EMPTY"
	// ScanFailed indicates a per-candidate analysis failure during a batch run
	ScanFailed ErrorCode = "SCAN_FAILED"
	// OutputWriteFailed indicates a report or progress file could not be written
	OutputWriteFailed ErrorCode = "OUTPUT_WRITE_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// AuditError represents a SUA error with code, message, and suggestions
type AuditError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewAuditError creates a new AuditError
func NewAuditError(code ErrorCode, message string, cause error) *AuditError {
	return &AuditError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *AuditError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AuditError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AuditError) WithDetails(details interface{}) *AuditError {
	e.Details = details
	return e
}

// IsCode reports whether err, or any error it wraps, is an AuditError
// carrying the given code
func IsCode(err error, code ErrorCode) bool {
	var ae *AuditError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// AsAuditError unwraps err to the AuditError it carries, if any
func AsAuditError(err error) (*AuditError, bool) {
	var ae *AuditError
	ok := errors.As(err, &ae)
	return ae, ok
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	InvalidReference: {
		{
			Type:        OpenDocs,
			Description: "Use the app.module.ClassName form, e.g. billing.invoices.InvoiceSerializer",
		},
	},
	RegistryEmpty: {
		{
			Type:        RunCommand,
			Command:     "sua init",
			Safe:        true,
			Description: "Write a default config, then set registry.roots in .sua/config.json",
		},
		{
			Type:        OpenDocs,
			Description: "Check that --project-root (or SUA_PROJECT_ROOT) points at the Django project root",
		},
	},
	ClassNotFound: {
		{
			Type:        RunCommand,
			Command:     "sua roots --verbose",
			Safe:        true,
			Description: "Verify the app root and serializer module paths",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
