package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the failed operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidArgument creates a new AppError for a rejected configuration value.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidArgument, Message: message}
}

// OutOfRange creates a new AppError for an index beyond the available input.
func OutOfRange(index, length int) *AppError {
	return &AppError{
		Code:    ErrCodeOutOfRange,
		Message: fmt.Sprintf("Too few elements in series of length %d to find element at index %d", length, index),
		Details: map[string]any{"index": index, "length": length},
	}
}

// TooFewItems creates a new AppError for a reduction that saw fewer items than required.
func TooFewItems(reducer string, want, got int) *AppError {
	return &AppError{
		Code:    ErrCodeTooFewItems,
		Message: fmt.Sprintf("%s expected %d item(s) but received %d", reducer, want, got),
		Details: map[string]any{"reducer": reducer, "want": want, "got": got},
	}
}

// TooManyItems creates a new AppError for a reduction that saw more items than allowed.
func TooManyItems(reducer string, limit int) *AppError {
	return &AppError{
		Code:    ErrCodeTooManyItems,
		Message: fmt.Sprintf("%s received more than %d item(s)", reducer, limit),
		Details: map[string]any{"reducer": reducer, "limit": limit},
	}
}

// ProtocolViolation creates a new AppError for a call made outside a component's lifecycle.
func ProtocolViolation(component, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeProtocolViolation,
		Message: fmt.Sprintf("%s: %s", component, reason),
		Details: map[string]any{"component": component},
	}
}

// IncompatibleReducer creates a new AppError for a reducer lacking a required capability.
func IncompatibleReducer(driver, capability string) *AppError {
	return &AppError{
		Code:    ErrCodeIncompatibleReducer,
		Message: fmt.Sprintf("reducer cannot be used with the %s driver: it does not support %s", driver, capability),
		Details: map[string]any{"driver": driver, "capability": capability},
	}
}

// SourceFailed creates a new AppError for a source that failed to produce an item.
func SourceFailed(source string, cause error) *AppError {
	return New(ErrCodeSourceFailed, fmt.Sprintf("The %s source failed to produce an item.", source)).
		WithDetail("source", source).
		WithCause(cause)
}

// Canceled creates a new AppError for a run canceled through its context.
func Canceled(operation string, cause error) *AppError {
	return New(ErrCodeCanceled, fmt.Sprintf("%s was canceled", operation)).
		WithDetail("operation", operation).
		WithCause(cause)
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsRetryable reports whether err is an AppError marked retryable.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}

// Wrap converts any error into an AppError. AppErrors anywhere in the chain
// are returned as-is; other errors become INTERNAL_ERROR with the original as cause.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
