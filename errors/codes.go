package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (raised while a pipeline is being built)
const (
	// ErrCodeInvalidArgument indicates a stage or driver was configured with an invalid value.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Protocol violations (raised while a reduction is stepping or completing)
const (
	// ErrCodeOutOfRange indicates a requested index lies beyond the available input.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
	// ErrCodeTooFewItems indicates a reducer completed without the items it requires.
	ErrCodeTooFewItems ErrorCode = "TOO_FEW_ITEMS"
	// ErrCodeTooManyItems indicates a reducer was stepped more often than it allows.
	ErrCodeTooManyItems ErrorCode = "TOO_MANY_ITEMS"
	// ErrCodeProtocolViolation indicates a driver or sink was used outside its lifecycle.
	ErrCodeProtocolViolation ErrorCode = "PROTOCOL_VIOLATION"
)

// Capability mismatches (raised before any work starts)
const (
	// ErrCodeIncompatibleReducer indicates a reducer lacks a capability the driver needs.
	ErrCodeIncompatibleReducer ErrorCode = "INCOMPATIBLE_REDUCER"
)

// Source and runtime errors
const (
	// ErrCodeSourceFailed indicates the upstream source failed to produce an item.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"
	// ErrCodeCanceled indicates the run was canceled through its context.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeSourceFailed: true,
	ErrCodeInternal:     false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
