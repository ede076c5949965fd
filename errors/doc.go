// Package errors provides the structured error type used across transduce.
// It implements coded errors for configuration mistakes, reduction protocol
// violations and reducer capability mismatches, with retryable detection for
// the source adapters that are allowed to retry.
package errors
