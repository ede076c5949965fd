// Package validation checks the arguments handed to transducer stages,
// drivers and configuration before any reduction runs.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Every failure is reported
// as an *errors.AppError carrying INVALID_ARGUMENT.
//
// # Struct Tag Validation
//
//	type ParallelConfig struct {
//	    Workers int `json:"workers" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    NonNegative("n", n).
//	    Validate()
package validation
