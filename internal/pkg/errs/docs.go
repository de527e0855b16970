// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the error taxonomy of the system:
//   - ValueIsRequiredError: a required value is missing (validation failure)
//   - ValueIsInvalidError: a value is present but malformed (validation failure)
//   - ValueIsOutOfRangeError: a value lies outside its allowed interval
//   - ObjectNotFoundError: no object matches the given identifier
//   - NotPermittedError: an authorization policy rejected the operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is classification
//
// Transport adapters classify errors with errors.Is against the sentinels to
// choose protocol-specific response codes.
package errs
