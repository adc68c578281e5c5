// Package errs provides standardized error types for the storefront order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: an object cannot be found
//   - ForbiddenError: the acting user lacks the capability for an operation
//   - InvalidTransitionError: a status axis would be moved along an illegal edge
//   - PreconditionFailedError: a transition is legal on its axis but blocked by another rule
//   - VersionIsInvalidError: an optimistic concurrency token no longer matches storage
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
//
// Transport adapters translate sentinels to protocol codes; nothing below them
// needs to know about HTTP.
package errs
