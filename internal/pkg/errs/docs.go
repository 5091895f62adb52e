// Package errs provides the error taxonomy of the shipment service.
//
// Every error category follows the same shape:
//   - a sentinel variable (ErrValueIsRequired, ErrNotPermitted, ErrConflict, ...)
//   - a struct carrying the details of one occurrence
//   - constructors with and without a cause
//   - Error() for a single-line message and Unwrap() back to the sentinel
//
// Categories and how callers treat them:
//   - ValidationError and the ValueIs* errors: bad input, corrected by the caller
//   - AuthorizationError: the principal lacks rights, always surfaced as "not permitted"
//   - InvalidTransitionError: the requested status is not reachable from the current one
//   - ConflictError: an optimistic write lost a race, re-read before deciding again
//   - AlreadyExistsError: a write-once value (feedback) was already written
//   - UploadError and PaymentError: an external collaborator failed
//   - ObjectNotFoundError: the addressed record does not exist
//
// Use errors.Is against the sentinels and errors.As against the structs.
package errs
