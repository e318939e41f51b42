package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnbalancedEntry indicates that the debit lines of a ledger entry do not
// equal its credit lines within the accepted tolerance.
var ErrUnbalancedEntry = errors.New("ledger entry debits and credits do not balance")

// ErrPeriodClosed indicates that a posting targeted a fiscal period that is
// soft-closed or hard-closed.
var ErrPeriodClosed = errors.New("fiscal period is closed for posting")

// ErrReopenReasonRequired indicates a reopen request without a reason.
var ErrReopenReasonRequired = errors.New("a reason is required to reopen a fiscal period")

// ErrCounterAllocationFailed indicates that the document counter could not
// hand out the next sequence value.
var ErrCounterAllocationFailed = errors.New("failed to allocate next document sequence")
