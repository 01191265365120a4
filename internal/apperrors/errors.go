package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates that no authenticated actor could be resolved for the call.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden indicates the actor lacks the capability or ownership required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition indicates the requested action is not legal for the request's
// current status, or that a concurrent transition won the race first.
var ErrInvalidTransition = errors.New("action not allowed in current state")

// ErrNoApplicableApprover indicates the workflow configuration yields no approval node
// for the request's organization and amount. The submit still commits; callers surface
// this to the submitter as a configuration gap.
var ErrNoApplicableApprover = errors.New("no applicable approver for request")

// ErrConfiguration indicates a workflow configuration failed its own invariants on save.
var ErrConfiguration = errors.New("workflow configuration invalid")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside a wrapped cause for the repository
// layer, where a bare sentinel loses too much context.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
