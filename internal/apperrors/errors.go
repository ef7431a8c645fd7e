package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current state")

// ErrPreconditionFailed indicates that a business precondition for the operation does not hold.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates a storage or infrastructure failure.
var ErrInternal = errors.New("internal error")

// Store-level unique constraint violations. Both wrap ErrDuplicate.
var (
	ErrDuplicateControlNumber = fmt.Errorf("%w: control number already used", ErrDuplicate)
	ErrDuplicateMemberDay     = fmt.Errorf("%w: member already has a journey for the operating day", ErrDuplicate)
)

// Reason is a machine readable code returned to callers alongside an error.
type Reason string

const (
	ReasonMemberNotFound      Reason = "MEMBER_NOT_FOUND"
	ReasonJourneyNotFound     Reason = "JOURNEY_NOT_FOUND"
	ReasonNotEligible         Reason = "NOT_ELIGIBLE"
	ReasonAlreadyCheckedIn    Reason = "ALREADY_CHECKED_IN"
	ReasonAlreadyComplete     Reason = "ALREADY_COMPLETE"
	ReasonControlNumberExists Reason = "CONTROL_NUMBER_EXISTS"
	ReasonCheckoutDisabled    Reason = "CHECKOUT_DISABLED"
	ReasonNotComplete         Reason = "NOT_COMPLETE"
	ReasonMemberHasJourneys   Reason = "MEMBER_HAS_JOURNEYS"
)

// AppError carries an HTTP-ish status code together with the underlying cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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

// Is lets errors.Is match an AppError against the category sentinel implied by its code.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusConflict:
		return target == ErrConflict
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusPreconditionFailed:
		return target == ErrPreconditionFailed
	case http.StatusInternalServerError:
		return target == ErrInternal
	}
	return false
}

// NewNotFoundError creates a 404 AppError.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewConflictError creates a 409 AppError.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// NewValidationFailedError creates a 400 AppError wrapping ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewInternalServerError creates a 500 AppError around a storage failure.
func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// StatusCode maps an error to the HTTP status that best describes its category.
func StatusCode(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.As(err, &appErr):
		return appErr.Code
	}
	return http.StatusInternalServerError
}
