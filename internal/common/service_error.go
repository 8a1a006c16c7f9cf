package common

import (
	"errors"
	"fmt"

	"kras-kickers/volunteers/internal/constants"
)

// ErrorKind classifies failures so the presentation layer can report them distinctly.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindActivation
	KindTransport
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindActivation:
		return "activation"
	case KindTransport:
		return "transport"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// ServiceError is returned by services for every recoverable failure.
type ServiceError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NewServiceError builds a ServiceError, defaulting the message from the code.
func NewServiceError(kind ErrorKind, code string, message string, err error) *ServiceError {
	if message == "" {
		message = constants.GetErrorMessage(code)
	}
	return &ServiceError{Kind: kind, Code: code, Message: message, Err: err}
}

func ValidationError(code, message string) *ServiceError {
	return NewServiceError(KindValidation, code, message, nil)
}

// UnauthorizedError never carries detail about why access was refused.
func UnauthorizedError() *ServiceError {
	return NewServiceError(KindUnauthorized, constants.ErrCodeUnauthorized, "", nil)
}

func NotFoundError(what string) *ServiceError {
	return NewServiceError(KindNotFound, constants.ErrCodeNotFound, what+" not found", nil)
}

func ActivationError() *ServiceError {
	return NewServiceError(KindActivation, constants.ErrCodeActivationFailed, "", nil)
}

func TransportError(err error) *ServiceError {
	return NewServiceError(KindTransport, constants.ErrCodeTransport, "", err)
}

func ConflictError(code, message string) *ServiceError {
	return NewServiceError(KindConflict, code, message, nil)
}

func InternalError(message string, err error) *ServiceError {
	return NewServiceError(KindInternal, constants.ErrCodeInternal, message, err)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a ServiceError of kind k.
func IsKind(err error, k ErrorKind) bool {
	return err != nil && KindOf(err) == k
}
