package common

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"kras-kickers/volunteers/internal/constants"
)

// Validatable is implemented by request DTOs.
type Validatable interface {
	Validate() error
}

// ValidateRequest runs req.Validate and turns field errors into a validation ServiceError.
func ValidateRequest(req Validatable) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	se := ValidationError(constants.ErrCodeValidation, "")
	if errs, ok := err.(validation.Errors); ok {
		se.Fields = make(map[string]string, len(errs))
		for field, fieldErr := range errs {
			se.Fields[field] = fieldErr.Error()
		}
		return se
	}
	if _, ok := err.(validation.InternalError); ok {
		return InternalError("validation failed", err)
	}
	se.Message = err.Error()
	return se
}
