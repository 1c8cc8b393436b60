package dtos

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

func extractFieldErrors(err error) validator.ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return nil
}
