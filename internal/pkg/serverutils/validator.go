package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"ragchat-be/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and converts
// the first failure into a ValidationError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &apperrors.ValidationError{Reason: err.Error()}
	}

	fe := errs[0]
	return &apperrors.ValidationError{
		Field:  strings.ToLower(fe.Field()),
		Reason: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
	}
}
