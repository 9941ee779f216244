package utils

import (
	"errors"
	"fmt"

	"bloomfundr-settlement/internal/constant"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed binding rule.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationMsg renders a failed rule as a short English sentence.
func ValidationMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// BindError turns a gin binding error into an invalid-params response,
// listing the offending fields when the validator produced them.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Error(constant.CodeInvalidParams)
	}
	fields := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, FieldError{Field: fe.Field(), Error: ValidationMsg(fe)})
	}
	return ErrorWithData(constant.CodeInvalidParams, fields)
}
