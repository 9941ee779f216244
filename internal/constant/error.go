package constant

import (
	"errors"
	"fmt"
)

// Error is an error carrying a response code.
type Error interface {
	error
	Code() int
	Message() string
}

type codeError struct {
	code    int
	message string
}

func (e *codeError) Error() string {
	return fmt.Sprintf("[%d] %s", e.code, e.message)
}

func (e *codeError) Code() int       { return e.code }
func (e *codeError) Message() string { return e.message }

// NewError builds an error for code with its EN message. Each call returns
// a distinct value, so package-level sentinels compare by identity.
func NewError(code int) Error {
	msg := "unknown error"
	if info, ok := ErrorMessages[code]; ok {
		msg = info.EN
	}
	return &codeError{code: code, message: msg}
}

// CodeOf returns the code of the first Error in err's chain.
func CodeOf(err error) (int, bool) {
	var ce Error
	if errors.As(err, &ce) {
		return ce.Code(), true
	}
	return 0, false
}

// GetErrorInfo returns the CN/EN text for code.
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}
