// Package web defines common components for a web application.
package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// GetErrorMsg returns a human readable suffix for the failed validation rule.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf(" must be at most %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf(" must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf(" must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf(" must be one of [%s]", fe.Param())
	case "datetime":
		return fmt.Sprintf(" must be a date formatted as %s", fe.Param())
	case "locale":
		return " is not a supported locale"
	}

	return " is invalid"
}
