// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// Response holds the common response envelope for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Error wraps a given err into the common response envelope.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a human readable message for a binding validation error.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be at least " + fe.Param() + " characters"
	case "max":
		return " must be at most " + fe.Param() + " characters"
	case "email":
		return " must be a valid email address"
	case "numeric":
		return " must contain only digits"
	case "gt":
		return " must be greater than " + fe.Param()
	case "oneof":
		return " must be one of " + fe.Param()
	default:
		return " is invalid"
	}
}
