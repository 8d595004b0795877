package types

import (
	"net/http"

	appErr "github.com/ona-ui/catalog/pkg/errors"
)

// FromAppError converts a service error into the wire error payload.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*appErr.AppError); ok {
		out := &APIError{Code: string(e.Code), Message: e.Message}
		if len(e.Meta) > 0 {
			out.Details = e.Meta
		}
		return out
	}
	return &APIError{Code: string(appErr.CodeInternal), Message: "internal error"}
}

// StatusForCode maps the closed error taxonomy to HTTP statuses.
func StatusForCode(code appErr.Code) int {
	switch code {
	case appErr.CodeValidation:
		return http.StatusUnprocessableEntity
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
