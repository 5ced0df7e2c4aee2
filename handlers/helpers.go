// Package handlers exposes the JSON API and file download endpoints.
package handlers

import (
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"hppcalc/services"
)

// errorResponse is the JSON body returned on any failed request. Details
// carries per-row validation errors when the failure is a validation one;
// Messages is the same list flattened to display strings.
type errorResponse struct {
	Error    string                     `json:"error"`
	Details  []services.ValidationError `json:"details,omitempty"`
	Messages []string                   `json:"messages,omitempty"`
}

// apiError writes a plain JSON error response.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, errorResponse{Error: message})
}

// validationError writes a JSON error response carrying the full list of
// row-level validation errors.
func validationError(e *core.RequestEvent, status int, message string, errs []services.ValidationError) error {
	return e.JSON(status, errorResponse{
		Error:    message,
		Details:  errs,
		Messages: services.ErrorMessages(errs),
	})
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
