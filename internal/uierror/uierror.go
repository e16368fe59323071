// Package uierror turns backend failures into text a person can act on.
package uierror

import (
	"errors"
	"net/http"
	"strconv"

	"timesheet-web/internal/api"
)

// Codes for failures that have no single HTTP status.
const (
	CodeNetwork      = "NETWORK"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimit    = "RATE_LIMIT"
	CodeServerError  = "SERVER_ERROR"
)

// backend messages longer than this are not shown verbatim
const maxBackendMessage = 160

type UIError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var serverError = UIError{
	Title:   "Server error",
	Message: "Something went wrong on our side. Please try again in a bit.",
	Code:    CodeServerError,
}

func (e UIError) Error() string { return e.Title + ": " + e.Message }

// From maps err to a UIError. A UIError inside err is returned as is.
func From(err error) UIError {
	var ui UIError
	if errors.As(err, &ui) {
		return ui
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		// Local failures answer 500 (see Status), so they read as one.
		return serverError
	}
	if apiErr.Status == 0 {
		return UIError{
			Title:   "Connection problem",
			Message: "We couldn't reach the server. Check your internet connection and try again.",
			Code:    CodeNetwork,
		}
	}

	switch status := apiErr.Status; {
	case status == http.StatusUnauthorized:
		return UIError{
			Title:   "Sign-in failed",
			Message: "That email or password isn't correct. Please try again.",
			Code:    CodeUnauthorized,
		}
	case status == http.StatusForbidden:
		return UIError{
			Title:   "Access denied",
			Message: "Your account doesn't have permission to sign in here.",
			Code:    CodeForbidden,
		}
	case status == http.StatusTooManyRequests:
		return UIError{
			Title:   "Too many attempts",
			Message: "Please wait a moment and try again.",
			Code:    CodeRateLimit,
		}
	case status >= 500:
		return serverError
	}

	msg := "Please check your details and try again."
	if apiErr.Message != "" && len(apiErr.Message) <= maxBackendMessage {
		msg = apiErr.Message
	}
	return UIError{
		Title:   "Couldn't sign in",
		Message: msg,
		Code:    strconv.Itoa(apiErr.Status),
	}
}

// Status picks the HTTP status to answer with when err reaches a handler.
// Backend statuses pass through; an unreachable backend is a 502.
func Status(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return http.StatusBadGateway
		}
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
