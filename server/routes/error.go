// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/wallfe/wallfe/assets/views"
	"codeberg.org/wallfe/wallfe/server/request_context"
)

// StatusError is a handler error that should be answered with a specific status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// NewStatusError creates a StatusError.
func NewStatusError(statusCode int, message string) error {
	return &StatusError{StatusCode: statusCode, Message: message}
}

// ErrorPage writes the status code held in the request context and renders an error page.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	rc := request_context.FromRequest(r)
	if rc.StatusCode < http.StatusBadRequest {
		rc.StatusCode = http.StatusInternalServerError
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(rc.StatusCode)

	pageData := views.ErrorData{
		Title:      "Error",
		Error:      rc.RequestError,
		StatusCode: rc.StatusCode,
	}

	_ = views.Error(pageData).Render(r.Context(), w)
}

// NotFound is the fallback for paths outside the route table.
func NotFound(w http.ResponseWriter, r *http.Request) error {
	return NewStatusError(http.StatusNotFound, "no page at "+r.URL.Path)
}
