// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	errAPIResponseError = errors.New("backend response indicated error")
	errInvalidURL       = errors.New("invalid backend URL")
)

// APIError represents a failed backend call.
type APIError struct {
	// StatusCode is the HTTP status code from the response.
	//
	// Zero when no response was received (request construction or transport failure).
	StatusCode int

	// Message is the backend's message, or the status text.
	// Empty when no response was received.
	Message string

	// Body is the unmodified response body. Nil when no response was received.
	Body []byte

	// Err is the underlying cause.
	Err error
}

func (e *APIError) Error() string {
	var b strings.Builder

	switch {
	case e.Err != nil:
		b.WriteString(e.Err.Error())

		if e.Message != "" {
			b.WriteString(": ")
			b.WriteString(e.Message)
		}
	case e.Message != "":
		b.WriteString(e.Message)
	case e.StatusCode != 0:
		b.WriteString(http.StatusText(e.StatusCode))
	default:
		b.WriteString(errAPIResponseError.Error())
	}

	b.WriteString(" (status code: ")
	b.WriteString(strconv.Itoa(e.StatusCode))
	b.WriteString(")")

	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusCodeOf returns the backend status code carried by err, or 0.
func StatusCodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

func newStatusError(statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    backendMessage(statusCode, body),
		Body:       body,
		Err:        errAPIResponseError,
	}
}

// backendMessage extracts a human-readable message from an error body.
func backendMessage(statusCode int, body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"message", "msg", "error"} {
			if result := gjson.GetBytes(body, path); result.Type == gjson.String && result.Str != "" {
				return result.Str
			}
		}
	}

	if text := http.StatusText(statusCode); text != "" {
		return text
	}

	return "An unknown backend error occurred"
}
