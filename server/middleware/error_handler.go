// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/assets/views"
	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/core/audit"
	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/server/request_context"
	"codeberg.org/wallfe/wallfe/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// It operates as follows:
//  1. It times the request for logging purposes.
//  2. It wraps the execution of the given handler, which has the signature
//     `func(w http.ResponseWriter, r *http.Request) error`. The handler's
//     output is buffered using an httptest.ResponseRecorder.
//  3. Any error returned by the handler is stored in the request context.
//
// After the handler runs, it decides on the final response:
//   - A `routes.UnauthorizedError`, or a backend answer of 401, renders
//     a 401 Unauthorized page prompting the user to sign in.
//   - A `routes.StatusError` or a backend `requests.APIError` with a status of
//     400 or above renders the error page with that status.
//   - Any other error without an HTTP error status code written by the handler
//     is an unhandled internal error and renders a 500 page.
//   - If the handler wrote a 404 Not Found status, the buffered response is
//     also discarded and replaced with the themed generic error page.
//   - In all other cases (e.g., a successful response), the buffered response
//     is written to the client.
//
// Finally, it logs the completed request details (status, duration, error, etc.)
// via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		// Execute the handler, capturing its output and any returned error.
		err := handler(recorder, r)

		// End before the response is written so the Server-Timing metric carries the duration.
		span.End()

		ctx.RequestError = err

		var (
			unauthErr *routes.UnauthorizedError
			statusErr *routes.StatusError
		)

		switch {
		case requests.StatusCodeOf(err) == http.StatusUnauthorized:
			unauthErr = routes.UnauthorizedFor(r)

			fallthrough

		case errors.As(err, &unauthErr):
			// Discard the recorder's content and render the unauthorized page.
			ctx.StatusCode = http.StatusUnauthorized

			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(ctx.StatusCode)

			pageData := views.UnauthorizedData{
				Title:            "Sign in required",
				NoAuthReturnPath: unauthErr.NoAuthReturnPath,
				LoginReturnPath:  unauthErr.LoginReturnPath,
			}

			// If rendering fails, log it. The original error will still be logged by the audit span.
			if renderErr := views.Unauthorized(pageData).Render(r.Context(), w); renderErr != nil {
				log.Err(renderErr).
					Str("original_error", err.Error()).
					Msg("Failed to render the unauthorized page after an authorization error")
			}

		case errors.As(err, &statusErr):
			ctx.StatusCode = statusErr.StatusCode

			routes.ErrorPage(w, r)

		case requests.StatusCodeOf(err) >= http.StatusBadRequest:
			ctx.StatusCode = requests.StatusCodeOf(err)

			routes.ErrorPage(w, r)

		case (err != nil && recorder.Code < http.StatusBadRequest) || (recorder.Code == http.StatusNotFound):
			// An unhandled error or a 404 occurred. Discard the recorder's contents
			// and render our generic error page.
			if recorder.Code == http.StatusNotFound {
				ctx.StatusCode = http.StatusNotFound
			} else {
				ctx.StatusCode = http.StatusInternalServerError
			}

			routes.ErrorPage(w, r) // ErrorPage uses ctx.RequestError and ctx.StatusCode

		default:
			// This is a successful response or a handled error. We trust the recorder's output.
			if recorder.Code == 0 {
				recorder.Code = http.StatusOK
			}

			ctx.StatusCode = recorder.Code
			copyHeaders(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError

		// Log the application response if not excluded.
		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}

// copyHeaders copies the handler's headers over the middleware defaults.
//
// Set-Cookie is appended so cookies set by earlier middleware survive.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if key == "Set-Cookie" {
			dst[key] = append(dst[key], values...)

			continue
		}

		dst[key] = values
	}
}
