// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	servertiming "github.com/mitchellh/go-server-timing"
)

// WithServerTiming attaches a Server-Timing header collector to the request context.
//
// Backend exchanges recorded as audit spans add their own metrics to it.
func WithServerTiming(w http.ResponseWriter, r *http.Request, next http.Handler) {
	servertiming.Middleware(next, nil).ServeHTTP(w, r)
}
