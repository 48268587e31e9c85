// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
	"sync/atomic"

	"codeberg.org/wallfe/wallfe/config"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Wallfe-Version and Wallfe-Revision are added dynamically in SetResponseHeaders.
	//
	// NOTE: we intentionally don't set CORP or HSTS headers.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"no-referrer"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
		"Permissions-Policy":     {strings.Join(defaultPermissionsPolicy, ", ")},
	}

	// contentSecurityPolicy allows wallpapers from any HTTPS origin; pages carry no scripts.
	contentSecurityPolicy = strings.Join([]string{
		"base-uri 'self'",
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"script-src 'none'",
		"img-src 'self' data: https:",
		"font-src 'self'",
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ") + ";"

	// defaultPermissionsPolicy defines the default Permissions-Policy header.
	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	setCacheControl(headers, r.URL.Path)

	headers.Set("Wallfe-Version", config.BuildVersion)
	headers.Set("Wallfe-Revision", config.Global.Build.Revision())
	headers.Set("Content-Security-Policy", contentSecurityPolicy)

	next.ServeHTTP(w, r)
}

// firstDevResponse is cleared by the first response served in development.
var firstDevResponse atomic.Bool

func init() {
	firstDevResponse.Store(true)
}

// clear cache in development
func invalidateCacheInDevelopment(headers http.Header) {
	if firstDevResponse.CompareAndSwap(true, false) {
		headers.Set("Clear-Site-Data", `"cache"`)
	}
}

// setCacheControl sets the default Cache-Control header; handlers may override it.
func setCacheControl(headers http.Header, path string) {
	// Default to only storing in the browser cache and forcing revalidation
	cacheDuration := "private, no-cache"

	// CSS gets a moderate cache time (1 week)
	if strings.HasPrefix(path, "/css/") {
		cacheDuration = "max-age=604800"
	}

	// Text files (robots.txt) get moderate caching (1 day)
	if strings.HasSuffix(path, ".txt") || path == "/favicon.ico" {
		cacheDuration = "max-age=86400"
	}

	headers.Set("Cache-Control", cacheDuration)
}
