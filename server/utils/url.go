// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"net/http"
	"strconv"
	"strings"
)

// GetQueryParam retrieves the value of a query parameter by name.
//
// If the parameter is not present, it returns the provided default value or an empty string.
func GetQueryParam(r *http.Request, name string, defaultValue ...string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return ""
}

// GetFormValue retrieves the value of a form parameter by name.
//
// Multipart forms must already be parsed by the caller; r.FormValue falls back to
// r.ParseMultipartForm with the default memory limit otherwise.
func GetFormValue(r *http.Request, name string, defaultValue ...string) string {
	if v := strings.TrimSpace(r.FormValue(name)); v != "" {
		return v
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return ""
}

// GetPositiveInt parses s as a positive integer, returning fallback when s is
// empty, malformed, or not positive.
func GetPositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}

// GetOriginFromRequest returns the origin (scheme + host) from an HTTP request.
//
// The scheme is determined by first checking the X-Forwarded-Proto header,
// then the TLS connection status, defaulting to "http" if neither is set.
func GetOriginFromRequest(r *http.Request) string {
	scheme := "http"

	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}

// SanitizeReturnPath ensures that string s is a same-origin relative path (no scheme/host).
// Returns "" if the value is unsafe; callers should fallback to "/home".
func SanitizeReturnPath(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// Disallow absolute URLs and scheme-relative URLs to prevent open redirects.
	if strings.Contains(s, "://") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, `/\`) {
		return ""
	}

	if !strings.HasPrefix(s, "/") {
		return ""
	}

	return s
}
