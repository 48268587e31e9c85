// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// NormalizeURL redirects URLs with trailing slashes (except root) to their
// canonical form, keeping the query string.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if hasTrailingSlash(r) {
		removeTrailingSlash(w, r)

		return
	}

	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes trailing slashes and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	target := *r.URL
	target.Path = strings.TrimRight(target.Path, "/")
	target.RawPath = ""

	if target.Path == "" {
		target.Path = "/"
	}

	// Only the path and query are kept, so the redirect stays on this host.
	target.Scheme, target.Host, target.User = "", "", nil

	http.Redirect(w, r, target.RequestURI(), http.StatusPermanentRedirect)
}
