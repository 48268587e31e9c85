// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"codeberg.org/wallfe/wallfe/core/session"
	"codeberg.org/wallfe/wallfe/core/untrusted"
	"codeberg.org/wallfe/wallfe/server/request_context"
)

// WithSession loads the session cookie into the request context and takes
// the pending flash message.
//
// Must run after the request context middleware.
func WithSession(w http.ResponseWriter, r *http.Request, next http.Handler) {
	s := session.Load(r)

	cd := &request_context.FromRequest(r).CommonData
	cd.LoggedIn = s.IsAuthenticated()
	cd.Flash = untrusted.TakeFlash(w, r)

	next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
}
