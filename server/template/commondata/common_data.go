// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commondata

import (
	"net/http"

	"codeberg.org/wallfe/wallfe/server/utils"
)

// PageCommonData holds common variables accessible in views and handlers.
//
// It is populated for each request and attached to the
// request_context.RequestContext.
//
// Usage:
//
//	cd := request_context.FromRequest(r).CommonData
//	if cd.LoggedIn { ... }
type PageCommonData struct {
	// BaseURL is the origin URL (scheme + host) of the current request.
	BaseURL string

	// CurrentPath is the URL path from request (e.g., "/home").
	CurrentPath string

	// CurrentPathWithParams is the full request URI including query parameters.
	CurrentPathWithParams string

	// LoggedIn is true if the session holds a backend token.
	//
	// Set by the session middleware, which runs after the request context is created.
	LoggedIn bool

	// Queries is the URL query parameters (first value only for each key).
	Queries map[string]string

	// Flash is a one-shot message left by the previous action route.
	Flash string
}

// PopulatePageCommonData fills the request-derived fields of data.
func PopulatePageCommonData(r *http.Request, data *PageCommonData) {
	data.BaseURL = utils.GetOriginFromRequest(r)
	data.CurrentPath = r.URL.Path
	data.CurrentPathWithParams = r.URL.RequestURI()

	data.Queries = make(map[string]string)

	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			data.Queries[k] = v[0]
		}
	}
}
