// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"

	"codeberg.org/wallfe/wallfe/core/idgen"
	"codeberg.org/wallfe/wallfe/server/template/commondata"
)

// RequestContext carries request-scoped data through the middleware chain.
//
// This data survives the entire lifetime of a single HTTP request.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// Holds any critical error encountered during request processing.
	//
	// Populated by middleware.CatchError when handlers return errors,
	// which interrupts normal response handling and renders an error page instead.
	RequestError error

	// HTTP status code to be sent in the response. Defaults to 200 OK.
	StatusCode int

	CommonData commondata.PageCommonData
}

type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// WithRequestContext initializes a new request context and attaches it to
// the parent context.
func WithRequestContext(ctx context.Context, r *http.Request) context.Context {
	rc := RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
	}
	commondata.PopulatePageCommonData(r, &rc.CommonData)

	return context.WithValue(ctx, requestContextKey, &rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
//
// If no context is found, returns a zero-value instance.
func FromContext(ctx context.Context) *RequestContext {
	if v := ctx.Value(requestContextKey); v != nil {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}

	return &RequestContext{}
}

// FromRequest is a convenience wrapper for extracting RequestContext
// directly from HTTP requests.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
