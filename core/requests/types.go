// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"context"
	"net/http"
	"net/url"
)

// RequestOptions describes one backend call.
//
// A RequestOptions is built per call and never mutated by the pipeline.
type RequestOptions struct {
	Method string

	// Path is appended to the client's base URL, e.g. "/wallpaper/file/find/page".
	Path string

	// Query is encoded onto the URL.
	Query url.Values

	// Body, when non-nil, is sent JSON-encoded.
	Body any

	// Multipart, when non-nil, is sent as multipart/form-data. It takes precedence over Body.
	Multipart *MultipartBody

	// Headers are copied onto the outgoing request.
	Headers http.Header

	// IncomingHeaders are the headers of the user request that triggered this call.
	// Only Cache-Control is consulted.
	IncomingHeaders http.Header

	// NoCache excludes a GET from the response cache.
	NoCache bool

	// ReadOnly marks a non-GET call that only queries, such as a search sent as POST.
	// It leaves the response cache untouched.
	ReadOnly bool

	// Invalidates lists extra path prefixes whose cached responses a successful
	// mutating call makes stale.
	Invalidates []string
}

// MultipartBody is a single file part plus optional plain fields.
type MultipartBody struct {
	// FieldName is the form field carrying the file. Defaults to "file".
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
	Fields      map[string]string
}

// Response is a completed backend exchange with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer performs backend calls.
type Doer interface {
	Do(ctx context.Context, opts RequestOptions) (*Response, error)
}

// RequestInterceptor may amend an outgoing request before it is sent.
//
// A returned error aborts the call.
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// ResponseInterceptor observes the outcome of a call.
//
// err is nil for responses with status < 400.
// Interceptors return the (possibly replaced) outcome for the next interceptor.
type ResponseInterceptor func(ctx context.Context, opts RequestOptions, resp *Response, err error) (*Response, error)
