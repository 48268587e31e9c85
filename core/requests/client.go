// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"codeberg.org/wallfe/wallfe/core/audit"
	"codeberg.org/wallfe/wallfe/core/idgen"
	"codeberg.org/wallfe/wallfe/core/session"
	"codeberg.org/wallfe/wallfe/server/request_context"
	"codeberg.org/wallfe/wallfe/server/utils"
)

// DefaultTimeout bounds a whole backend exchange.
const DefaultTimeout = 600 * time.Second

// Client sends backend calls through an ordered interceptor pipeline.
//
// Every call runs:
//
//	build *http.Request -> RequestInterceptors -> HTTP -> ResponseInterceptors
//
// Response interceptors see successes and failures alike.
type Client struct {
	// BaseURL is the backend origin plus optional path prefix, without a trailing slash.
	BaseURL string

	HTTPClient *http.Client

	RequestInterceptors  []RequestInterceptor
	ResponseInterceptors []ResponseInterceptor

	// Cache is optional; nil disables response caching.
	Cache *ResponseCache
}

// NewClient returns a client for baseURL with the standard interceptors installed:
// AttachToken on requests and LogFailure on responses.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL:              strings.TrimSuffix(baseURL, "/"),
		HTTPClient:           utils.NewHTTPClient(timeout),
		RequestInterceptors:  []RequestInterceptor{AttachToken},
		ResponseInterceptors: []ResponseInterceptor{LogFailure},
	}
}

// Do performs the call described by opts.
//
// On status < 400 the response is returned unchanged. Any failure is returned as an *APIError:
// StatusCode is 0 when no response was received.
func (c *Client) Do(ctx context.Context, opts RequestOptions) (*Response, error) {
	resp, err := c.exchange(ctx, opts)

	for _, intercept := range c.ResponseInterceptors {
		resp, err = intercept(ctx, opts, resp, err)
	}

	return resp, err
}

func (c *Client) exchange(ctx context.Context, opts RequestOptions) (*Response, error) {
	fullURL, err := c.buildURL(opts)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	token := session.FromContext(ctx).Token

	cacheable := opts.Method == http.MethodGet && !opts.NoCache && c.Cache != nil
	if cacheable {
		if cached, ok := c.Cache.lookup(ctx, fullURL, token, opts.IncomingHeaders); ok {
			logCacheHit(ctx, fullURL, cached)

			return cached, nil
		}
	}

	req, err := newRequest(ctx, fullURL, opts)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	for _, intercept := range c.RequestInterceptors {
		if err := intercept(ctx, req); err != nil {
			return nil, &APIError{Err: err}
		}
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newStatusError(resp.StatusCode, resp.Body)
	}

	switch {
	case cacheable:
		c.Cache.store(ctx, fullURL, token, opts.IncomingHeaders, resp)
	case opts.Method != http.MethodGet && !opts.ReadOnly && c.Cache != nil:
		c.Cache.InvalidateURLs(c.stalePrefixes(opts))
	}

	return resp, nil
}

func (c *Client) buildURL(opts RequestOptions) (string, error) {
	if !strings.HasPrefix(opts.Path, "/") {
		return "", fmt.Errorf("%w: path %q must start with /", errInvalidURL, opts.Path)
	}

	u, err := url.Parse(c.BaseURL + opts.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidURL, err)
	}

	if len(opts.Query) > 0 {
		u.RawQuery = opts.Query.Encode()
	}

	return u.String(), nil
}

// stalePrefixes returns the cached URL prefixes a successful mutation invalidates:
// everything under the first two path segments (e.g. /wallpaper/file/) plus opts.Invalidates.
func (c *Client) stalePrefixes(opts RequestOptions) []string {
	segments := strings.SplitN(strings.TrimPrefix(opts.Path, "/"), "/", 3)

	resource := "/" + segments[0] + "/"
	if len(segments) > 2 {
		resource += segments[1] + "/"
	}

	prefixes := []string{c.BaseURL + resource}
	for _, extra := range opts.Invalidates {
		prefixes = append(prefixes, c.BaseURL+extra)
	}

	return prefixes
}

// send executes req, reads the body, and records the exchange as an audit span.
func (c *Client) send(ctx context.Context, req *http.Request) (_ *Response, err error) {
	span := audit.Span{
		Destination: audit.ToBackend,
		RequestID:   idgen.Child(request_context.FromContext(ctx).RequestID),
		Method:      req.Method,
		URL:         req.URL.String(),
	}

	defer func() {
		span.Error = err
		span.End()
		span.Log()
	}()

	_ = span.Begin(ctx)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.Size = len(body)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// logCacheHit records a response served from the cache as a zero-length backend span.
func logCacheHit(ctx context.Context, fullURL string, resp *Response) {
	span := audit.Span{
		Destination: audit.ToBackend,
		RequestID:   idgen.Child(request_context.FromContext(ctx).RequestID),
		Method:      http.MethodGet,
		URL:         fullURL,
		StatusCode:  resp.StatusCode,
		Size:        len(resp.Body),
		Cached:      true,
	}

	_ = span.Begin(ctx)
	span.End()
	span.Log()
}

// newRequest constructs an *http.Request from opts.
func newRequest(ctx context.Context, fullURL string, opts RequestOptions) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	switch {
	case opts.Multipart != nil:
		buf, formContentType, err := encodeMultipart(opts.Multipart)
		if err != nil {
			return nil, err
		}

		body, contentType = buf, formContentType
	case opts.Body != nil:
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		body, contentType = bytes.NewReader(encoded), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, values := range opts.Headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	req.Header.Set("Accept", "application/json, */*")

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart writes m as multipart/form-data.
func encodeMultipart(m *MultipartBody) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	for k, v := range m.Fields {
		if err := writer.WriteField(k, v); err != nil {
			_ = writer.Close()

			return nil, "", fmt.Errorf("failed to write multipart form field %q: %w", k, err)
		}
	}

	fieldName := m.FieldName
	if fieldName == "" {
		fieldName = "file"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+quoteEscaper.Replace(fieldName)+`"; filename="`+quoteEscaper.Replace(m.FileName)+`"`)

	if m.ContentType != "" {
		header.Set("Content-Type", m.ContentType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		_ = writer.Close()

		return nil, "", fmt.Errorf("failed to create multipart file part: %w", err)
	}

	if _, err := part.Write(m.Content); err != nil {
		_ = writer.Close()

		return nil, "", fmt.Errorf("failed to write multipart file part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}
