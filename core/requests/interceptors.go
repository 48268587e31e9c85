// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/core/session"
	"codeberg.org/wallfe/wallfe/server/request_context"
)

// AttachToken sets the Authorization header to the session token carried by ctx.
//
// The raw token is sent without a scheme. With no token, no header is set.
func AttachToken(ctx context.Context, req *http.Request) error {
	if token := session.FromContext(ctx).Token; token != "" {
		req.Header.Set("Authorization", token)
	}

	return nil
}

// LogFailure logs failed calls and passes every outcome through unchanged.
func LogFailure(ctx context.Context, opts RequestOptions, resp *Response, err error) (*Response, error) {
	if err == nil {
		return resp, nil
	}

	// The user went away; nothing worth reporting.
	if errors.Is(err, context.Canceled) {
		return resp, err
	}

	event := log.Warn().
		Str("sys", "http").
		Str("request_id", request_context.FromContext(ctx).RequestID).
		Str("method", opts.Method).
		Str("path", opts.Path).
		Err(err)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		event = event.Int("status_code", apiErr.StatusCode)
	}

	event.Msg("Backend request failed")

	return resp, err
}
