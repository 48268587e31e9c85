// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"net/http"

	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/core/session"
)

// Captcha fetches a fresh captcha. See CaptchaKey and CaptchaImage for reading the result.
func (a *API) Captcha(ctx context.Context) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method:  http.MethodGet,
		Path:    CaptchaPath,
		NoCache: true,
	})
}

func (a *API) Register(ctx context.Context, username, password, email, code string) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method:  http.MethodPost,
		Path:    RegisterPath,
		Headers: redisKeyHeader(ctx),
		Body: map[string]any{
			"userName":     username,
			"userPassword": password,
			"userEmail":    email,
			"captchaCode":  code,
		},
	})
}

func (a *API) Login(ctx context.Context, username, password, code string) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method:  http.MethodPost,
		Path:    LoginPath,
		Headers: redisKeyHeader(ctx),
		Body: map[string]any{
			"userName":     username,
			"userPassword": password,
			"captchaCode":  code,
		},
	})
}

// UserInfo fetches the profile of the session's user.
func (a *API) UserInfo(ctx context.Context) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   UserInfoPath,
	})
}

// redisKeyHeader carries the session's server key, empty or not.
func redisKeyHeader(ctx context.Context) http.Header {
	h := make(http.Header, 1)
	h.Set(RedisKeyHeader, session.FromContext(ctx).ServerKey)

	return h
}
