// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/core/session"
)

// recordingDoer captures the descriptor of each call and replies with resp/err.
type recordingDoer struct {
	calls []requests.RequestOptions
	resp  *requests.Response
	err   error
}

func (d *recordingDoer) Do(_ context.Context, opts requests.RequestOptions) (*requests.Response, error) {
	d.calls = append(d.calls, opts)

	return d.resp, d.err
}

func TestAPI_Descriptors(t *testing.T) {
	t.Parallel()

	upload := &requests.MultipartBody{FileName: "sea.png", Content: []byte("png")}

	tests := []struct {
		name   string
		call   func(context.Context, *API) (*requests.Response, error)
		method string
		path   string
		query  url.Values
		body   map[string]any
	}{
		{
			name:   "AdminPage",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.AdminPage(ctx, 1, 10) },
			method: http.MethodGet,
			path:   "/wallpaper/admin/file",
			query:  url.Values{"page": {"1"}, "size": {"10"}},
		},
		{
			name:   "AdminAudit",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.AdminAudit(ctx, "7", true) },
			method: http.MethodPut,
			path:   "/wallpaper/admin/audit",
			body:   map[string]any{"fileId": "7", "audited": true},
		},
		{
			name:   "AdminUsers",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.AdminUsers(ctx, 2, 20) },
			method: http.MethodGet,
			path:   "/wallpaper/admin/user",
			query:  url.Values{"page": {"2"}, "size": {"20"}},
		},
		{
			name:   "AdminUserStatus",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.AdminUserStatus(ctx, "u1", 0) },
			method: http.MethodPut,
			path:   "/wallpaper/admin/status",
			body:   map[string]any{"userId": "u1", "status": 0},
		},
		{
			name:   "Download",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.Download(ctx, "a b.png") },
			method: http.MethodGet,
			path:   "/wallpaper/file/download",
			query:  url.Values{"fileName": {"a b.png"}},
		},
		{
			name:   "Captcha",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.Captcha(ctx) },
			method: http.MethodGet,
			path:   "/wallpaper/user/captcha",
		},
		{
			name:   "Upload",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.Upload(ctx, upload) },
			method: http.MethodPost,
			path:   "/wallpaper/file/upload",
		},
		{
			name:   "ImagesPage",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.ImagesPage(ctx, 3, 24) },
			method: http.MethodGet,
			path:   "/wallpaper/file/find/page",
			query:  url.Values{"page": {"3"}, "size": {"24"}},
		},
		{
			name:   "ImagesPageByName",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.ImagesPageByName(ctx, 1, 24, "sea") },
			method: http.MethodGet,
			path:   "/wallpaper/file/find/name",
			query:  url.Values{"page": {"1"}, "size": {"24"}, "name": {"sea"}},
		},
		{
			name:   "UserWallpapers",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.UserWallpapers(ctx, 1, 12) },
			method: http.MethodGet,
			path:   "/wallpaper/file/user/page",
			query:  url.Values{"page": {"1"}, "size": {"12"}},
		},
		{
			name:   "DeleteWallpaper",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.DeleteWallpaper(ctx, "9") },
			method: http.MethodDelete,
			path:   "/wallpaper/file/delete",
			query:  url.Values{"fileId": {"9"}},
		},
		{
			name:   "RenameWallpaper",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.RenameWallpaper(ctx, "9", "dunes") },
			method: http.MethodPut,
			path:   "/wallpaper/file/rename",
			body:   map[string]any{"fileId": "9", "newName": "dunes"},
		},
		{
			name:   "ToggleFavorite",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.ToggleFavorite(ctx, "9") },
			method: http.MethodPost,
			path:   "/wallpaper/file/collect",
			body:   map[string]any{"fileId": "9"},
		},
		{
			name:   "UpdateFileAuditStatus",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.UpdateFileAuditStatus(ctx, "9", false) },
			method: http.MethodPut,
			path:   "/wallpaper/file/audit",
			body:   map[string]any{"fileId": "9", "audited": false},
		},
		{
			name:   "Tags",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.Tags(ctx) },
			method: http.MethodGet,
			path:   "/wallpaper/file/tag/tags",
		},
		{
			name:   "ImagesPageByTag",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.ImagesPageByTag(ctx, 1, 24, 5) },
			method: http.MethodPost,
			path:   "/wallpaper/file/tag/find/page",
			body:   map[string]any{"page": 1, "size": 24, "tagId": 5},
		},
		{
			name: "Register",
			call: func(ctx context.Context, a *API) (*requests.Response, error) {
				return a.Register(ctx, "ann", "pw", "ann@example.com", "x7k2")
			},
			method: http.MethodPost,
			path:   "/wallpaper/user/register",
			body:   map[string]any{"userName": "ann", "userPassword": "pw", "userEmail": "ann@example.com", "captchaCode": "x7k2"},
		},
		{
			name:   "Login",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.Login(ctx, "ann", "pw", "x7k2") },
			method: http.MethodPost,
			path:   "/wallpaper/user/login",
			body:   map[string]any{"userName": "ann", "userPassword": "pw", "captchaCode": "x7k2"},
		},
		{
			name:   "UserInfo",
			call:   func(ctx context.Context, a *API) (*requests.Response, error) { return a.UserInfo(ctx) },
			method: http.MethodGet,
			path:   "/wallpaper/user/info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doer := &recordingDoer{resp: &requests.Response{StatusCode: http.StatusOK}}

			resp, err := tt.call(t.Context(), New(doer))
			require.NoError(t, err)
			assert.Same(t, doer.resp, resp)

			require.Len(t, doer.calls, 1)

			got := doer.calls[0]
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)

			if tt.query == nil {
				assert.Empty(t, got.Query)
			} else {
				assert.Equal(t, tt.query, got.Query)
			}

			if tt.body == nil {
				assert.Nil(t, got.Body)
			} else {
				assert.Equal(t, tt.body, got.Body)
			}
		})
	}
}

func TestAPI_UploadPassesFileThrough(t *testing.T) {
	t.Parallel()

	doer := &recordingDoer{}
	file := &requests.MultipartBody{FileName: "sea.png", Content: []byte("png")}

	_, _ = New(doer).Upload(t.Context(), file)

	require.Len(t, doer.calls, 1)
	assert.Same(t, file, doer.calls[0].Multipart)
	assert.Nil(t, doer.calls[0].Body)
}

func TestAPI_RedisKeyHeader(t *testing.T) {
	t.Parallel()

	doer := &recordingDoer{}
	api := New(doer)

	ctx := session.WithSession(t.Context(), session.Session{ServerKey: "rk-42"})

	_, _ = api.Login(ctx, "ann", "pw", "code")
	_, _ = api.Register(ctx, "ann", "pw", "ann@example.com", "code")
	_, _ = api.Login(t.Context(), "ann", "pw", "code")

	require.Len(t, doer.calls, 3)
	assert.Equal(t, "rk-42", doer.calls[0].Headers.Get(RedisKeyHeader))
	assert.Equal(t, "rk-42", doer.calls[1].Headers.Get(RedisKeyHeader))

	// Sent even when empty.
	assert.Equal(t, []string{""}, doer.calls[2].Headers.Values(RedisKeyHeader))
}

func TestAPI_CaptchaIsNeverCached(t *testing.T) {
	t.Parallel()

	doer := &recordingDoer{}

	_, _ = New(doer).Captcha(t.Context())

	require.Len(t, doer.calls, 1)
	assert.True(t, doer.calls[0].NoCache)
}

func TestAPI_OnlyTagSearchIsReadOnly(t *testing.T) {
	t.Parallel()

	doer := &recordingDoer{}
	api := New(doer)

	_, _ = api.ImagesPageByTag(t.Context(), 1, 24, 3)
	_, _ = api.ToggleFavorite(t.Context(), "9")
	_, _ = api.Login(t.Context(), "ann", "pw", "x7k2")

	require.Len(t, doer.calls, 3)
	assert.True(t, doer.calls[0].ReadOnly, "tag search is a query sent as POST")
	assert.False(t, doer.calls[1].ReadOnly)
	assert.False(t, doer.calls[2].ReadOnly)
}

func TestAPI_ErrorsPassThrough(t *testing.T) {
	t.Parallel()

	backendErr := &requests.APIError{StatusCode: http.StatusUnauthorized, Message: "token expired", Err: errors.New("rejected")}
	doer := &recordingDoer{err: backendErr}

	resp, err := New(doer).UserInfo(t.Context())
	assert.Nil(t, resp)
	assert.Same(t, backendErr, err)
}
