// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/wallfe/wallfe/core/requests"
)

func TestCheckEnvelope(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckEnvelope([]byte(`{"code":200,"data":[]}`)))
	assert.NoError(t, CheckEnvelope([]byte(`{"data":[]}`)))
	assert.NoError(t, CheckEnvelope([]byte("PNG")))

	err := CheckEnvelope([]byte(`{"code":500,"msg":"captcha mismatch"}`))
	require.ErrorIs(t, err, ErrBackendRejected)
	assert.Contains(t, err.Error(), "captcha mismatch")

	err = CheckEnvelope([]byte(`{"code":403}`))
	require.ErrorIs(t, err, ErrBackendRejected)
	assert.Contains(t, err.Error(), "code 403")
}

func TestParseWallpaperPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantTotal int
		wantPages int
		wantFirst Wallpaper
	}{
		{
			name:      "records envelope",
			body:      `{"code":200,"data":{"records":[{"fileId":3,"name":"Dunes","fileName":"d.png","audited":true,"collected":true,"userName":"ann"}],"total":25,"size":24,"current":1}}`,
			wantTotal: 25,
			wantPages: 2,
			wantFirst: Wallpaper{ID: "3", Name: "Dunes", FileName: "d.png", Audited: true, Collected: true, UserName: "ann"},
		},
		{
			name:      "bare array",
			body:      `{"code":200,"data":[{"id":"9","fileName":"sea.jpg","url":"http://cdn/sea.jpg"}]}`,
			wantTotal: 1,
			wantFirst: Wallpaper{ID: "9", Name: "sea.jpg", FileName: "sea.jpg", URL: "http://cdn/sea.jpg"},
		},
		{
			name:      "list key without envelope",
			body:      `{"list":[{"id":1,"name":"a","fileName":"a.png"}],"total":1,"pages":1}`,
			wantTotal: 1,
			wantPages: 1,
			wantFirst: Wallpaper{ID: "1", Name: "a", FileName: "a.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := ParseWallpaperPage([]byte(tt.body))
			require.NoError(t, err)
			require.NotEmpty(t, page.Records)

			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantPages, page.Pages)
			assert.Equal(t, tt.wantFirst, page.Records[0])
		})
	}

	_, err := ParseWallpaperPage([]byte("<html>"))
	require.ErrorIs(t, err, errInvalidJSON)

	_, err = ParseWallpaperPage([]byte(`{"code":401,"msg":"login first"}`))
	require.ErrorIs(t, err, ErrBackendRejected)
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tags, err := ParseTags([]byte(`{"code":200,"data":[{"tagId":1,"tagName":"Nature"},{"id":2,"name":"City"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []Tag{{ID: 1, Name: "Nature"}, {ID: 2, Name: "City"}}, tags)
}

func TestParseUserInfo(t *testing.T) {
	t.Parallel()

	info, err := ParseUserInfo([]byte(`{"code":200,"data":{"userId":4,"userName":"ann","userEmail":"ann@example.com","role":"ADMIN"}}`))
	require.NoError(t, err)
	assert.Equal(t, UserInfo{ID: "4", UserName: "ann", Email: "ann@example.com", Role: "ADMIN", IsAdmin: true}, info)
}

func TestParseAdminUserPage(t *testing.T) {
	t.Parallel()

	page, err := ParseAdminUserPage([]byte(`{"data":{"records":[{"userId":"u1","userName":"bob","status":1}],"total":1}}`))
	require.NoError(t, err)
	assert.Equal(t, []AdminUser{{ID: "u1", UserName: "bob", Status: 1}}, page.Records)
}

func TestLoginToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		resp   *requests.Response
		want   string
		wantOK bool
	}{
		{"bare string", &requests.Response{Body: []byte(`{"code":200,"data":"tok-1"}`)}, "tok-1", true},
		{"token field", &requests.Response{Body: []byte(`{"code":200,"data":{"token":"tok-2"}}`)}, "tok-2", true},
		{
			"header",
			&requests.Response{Header: http.Header{"Authorization": {"tok-3"}}, Body: []byte(`{"code":200,"data":{}}`)},
			"tok-3", true,
		},
		{"rejected", &requests.Response{Body: []byte(`{"code":500,"msg":"bad password"}`)}, "", false},
		{"missing", &requests.Response{Body: []byte(`{"code":200,"data":{}}`)}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoginToken(tt.resp)
			if !tt.wantOK {
				require.ErrorIs(t, err, ErrBackendRejected)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCaptchaKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "from-header", CaptchaKey(&requests.Response{
		Header: http.Header{"Rediskey": {"from-header"}},
		Body:   []byte(`{"data":{"redisKey":"from-body"}}`),
	}))
	assert.Equal(t, "from-body", CaptchaKey(&requests.Response{
		Header: http.Header{},
		Body:   []byte(`{"data":{"redisKey":"from-body"}}`),
	}))
	assert.Empty(t, CaptchaKey(&requests.Response{Header: http.Header{}, Body: []byte("GIF89a")}))
}

func TestCaptchaImage(t *testing.T) {
	t.Parallel()

	raw := []byte("\x89PNG")
	encoded := base64.StdEncoding.EncodeToString(raw)

	contentType, img, err := CaptchaImage(&requests.Response{
		Header: http.Header{"Content-Type": {"image/jpeg"}},
		Body:   raw,
	})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, raw, img)

	contentType, img, err = CaptchaImage(&requests.Response{
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   []byte(`{"data":{"image":"data:image/gif;base64,` + encoded + `"}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/gif", contentType)
	assert.Equal(t, raw, img)

	contentType, img, err = CaptchaImage(&requests.Response{
		Header: http.Header{},
		Body:   []byte(`{"data":{"img":"` + encoded + `"}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, raw, img)

	_, _, err = CaptchaImage(&requests.Response{Header: http.Header{}, Body: []byte(`{"data":{}}`)})
	require.Error(t, err)
}
