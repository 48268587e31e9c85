// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"codeberg.org/wallfe/wallfe/core/requests"
)

/*
The backend wraps most payloads in an envelope:

	{"code": 200, "msg": "success", "data": ...}

Field names inside data vary slightly between endpoints (e.g. "id" vs "fileId"),
so decoding goes through gjson with per-field fallbacks rather than fixed structs.
*/

var (
	errInvalidJSON      = errors.New("backend response contained invalid JSON")
	ErrBackendRejected  = errors.New("backend rejected the request")
	errNoCaptchaPayload = errors.New("captcha response carried no image")
)

// Wallpaper is one stored file.
type Wallpaper struct {
	ID        string
	Name      string
	FileName  string
	URL       string
	UserName  string
	Tag       string
	Audited   bool
	Collected bool
	CreatedAt string
}

// Page is one page of a listing.
type Page[T any] struct {
	Records []T
	Total   int
	Current int
	Size    int
	Pages   int
}

// Tag is a wallpaper category.
type Tag struct {
	ID   int
	Name string
}

// UserInfo is the session user's profile.
type UserInfo struct {
	ID       string
	UserName string
	Email    string
	Avatar   string
	Role     string
	IsAdmin  bool
}

// AdminUser is one row of the admin user listing.
type AdminUser struct {
	ID       string
	UserName string
	Email    string
	Role     string
	Status   int
}

// CheckEnvelope reports an error when a 2xx response still signals failure through its envelope code.
//
// Non-JSON bodies and bodies without a code pass.
func CheckEnvelope(body []byte) error {
	if !gjson.ValidBytes(body) {
		return nil
	}

	code := gjson.GetBytes(body, "code")
	if !code.Exists() {
		return nil
	}

	switch code.Int() {
	case 0, 1, http.StatusOK:
		return nil
	}

	message := first(gjson.ParseBytes(body), "msg", "message").String()
	if message == "" {
		message = "code " + code.Raw
	}

	return fmt.Errorf("%w: %s", ErrBackendRejected, message)
}

// Data returns the envelope's data field, or the whole document when there is none.
func Data(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %.64q", errInvalidJSON, body)
	}

	if err := CheckEnvelope(body); err != nil {
		return gjson.Result{}, err
	}

	doc := gjson.ParseBytes(body)
	if data := doc.Get("data"); data.Exists() {
		return data, nil
	}

	return doc, nil
}

// ParseWallpaperPage decodes a wallpaper listing.
func ParseWallpaperPage(body []byte) (Page[Wallpaper], error) {
	return parsePage(body, parseWallpaper)
}

// ParseAdminUserPage decodes the admin user listing.
func ParseAdminUserPage(body []byte) (Page[AdminUser], error) {
	return parsePage(body, func(r gjson.Result) AdminUser {
		return AdminUser{
			ID:       first(r, "userId", "id").String(),
			UserName: first(r, "userName", "username").String(),
			Email:    first(r, "userEmail", "email").String(),
			Role:     first(r, "role", "userRole").String(),
			Status:   int(first(r, "status", "userStatus").Int()),
		}
	})
}

// ParseTags decodes the tag list.
func ParseTags(body []byte) ([]Tag, error) {
	data, err := Data(body)
	if err != nil {
		return nil, err
	}

	var tags []Tag

	data.ForEach(func(_, r gjson.Result) bool {
		tags = append(tags, Tag{
			ID:   int(first(r, "tagId", "id").Int()),
			Name: first(r, "tagName", "name").String(),
		})

		return true
	})

	return tags, nil
}

// ParseUserInfo decodes the session user's profile.
func ParseUserInfo(body []byte) (UserInfo, error) {
	data, err := Data(body)
	if err != nil {
		return UserInfo{}, err
	}

	role := first(data, "role", "userRole").String()

	return UserInfo{
		ID:       first(data, "userId", "id").String(),
		UserName: first(data, "userName", "username").String(),
		Email:    first(data, "userEmail", "email").String(),
		Avatar:   first(data, "avatar", "userAvatar").String(),
		Role:     role,
		IsAdmin:  strings.EqualFold(role, "admin") || first(data, "isAdmin", "admin").Bool(),
	}, nil
}

// LoginToken extracts the session token from a login response.
//
// The token is looked up in the envelope data, either as a bare string or under "token".
func LoginToken(resp *requests.Response) (string, error) {
	data, err := Data(resp.Body)
	if err != nil {
		return "", err
	}

	if data.Type == gjson.String {
		return data.Str, nil
	}

	if token := first(data, "token", "accessToken").String(); token != "" {
		return token, nil
	}

	if token := resp.Header.Get("Authorization"); token != "" {
		return token, nil
	}

	return "", fmt.Errorf("%w: login response carried no token", ErrBackendRejected)
}

// CaptchaKey returns the server key issued alongside a captcha: the redisKey
// response header, falling back to the body.
func CaptchaKey(resp *requests.Response) string {
	if key := resp.Header.Get(RedisKeyHeader); key != "" {
		return key
	}

	if !gjson.ValidBytes(resp.Body) {
		return ""
	}

	return first(gjson.ParseBytes(resp.Body), "data.redisKey", "redisKey", "data.key").String()
}

// CaptchaImage returns the captcha picture and its content type.
//
// The backend either streams the image itself or returns it base64-encoded
// (optionally as a data: URL) inside the envelope.
func CaptchaImage(resp *requests.Response) (string, []byte, error) {
	if contentType := resp.Header.Get("Content-Type"); strings.HasPrefix(contentType, "image/") {
		return contentType, resp.Body, nil
	}

	if !gjson.ValidBytes(resp.Body) {
		return "", nil, errNoCaptchaPayload
	}

	encoded := first(gjson.ParseBytes(resp.Body), "data.image", "data.img", "data.captcha", "image", "img", "data").String()
	if encoded == "" {
		return "", nil, errNoCaptchaPayload
	}

	contentType := "image/png"

	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, errNoCaptchaPayload
		}

		contentType = strings.TrimSuffix(meta, ";base64")
		encoded = payload
	}

	img, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode captcha image: %w", err)
	}

	return contentType, img, nil
}

func parsePage[T any](body []byte, parse func(gjson.Result) T) (Page[T], error) {
	data, err := Data(body)
	if err != nil {
		return Page[T]{}, err
	}

	records := data
	if !data.IsArray() {
		records = first(data, "records", "list", "rows", "content")
	}

	page := Page[T]{
		Total:   int(first(data, "total", "totalElements").Int()),
		Current: int(first(data, "current", "page", "pageNum").Int()),
		Size:    int(first(data, "size", "pageSize").Int()),
		Pages:   int(first(data, "pages", "totalPages").Int()),
	}

	records.ForEach(func(_, r gjson.Result) bool {
		page.Records = append(page.Records, parse(r))

		return true
	})

	if page.Total == 0 {
		page.Total = len(page.Records)
	}

	if page.Pages == 0 && page.Size > 0 {
		page.Pages = (page.Total + page.Size - 1) / page.Size
	}

	return page, nil
}

func parseWallpaper(r gjson.Result) Wallpaper {
	return Wallpaper{
		ID:        first(r, "fileId", "id").String(),
		Name:      first(r, "name", "fileTitle", "originalName", "fileName").String(),
		FileName:  first(r, "fileName", "storeName", "filePath").String(),
		URL:       first(r, "url", "fileUrl", "filePath").String(),
		UserName:  first(r, "userName", "uploader").String(),
		Tag:       first(r, "tagName", "tag").String(),
		Audited:   first(r, "audited", "isAudited").Bool(),
		Collected: first(r, "collected", "isCollected", "favorite").Bool(),
		CreatedAt: first(r, "createTime", "createdAt", "uploadTime").String(),
	}
}

// first returns the first of paths that exists in r.
func first(r gjson.Result, paths ...string) gjson.Result {
	for _, path := range paths {
		if v := r.Get(path); v.Exists() {
			return v
		}
	}

	return gjson.Result{}
}
