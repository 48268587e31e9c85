// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/server/request_context"
)

func render(t *testing.T, target string, loggedIn bool, c templ.Component) string {
	t.Helper()

	r := httptest.NewRequest("GET", target, nil)
	ctx := request_context.WithRequestContext(context.Background(), r)
	request_context.FromContext(ctx).CommonData.LoggedIn = loggedIn

	var buf bytes.Buffer

	require.NoError(t, c.Render(ctx, &buf))

	return buf.String()
}

func TestLayout_Navigation(t *testing.T) {
	t.Parallel()

	anon := render(t, "/upload", false, Layout("Upload", nil))
	assert.Contains(t, anon, `<title>Upload - WallFE</title>`)
	assert.Contains(t, anon, `<a href="/upload" aria-current="page">Upload</a>`)
	assert.Contains(t, anon, `<a href="/login">Sign in</a>`)
	assert.NotContains(t, anon, `action="/logout"`)

	signedIn := render(t, "/home", true, Layout("Home", nil))
	assert.Contains(t, signedIn, `action="/logout"`)
	assert.NotContains(t, signedIn, `href="/login"`)
}

func TestHome(t *testing.T) {
	t.Parallel()

	data := HomeData{
		Title: "Home",
		Tags:  []core.Tag{{ID: 1, Name: "Nature"}, {ID: 2, Name: "City"}},
		TagID: 2,
		Name:  `"sea"`,
		Wallpapers: core.Page[core.Wallpaper]{
			Records: []core.Wallpaper{{ID: "10", Name: "Dawn", FileName: "dawn.png", Collected: true}},
			Total:   1234,
			Pages:   3,
		},
		Page: 1,
	}

	anon := render(t, "/home?tag=2", false, Home(data))
	assert.Contains(t, anon, `value="&#34;sea&#34;"`)
	assert.Contains(t, anon, `<option value="2" selected>City</option>`)
	assert.Contains(t, anon, `1,234 wallpapers`)
	assert.Contains(t, anon, `id="wallpaper-10"`)
	assert.Contains(t, anon, `href="/home?page=2&amp;tag=2"`)
	assert.NotContains(t, anon, `action="/collect"`)

	signedIn := render(t, "/home", true, Home(data))
	assert.Contains(t, signedIn, `action="/collect"`)
	assert.Contains(t, signedIn, `Unfavorite`)
}

func TestUpload(t *testing.T) {
	t.Parallel()

	html := render(t, "/upload", true, Upload(UploadData{Title: "Upload", Tags: []core.Tag{{ID: 3, Name: "Art"}}}))
	assert.Contains(t, html, `enctype="multipart/form-data"`)
	assert.Contains(t, html, `name="file"`)
	assert.Contains(t, html, `<option value="3">Art</option>`)
}

func TestLoginAndRegister(t *testing.T) {
	t.Parallel()

	login := render(t, "/login", false, Login(LoginData{
		Title:            "Sign in",
		LoginReturnPath:  "/profile",
		NoAuthReturnPath: "/home",
	}))
	assert.Contains(t, login, `name="returnPath" value="/profile"`)
	assert.Contains(t, login, `src="/captcha"`)
	assert.Contains(t, login, `name="captchaCode"`)
	assert.Contains(t, login, `<a href="/home">Cancel</a>`)

	register := render(t, "/register", false, Register(RegisterData{Title: "Register"}))
	assert.Contains(t, register, `action="/register"`)
	assert.Contains(t, register, `name="userEmail"`)
	assert.Contains(t, register, `src="/captcha"`)
}

func TestProfile(t *testing.T) {
	t.Parallel()

	html := render(t, "/profile", true, Profile(ProfileData{
		Title: "Profile",
		User:  core.UserInfo{UserName: "alice", Email: "a@example.com", Role: "user"},
		Wallpapers: core.Page[core.Wallpaper]{
			Records: []core.Wallpaper{{ID: "5", Name: "Mine"}, {ID: "6", Name: "Done", Audited: true}},
			Total:   2,
		},
	}))

	assert.Contains(t, html, `<dd>alice</dd>`)
	assert.Contains(t, html, `action="/rename"`)
	assert.Contains(t, html, `name="newName" required aria-label="New name" value="Mine"`)
	assert.Equal(t, 2, bytes.Count([]byte(html), []byte(`action="/delete"`)))
	assert.Equal(t, 1, bytes.Count([]byte(html), []byte(`action="/audit"`)))
	assert.Contains(t, html, `name="returnPath" value="/profile"`)
}

func TestAdmin(t *testing.T) {
	t.Parallel()

	html := render(t, "/admin?userPage=2", true, Admin(AdminData{
		Title: "Admin",
		Files: core.Page[core.Wallpaper]{Records: []core.Wallpaper{
			{ID: "1", Name: "Pending one"},
			{ID: "2", Name: "Approved one", Audited: true},
		}, Pages: 2},
		FilePage: 1,
		Users: core.Page[core.AdminUser]{Records: []core.AdminUser{
			{ID: "u1", UserName: "bob", Status: UserStatusActive},
			{ID: "u2", UserName: "eve", Status: UserStatusDisabled},
		}, Pages: 3},
		UserPage: 2,
	}))

	assert.Contains(t, html, `name="fileId" value="1"><input type="hidden" name="audited" value="true">`)
	assert.Contains(t, html, `name="fileId" value="2"><input type="hidden" name="audited" value="false">`)
	assert.Contains(t, html, `name="userId" value="u1"><input type="hidden" name="status" value="0">`)
	assert.Contains(t, html, `name="userId" value="u2"><input type="hidden" name="status" value="1">`)
	assert.Contains(t, html, `href="/admin?filePage=2&amp;userPage=2"`)
	assert.Contains(t, html, `href="/admin?userPage=3"`)
}

func TestErrorPages(t *testing.T) {
	t.Parallel()

	html := render(t, "/missing", false, Error(ErrorData{
		Title:      "Error",
		Error:      errors.New("<boom>"),
		StatusCode: 404,
	}))
	assert.Contains(t, html, `404 Not Found`)
	assert.Contains(t, html, `&lt;boom&gt;`)

	html = render(t, "/profile", false, Unauthorized(UnauthorizedData{
		Title:            "Sign in required",
		NoAuthReturnPath: "/home",
		LoginReturnPath:  "/profile",
	}))
	assert.Contains(t, html, `href="/login?loginReturnPath=%2Fprofile&amp;noAuthReturnPath=%2Fhome"`)

	html = render(t, "/home", false, Block("Rate limit exceeded", 429))
	assert.Contains(t, html, `429 Too Many Requests`)
	assert.Contains(t, html, `Rate limit exceeded`)
}
