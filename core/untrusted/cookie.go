// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"net/url"
	"time"

	"codeberg.org/wallfe/wallfe/core/cookie"
	"codeberg.org/wallfe/wallfe/server/utils"
)

// SameSite=Lax allows cookies on top-level navigations, preventing authentication issues
// when users arrive from external links (Strict would require a page refresh).
const CookieSameSite = http.SameSiteLaxMode

// DefaultMaxAge is how long cookies live unless the caller asks otherwise.
const DefaultMaxAge = 30 * 24 * time.Hour

// Clear a cookie by setting its expiration date to this
var cookieExpireDelete = time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

func createCookieUnencoded(name cookie.CookieName, value string, expires time.Time, isSecure bool) http.Cookie {
	return http.Cookie{
		Name:     string(name),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   isSecure,
		HttpOnly: cookie.IsHttpOnly(name),
		SameSite: CookieSameSite,
	}
}

// GetCookie returns the unescaped value of a cookie, or "" if it is absent or malformed.
func GetCookie(r *http.Request, name cookie.CookieName) string {
	c, err := r.Cookie(string(name))
	if err != nil {
		return ""
	}

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}

	return value
}

// SetCookie sets a cookie for DefaultMaxAge. An empty value clears it.
func SetCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName, value string) {
	SetCookieFor(w, r, name, value, DefaultMaxAge)
}

// SetCookieFor sets a cookie that expires after maxAge. An empty value clears it.
func SetCookieFor(w http.ResponseWriter, r *http.Request, name cookie.CookieName, value string, maxAge time.Duration) {
	if value == "" {
		ClearCookie(w, r, name)

		return
	}

	c := createCookieUnencoded(
		name, url.QueryEscape(value),
		time.Now().Add(maxAge),
		utils.IsConnectionSecure(r))
	http.SetCookie(w, &c)
}

// ClearCookie expires a cookie in the user agent.
func ClearCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName) {
	c := createCookieUnencoded(
		name, "",
		cookieExpireDelete,
		utils.IsConnectionSecure(r))
	http.SetCookie(w, &c)
}

// ClearAllCookies expires every cookie this application sets.
func ClearAllCookies(w http.ResponseWriter, r *http.Request) {
	for _, name := range cookie.AllCookieNames {
		ClearCookie(w, r, name)
	}
}
