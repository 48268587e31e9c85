// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package defines the cookie names used by this application.
*/
package cookie

type CookieName string

// Cookie names defined as constants.
//
// NOTE: We don't use the `__Host-` prefix to avoid login issues on non-HTTPS deployments
// where the localhost exemption doesn't apply.
const (
	// SessionCookie holds the sealed session (token + server key).
	SessionCookie CookieName = "Session"

	// FlashCookie carries a one-shot notice across a POST/redirect/GET.
	FlashCookie CookieName = "Flash"

	// PageSizeCookie overrides the configured number of wallpapers per page.
	PageSizeCookie CookieName = "PageSize"
)

// AllCookieNames defines all cookies that can be set by the user.
var AllCookieNames = []CookieName{
	SessionCookie,
	FlashCookie,
	PageSizeCookie,
}

// IsHttpOnly reports whether scripts must be kept away from a cookie.
//
//nolint:revive
func IsHttpOnly(name CookieName) bool {
	return name == SessionCookie
}
