// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"strconv"

	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/core/cookie"
)

// maxPageSize bounds the PageSize cookie so a user can't ask the backend for everything at once.
const maxPageSize = 100

// GetPageSize returns the number of wallpapers per page.
//
// The value is retrieved from cookies if available and sane, otherwise falls back
// to the configured default.
func GetPageSize(r *http.Request) int {
	value := GetCookie(r, cookie.PageSizeCookie)
	if value == "" {
		return config.Global.Page.Size
	}

	size, err := strconv.Atoi(value)
	if err != nil || size <= 0 || size > maxPageSize {
		return config.Global.Page.Size
	}

	return size
}

// TakeFlash returns the pending flash notice and clears it.
func TakeFlash(w http.ResponseWriter, r *http.Request) string {
	message := GetCookie(r, cookie.FlashCookie)
	if message != "" {
		ClearCookie(w, r, cookie.FlashCookie)
	}

	return message
}

// SetFlash stores a notice for the next page view.
func SetFlash(w http.ResponseWriter, r *http.Request, message string) {
	SetCookie(w, r, cookie.FlashCookie, message)
}
