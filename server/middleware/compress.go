// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress gzip-encodes responses for clients that accept it.
//
// Bodies smaller than gzhttp's default threshold and already-compressed
// content types (such as images) are sent as is.
func Compress(w http.ResponseWriter, r *http.Request, next http.Handler) {
	gzhttp.GzipHandler(next).ServeHTTP(w, r)
}
