// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"codeberg.org/wallfe/wallfe/assets/views"
)

type BlockData struct {
	Reason string `json:"reason"`
}

// BlockPage writes a block page with the given HTTP status code.
//
// Clients asking for JSON get {"reason": ...}, everyone else the HTML page.
func BlockPage(w http.ResponseWriter, r *http.Request, data BlockData, statusCode int) {
	w.Header().Set("Cache-Control", "no-store")

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(statusCode)

		_ = json.NewEncoder(w).Encode(data)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	_ = views.Block(data.Reason, statusCode).Render(r.Context(), w)
}
