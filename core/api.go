// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"net/url"
	"strconv"

	"codeberg.org/wallfe/wallfe/core/requests"
)

// API wraps the backend endpoints.
type API struct {
	Client requests.Doer
}

// New returns an API sending calls through client.
func New(client requests.Doer) *API {
	return &API{Client: client}
}

// Default returns an API backed by requests.Default.
func Default() *API {
	return New(requests.Default)
}

func pageQuery(page, size int) url.Values {
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
}
