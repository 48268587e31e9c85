// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"net/http"

	"codeberg.org/wallfe/wallfe/core/requests"
)

// Tags lists every tag.
func (a *API) Tags(ctx context.Context) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   TagsPath,
	})
}

// ImagesPageByTag lists public wallpapers carrying tagID.
//
// The backend takes this query as a POST body.
func (a *API) ImagesPageByTag(ctx context.Context, page, size, tagID int) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodPost,
		Path:   ImagesPageByTagPath,
		Body: map[string]any{
			"page":  page,
			"size":  size,
			"tagId": tagID,
		},
		ReadOnly: true,
	})
}
