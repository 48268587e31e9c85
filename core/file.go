// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"net/http"
	"net/url"

	"codeberg.org/wallfe/wallfe/core/requests"
)

// Download fetches the raw bytes of a stored file.
func (a *API) Download(ctx context.Context, fileName string) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   DownloadPath,
		Query:  url.Values{"fileName": {fileName}},
	})
}

// Upload sends a new wallpaper as multipart/form-data.
func (a *API) Upload(ctx context.Context, file *requests.MultipartBody) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method:    http.MethodPost,
		Path:      UploadPath,
		Multipart: file,
	})
}

// ImagesPage lists public wallpapers.
func (a *API) ImagesPage(ctx context.Context, page, size int) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   ImagesPagePath,
		Query:  pageQuery(page, size),
	})
}

// ImagesPageByName lists public wallpapers whose name matches name.
func (a *API) ImagesPageByName(ctx context.Context, page, size int, name string) (*requests.Response, error) {
	query := pageQuery(page, size)
	query.Set("name", name)

	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   ImagesPageByNamePath,
		Query:  query,
	})
}

// UserWallpapers lists the current user's uploads.
func (a *API) UserWallpapers(ctx context.Context, page, size int) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   UserWallpapersPath,
		Query:  pageQuery(page, size),
	})
}

func (a *API) DeleteWallpaper(ctx context.Context, fileID string) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodDelete,
		Path:   DeleteWallpaperPath,
		Query:  url.Values{"fileId": {fileID}},
	})
}

func (a *API) RenameWallpaper(ctx context.Context, fileID, newName string) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodPut,
		Path:   RenameWallpaperPath,
		Body: map[string]any{
			"fileId":  fileID,
			"newName": newName,
		},
	})
}

// ToggleFavorite flips the current user's favorite mark on a file.
func (a *API) ToggleFavorite(ctx context.Context, fileID string) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodPost,
		Path:   ToggleFavoritePath,
		Body:   map[string]any{"fileId": fileID},
	})
}

func (a *API) UpdateFileAuditStatus(ctx context.Context, fileID string, audited bool) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodPut,
		Path:   FileAuditPath,
		Body: map[string]any{
			"fileId":  fileID,
			"audited": audited,
		},
	})
}
