// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"net/http"

	"codeberg.org/wallfe/wallfe/core/requests"
)

// AdminPage lists every uploaded file, audited or not.
func (a *API) AdminPage(ctx context.Context, page, size int) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   AdminFilesPath,
		Query:  pageQuery(page, size),
	})
}

// AdminAudit sets a file's audit state from the admin listing.
func (a *API) AdminAudit(ctx context.Context, fileID string, audited bool) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodPut,
		Path:   AdminAuditPath,
		Body: map[string]any{
			"fileId":  fileID,
			"audited": audited,
		},
		// Audit state decides what the public listings show.
		Invalidates: []string{"/wallpaper/file/"},
	})
}

// AdminUsers lists registered users.
func (a *API) AdminUsers(ctx context.Context, page, size int) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodGet,
		Path:   AdminUsersPath,
		Query:  pageQuery(page, size),
	})
}

// AdminUserStatus enables or disables a user account.
func (a *API) AdminUserStatus(ctx context.Context, userID string, status int) (*requests.Response, error) {
	return a.Client.Do(ctx, requests.RequestOptions{
		Method: http.MethodPut,
		Path:   AdminUserStatusPath,
		Body: map[string]any{
			"userId": userID,
			"status": status,
		},
	})
}
