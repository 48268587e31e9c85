// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the application's embedded static assets.
*/
package assets

import (
	"embed"
)

// FS provides access to the embedded file system.
//
// Files live under the "assets" directory inside it.
//
//go:embed all:assets
var FS embed.FS
