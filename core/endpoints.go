// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

// Backend paths, relative to the configured backend URL.
const (
	AdminFilesPath      = "/wallpaper/admin/file"
	AdminAuditPath      = "/wallpaper/admin/audit"
	AdminUsersPath      = "/wallpaper/admin/user"
	AdminUserStatusPath = "/wallpaper/admin/status"

	DownloadPath         = "/wallpaper/file/download"
	UploadPath           = "/wallpaper/file/upload"
	ImagesPagePath       = "/wallpaper/file/find/page"
	ImagesPageByNamePath = "/wallpaper/file/find/name"
	UserWallpapersPath   = "/wallpaper/file/user/page"
	DeleteWallpaperPath  = "/wallpaper/file/delete"
	RenameWallpaperPath  = "/wallpaper/file/rename"
	ToggleFavoritePath   = "/wallpaper/file/collect"
	FileAuditPath        = "/wallpaper/file/audit"

	TagsPath            = "/wallpaper/file/tag/tags"
	ImagesPageByTagPath = "/wallpaper/file/tag/find/page"

	CaptchaPath  = "/wallpaper/user/captcha"
	RegisterPath = "/wallpaper/user/register"
	LoginPath    = "/wallpaper/user/login"
	UserInfoPath = "/wallpaper/user/info"
)

// RedisKeyHeader carries the server-issued captcha key on login and register.
const RedisKeyHeader = "redisKey"
