// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package partials holds the wallpaper card, grid and pagination components
shared by the home, profile and admin views.
*/
package partials
