// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware chain for WallFE.

Route definitions are centralized in router.DefineRoutes; the chain itself is
assembled in router.RegisterMiddleware.
*/
package middleware
