// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package core maps WallFE operations onto the wallpaper backend's REST endpoints.

Each API method produces exactly one requests.RequestOptions and hands it to a
requests.Doer; the raw response or error is returned untouched. Decoding the
backend's JSON envelope into view-friendly structs is a separate step (see
ParseWallpaperPage, ParseTags, ParseUserInfo).

You may use this package independently as follows:

	package main

	import (
		"context"
		"fmt"

		"codeberg.org/wallfe/wallfe/core"
		"codeberg.org/wallfe/wallfe/core/requests"
	)

	func main() {
		api := core.New(requests.NewClient("http://localhost:8088", 0))

		resp, err := api.ImagesPage(context.Background(), 1, 24)
		if err != nil {
			panic(err)
		}

		page, err := core.ParseWallpaperPage(resp.Body)
		if err != nil {
			panic(err)
		}

		fmt.Println(page.Total)
	}
*/
package core
