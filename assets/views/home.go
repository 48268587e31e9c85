// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
	"codeberg.org/wallfe/wallfe/assets/components/partials"
	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/server/template"
)

type HomeData struct {
	Title      string
	Tags       []core.Tag
	TagID      int
	Name       string
	Wallpapers core.Page[core.Wallpaper]
	Page       int
}

func Home(data HomeData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		cd := fragments.CommonData(w.Context())

		w.Raw(`<form class="search" method="get" action="/home"><input type="search" name="name" placeholder="Search by name"`)
		w.Attr("value", data.Name)
		w.Raw(`><select name="tag"><option value="">All tags</option>`)

		for _, tag := range data.Tags {
			w.Raw(`<option`)
			w.Attr("value", strconv.Itoa(tag.ID))
			w.Flag("selected", tag.ID == data.TagID)
			w.Raw(`>`)
			w.Text(tag.Name)
			w.Raw(`</option>`)
		}

		w.Raw(`</select><button type="submit">Search</button></form>`)

		w.Raw(`<p class="count">`)
		w.Text(template.PrettyNumber(data.Wallpapers.Total))
		w.Raw(` wallpapers</p>`)

		var actions func(core.Wallpaper) templ.Component
		if cd.LoggedIn {
			actions = func(wp core.Wallpaper) templ.Component {
				label := "Favorite"
				if wp.Collected {
					label = "Unfavorite"
				}

				return actionForm("/collect", label, "fileId", wp.ID)
			}
		}

		w.Render(partials.WallpaperGrid(data.Wallpapers.Records, actions))
		w.Render(partials.Pagination(cd.CurrentPathWithParams, data.Page, data.Wallpapers.Pages))
	}))
}
