// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
	"codeberg.org/wallfe/wallfe/assets/components/partials"
	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/server/template"
)

type ProfileData struct {
	Title      string
	User       core.UserInfo
	Wallpapers core.Page[core.Wallpaper]
	Page       int
}

func Profile(data ProfileData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<section class="profile">`)

		if data.User.Avatar != "" {
			w.Raw(`<img class="avatar" width="64" height="64" alt=""`)
			w.URLAttr("src", data.User.Avatar)
			w.Raw(`>`)
		}

		w.Raw(`<dl><dt>Username</dt><dd>`)
		w.Text(data.User.UserName)
		w.Raw(`</dd><dt>Email</dt><dd>`)
		w.Text(data.User.Email)
		w.Raw(`</dd>`)

		if data.User.Role != "" {
			w.Raw(`<dt>Role</dt><dd>`)
			w.Text(data.User.Role)
			w.Raw(`</dd>`)
		}

		w.Raw(`</dl></section><h2>My wallpapers (`)
		w.Text(template.PrettyNumber(data.Wallpapers.Total))
		w.Raw(`)</h2>`)

		w.Render(partials.WallpaperGrid(data.Wallpapers.Records, ownWallpaperActions))
		w.Render(partials.Pagination(fragments.CommonData(w.Context()).CurrentPathWithParams, data.Page, data.Wallpapers.Pages))
	}))
}

func ownWallpaperActions(wp core.Wallpaper) templ.Component {
	return fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<div class="card-actions"><form class="inline" method="post" action="/rename">`)
		hiddenField(w, "fileId", wp.ID)
		returnPathField(w)
		w.Raw(`<input type="text" name="newName" required aria-label="New name"`)
		w.Attr("value", wp.Name)
		w.Raw(`><button type="submit">Rename</button></form>`)

		if !wp.Audited {
			w.Render(actionForm("/audit", "Request review", "fileId", wp.ID, "audited", "true"))
		}

		w.Render(actionForm("/delete", "Delete", "fileId", wp.ID))
		w.Raw(`</div>`)
	})
}
