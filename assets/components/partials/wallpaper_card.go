// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package partials

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
	"codeberg.org/wallfe/wallfe/core"
)

// ImageURL returns the address a wallpaper is displayed from.
//
// Files without a public URL are served through the /download pass-through.
func ImageURL(wp core.Wallpaper) string {
	if strings.HasPrefix(wp.URL, "http://") || strings.HasPrefix(wp.URL, "https://") {
		return wp.URL
	}

	return DownloadURL(wp)
}

// DownloadURL returns the pass-through download address of a wallpaper.
func DownloadURL(wp core.Wallpaper) string {
	name := wp.FileName
	if name == "" {
		name = wp.Name
	}

	return "/download?" + url.Values{"fileName": {name}}.Encode()
}

// WallpaperCard renders one tile of a wallpaper grid.
//
// actions is rendered below the caption; it may be nil.
func WallpaperCard(wp core.Wallpaper, actions templ.Component) templ.Component {
	return fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<figure class="card"`)
		w.Attr("id", "wallpaper-"+wp.ID)
		w.Raw(`><a`)
		w.URLAttr("href", DownloadURL(wp))
		w.Raw(` download><img loading="lazy"`)
		w.URLAttr("src", ImageURL(wp))
		w.Attr("alt", wp.Name)
		w.Raw(`></a><figcaption><span class="card-title">`)
		w.Text(wp.Name)
		w.Raw(`</span>`)

		if wp.Tag != "" {
			w.Raw(`<span class="card-tag">`)
			w.Text(wp.Tag)
			w.Raw(`</span>`)
		}

		if wp.UserName != "" {
			w.Raw(`<span class="card-user">`)
			w.Text(wp.UserName)
			w.Raw(`</span>`)
		}

		w.Raw(`</figcaption>`)
		w.Render(actions)
		w.Raw(`</figure>`)
	})
}

// WallpaperGrid renders wallpapers as cards, calling actions for each one.
func WallpaperGrid(wallpapers []core.Wallpaper, actions func(core.Wallpaper) templ.Component) templ.Component {
	return fragments.Component(func(w *fragments.Writer) {
		if len(wallpapers) == 0 {
			w.Raw(`<p class="empty">No wallpapers found.</p>`)

			return
		}

		w.Raw(`<div class="grid">`)

		for _, wp := range wallpapers {
			var a templ.Component
			if actions != nil {
				a = actions(wp)
			}

			w.Render(WallpaperCard(wp, a))
		}

		w.Raw(`</div>`)
	})
}
