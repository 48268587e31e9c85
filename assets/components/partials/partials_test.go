// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package partials

import (
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/server/template"
)

func TestImageURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://cdn.example/a.png", ImageURL(core.Wallpaper{URL: "https://cdn.example/a.png"}))
	assert.Equal(t, "/download?fileName=a+b.png", ImageURL(core.Wallpaper{URL: "/srv/a b.png", FileName: "a b.png"}))
	assert.Equal(t, "/download?fileName=sea.jpg", ImageURL(core.Wallpaper{Name: "sea.jpg"}))
}

func TestWallpaperCard(t *testing.T) {
	t.Parallel()

	html := template.RenderToString(WallpaperCard(core.Wallpaper{
		ID:       "7",
		Name:     "<sea>",
		FileName: "sea.png",
		Tag:      "nature",
	}, nil))

	assert.Contains(t, html, `id="wallpaper-7"`)
	assert.Contains(t, html, `&lt;sea&gt;`)
	assert.Contains(t, html, `src="/download?fileName=sea.png"`)
	assert.Contains(t, html, `<span class="card-tag">nature</span>`)
	assert.NotContains(t, html, "card-user")
}

func TestWallpaperGrid(t *testing.T) {
	t.Parallel()

	assert.Contains(t, template.RenderToString(WallpaperGrid(nil, nil)), "No wallpapers found.")

	html := template.RenderToString(WallpaperGrid(
		[]core.Wallpaper{{ID: "1"}, {ID: "2"}},
		func(wp core.Wallpaper) templ.Component {
			return templ.Raw("<i>" + wp.ID + "</i>")
		},
	))
	assert.Contains(t, html, "<i>1</i>")
	assert.Contains(t, html, "<i>2</i>")
}

func TestPagination(t *testing.T) {
	t.Parallel()

	assert.Empty(t, template.RenderToString(Pagination("/home", 1, 1)))

	html := template.RenderToString(Pagination("/home?name=sea", 5, 9))
	assert.Contains(t, html, `rel="prev" href="/home?name=sea&amp;page=4"`)
	assert.Contains(t, html, `rel="next" href="/home?name=sea&amp;page=6"`)
	assert.Contains(t, html, `<span aria-current="page">5</span>`)
	assert.Contains(t, html, `href="/home?name=sea&amp;page=3">3</a>`)
	assert.Contains(t, html, `href="/home?name=sea&amp;page=7">7</a>`)
	assert.NotContains(t, html, `page=8"`)

	first := template.RenderToString(Pagination("/home?page=1", 1, 3))
	assert.NotContains(t, first, `rel="prev"`)
	assert.Contains(t, first, `href="/home?page=2"`)
}
