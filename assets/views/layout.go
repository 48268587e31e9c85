// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views renders the HTML pages served by WallFE.

Each page is a function from its data struct to a templ.Component, wrapped in Layout.
*/
package views

import (
	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/server/template"
)

// navLink is one entry of the top navigation bar.
type navLink struct {
	Path  string
	Label string
}

var navLinks = []navLink{
	{"/home", "Home"},
	{"/upload", "Upload"},
	{"/profile", "Profile"},
	{"/admin", "Admin"},
}

// Layout wraps body in the document shell shared by every page.
func Layout(title string, body templ.Component) templ.Component {
	return fragments.Component(func(w *fragments.Writer) {
		cd := fragments.CommonData(w.Context())

		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Raw(`<title>`)
		w.Text(title)
		w.Raw(` - WallFE</title><link rel="stylesheet"`)
		w.Attr("href", "/css/style.css?v="+config.Global.Instance.FileServerCacheID)
		w.Raw(`></head><body><header><nav><a class="brand" href="/home">WallFE</a><ul>`)

		for _, link := range navLinks {
			w.Raw(`<li><a`)
			w.Attr("href", link.Path)

			if template.IsFirstPathPart(cd.CurrentPath, link.Path) {
				w.Raw(` aria-current="page"`)
			}

			w.Raw(`>`)
			w.Text(link.Label)
			w.Raw(`</a></li>`)
		}

		w.Raw(`</ul><div class="account">`)

		if cd.LoggedIn {
			w.Raw(`<form method="post" action="/logout"><button type="submit">Sign out</button></form>`)
		} else {
			w.Raw(`<a href="/login">Sign in</a><a href="/register">Register</a>`)
		}

		w.Raw(`</div></nav></header><main>`)

		if cd.Flash != "" {
			w.Raw(`<p class="flash" role="status">`)
			w.Text(cd.Flash)
			w.Raw(`</p>`)
		}

		w.Raw(`<h1>`)
		w.Text(title)
		w.Raw(`</h1>`)
		w.Render(body)
		w.Raw(`</main><footer>WallFE `)
		w.Text(config.BuildVersion)
		w.Raw(` (`)
		w.Text(config.Global.Build.Revision())
		w.Raw(`)</footer></body></html>`)
	})
}

// returnPathField keeps the current page as the redirect target of an action form.
func returnPathField(w *fragments.Writer) {
	w.Raw(`<input type="hidden" name="returnPath"`)
	w.Attr("value", fragments.CommonData(w.Context()).CurrentPathWithParams)
	w.Raw(`>`)
}

// hiddenField writes a hidden form input.
func hiddenField(w *fragments.Writer, name, value string) {
	w.Raw(`<input type="hidden"`)
	w.Attr("name", name)
	w.Attr("value", value)
	w.Raw(`>`)
}

// actionForm renders a one-button POST form carrying fields and the return path.
func actionForm(action, label string, fields ...string) templ.Component {
	return fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<form class="inline" method="post"`)
		w.Attr("action", action)
		w.Raw(`>`)

		for i := 0; i+1 < len(fields); i += 2 {
			hiddenField(w, fields[i], fields[i+1])
		}

		returnPathField(w)
		w.Raw(`<button type="submit">`)
		w.Text(label)
		w.Raw(`</button></form>`)
	})
}
