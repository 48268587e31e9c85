// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
)

type ErrorData struct {
	Title      string
	Error      error
	StatusCode int
}

type UnauthorizedData struct {
	Title            string
	NoAuthReturnPath string
	LoginReturnPath  string
}

func Error(data ErrorData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<section class="error"><p class="status">`)
		w.Int(data.StatusCode)
		w.Raw(` `)
		w.Text(http.StatusText(data.StatusCode))
		w.Raw(`</p>`)

		if data.Error != nil {
			w.Raw(`<pre>`)
			w.Text(data.Error.Error())
			w.Raw(`</pre>`)
		}

		w.Raw(`<p><a href="/home">Back to home</a></p></section>`)
	}))
}

func Unauthorized(data UnauthorizedData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<section class="error"><p>You need to sign in to view this page.</p><p><a`)
		w.URLAttr("href", "/login?"+url.Values{
			"loginReturnPath":  {data.LoginReturnPath},
			"noAuthReturnPath": {data.NoAuthReturnPath},
		}.Encode())
		w.Raw(`>Sign in</a> <a`)
		w.URLAttr("href", data.NoAuthReturnPath)
		w.Raw(`>Go back</a></p></section>`)
	}))
}

// Block renders the page shown to rate limited or blocked clients.
func Block(reason string, statusCode int) templ.Component {
	return Layout("Blocked", fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<section class="error"><p class="status">`)
		w.Text(strconv.Itoa(statusCode) + " " + http.StatusText(statusCode))
		w.Raw(`</p><p>`)
		w.Text(reason)
		w.Raw(`</p></section>`)
	}))
}
