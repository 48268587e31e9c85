// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
)

type LoginData struct {
	Title string
	// LoginReturnPath is where a successful sign in redirects to.
	LoginReturnPath string
	// NoAuthReturnPath is where the cancel link leads.
	NoAuthReturnPath string
}

type RegisterData struct {
	Title string
}

// captchaField renders the captcha picture and its answer input.
//
// Loading /captcha stores a fresh server key in the session cookie.
func captchaField(w *fragments.Writer) {
	w.Raw(`<label>Captcha <img class="captcha" src="/captcha" alt="captcha" width="120" height="40">`)
	w.Raw(`<input type="text" name="captchaCode" autocomplete="off" required></label>`)
}

func Login(data LoginData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<form class="stacked" method="post" action="/login">`)
		hiddenField(w, "returnPath", data.LoginReturnPath)
		w.Raw(`<label>Username <input type="text" name="userName" autocomplete="username" required></label>`)
		w.Raw(`<label>Password <input type="password" name="userPassword" autocomplete="current-password" required></label>`)
		captchaField(w)
		w.Raw(`<button type="submit">Sign in</button></form>`)

		if data.NoAuthReturnPath != "" {
			w.Raw(`<p><a`)
			w.URLAttr("href", data.NoAuthReturnPath)
			w.Raw(`>Cancel</a></p>`)
		}

		w.Raw(`<p>No account yet? <a href="/register">Register</a></p>`)
	}))
}

func Register(data RegisterData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<form class="stacked" method="post" action="/register">`)
		w.Raw(`<label>Username <input type="text" name="userName" autocomplete="username" required></label>`)
		w.Raw(`<label>Email <input type="email" name="userEmail" autocomplete="email" required></label>`)
		w.Raw(`<label>Password <input type="password" name="userPassword" autocomplete="new-password" required></label>`)
		captchaField(w)
		w.Raw(`<button type="submit">Register</button></form>`)
		w.Raw(`<p>Already registered? <a href="/login">Sign in</a></p>`)
	}))
}
