// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
	"codeberg.org/wallfe/wallfe/assets/components/partials"
	"codeberg.org/wallfe/wallfe/core"
)

// User status values reported by the admin listing.
const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

type AdminData struct {
	Title    string
	Files    core.Page[core.Wallpaper]
	FilePage int
	Users    core.Page[core.AdminUser]
	UserPage int
}

func Admin(data AdminData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		uri := fragments.CommonData(w.Context()).CurrentPathWithParams

		w.Raw(`<section><h2>Files</h2><table><thead><tr><th>Name</th><th>Uploader</th><th>Tag</th><th>Status</th><th></th></tr></thead><tbody>`)

		for _, file := range data.Files.Records {
			w.Raw(`<tr><td><a`)
			w.URLAttr("href", partials.DownloadURL(file))
			w.Raw(`>`)
			w.Text(file.Name)
			w.Raw(`</a></td><td>`)
			w.Text(file.UserName)
			w.Raw(`</td><td>`)
			w.Text(file.Tag)
			w.Raw(`</td><td>`)

			label := "Approve"
			if file.Audited {
				w.Raw(`Approved`)

				label = "Revoke"
			} else {
				w.Raw(`Pending`)
			}

			w.Raw(`</td><td>`)
			w.Render(actionForm("/admin/audit", label, "fileId", file.ID, "audited", strconv.FormatBool(!file.Audited)))
			w.Raw(`</td></tr>`)
		}

		w.Raw(`</tbody></table>`)
		w.Render(partials.PaginationFor(uri, "filePage", data.FilePage, data.Files.Pages))

		w.Raw(`</section><section><h2>Users</h2><table><thead><tr><th>Username</th><th>Email</th><th>Role</th><th>Status</th><th></th></tr></thead><tbody>`)

		for _, user := range data.Users.Records {
			w.Raw(`<tr><td>`)
			w.Text(user.UserName)
			w.Raw(`</td><td>`)
			w.Text(user.Email)
			w.Raw(`</td><td>`)
			w.Text(user.Role)
			w.Raw(`</td><td>`)

			next, label := UserStatusDisabled, "Disable"
			if user.Status == UserStatusDisabled {
				w.Raw(`Disabled`)

				next, label = UserStatusActive, "Enable"
			} else {
				w.Raw(`Active`)
			}

			w.Raw(`</td><td>`)
			w.Render(actionForm("/admin/status", label, "userId", user.ID, "status", strconv.Itoa(next)))
			w.Raw(`</td></tr>`)
		}

		w.Raw(`</tbody></table>`)
		w.Render(partials.PaginationFor(uri, "userPage", data.UserPage, data.Users.Pages))
		w.Raw(`</section>`)
	}))
}
