// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
	"codeberg.org/wallfe/wallfe/core"
)

type UploadData struct {
	Title string
	Tags  []core.Tag
}

func Upload(data UploadData) templ.Component {
	return Layout(data.Title, fragments.Component(func(w *fragments.Writer) {
		w.Raw(`<form class="stacked" method="post" action="/upload" enctype="multipart/form-data">`)
		w.Raw(`<label>File <input type="file" name="file" accept="image/*" required></label>`)
		w.Raw(`<label>Name <input type="text" name="name"></label>`)
		w.Raw(`<label>Tag <select name="tagId"><option value="">None</option>`)

		for _, tag := range data.Tags {
			w.Raw(`<option`)
			w.Attr("value", strconv.Itoa(tag.ID))
			w.Raw(`>`)
			w.Text(tag.Name)
			w.Raw(`</option>`)
		}

		w.Raw(`</select></label><button type="submit">Upload</button></form>`)
	}))
}
