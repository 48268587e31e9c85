// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package partials

import (
	"github.com/a-h/templ"

	"codeberg.org/wallfe/wallfe/assets/components/fragments"
	"codeberg.org/wallfe/wallfe/server/template"
)

// paginationWindow is how many page links are shown on each side of the current page.
const paginationWindow = 2

// Pagination renders previous/next and nearby page links for requestURI.
//
// Nothing is rendered when there is only one page.
func Pagination(requestURI string, current, pages int) templ.Component {
	return PaginationFor(requestURI, "page", current, pages)
}

// PaginationFor is Pagination driven by the query parameter param.
func PaginationFor(requestURI, param string, current, pages int) templ.Component {
	return fragments.Component(func(w *fragments.Writer) {
		if pages <= 1 {
			return
		}

		current = max(1, min(current, pages))

		w.Raw(`<nav class="pagination" aria-label="Pagination">`)

		if current > 1 {
			w.Raw(`<a rel="prev"`)
			w.URLAttr("href", template.PageParamURL(requestURI, param, current-1))
			w.Raw(`>&laquo;</a>`)
		}

		for page := max(1, current-paginationWindow); page <= min(pages, current+paginationWindow); page++ {
			if page == current {
				w.Raw(`<span aria-current="page">`)
				w.Int(page)
				w.Raw(`</span>`)

				continue
			}

			w.Raw(`<a`)
			w.URLAttr("href", template.PageParamURL(requestURI, param, page))
			w.Raw(`>`)
			w.Int(page)
			w.Raw(`</a>`)
		}

		if current < pages {
			w.Raw(`<a rel="next"`)
			w.URLAttr("href", template.PageParamURL(requestURI, param, current+1))
			w.Raw(`>&raquo;</a>`)
		}

		w.Raw(`</nav>`)
	})
}
