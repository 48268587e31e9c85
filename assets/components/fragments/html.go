// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fragments

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Writer accumulates markup and keeps the first write error.
//
// Once a write fails every later call is a no-op.
type Writer struct {
	w   io.Writer
	ctx context.Context
	err error
}

// Component builds a templ.Component from a function writing through a Writer.
func Component(fn func(w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &Writer{w: w, ctx: ctx}
		fn(out)

		return out.err
	})
}

// Context returns the context the component is rendered with.
func (w *Writer) Context() context.Context {
	return w.ctx
}

// Raw writes trusted markup.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}

	_, w.err = io.WriteString(w.w, s)
}

// Text writes s with HTML escaping.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Int writes n in decimal.
func (w *Writer) Int(n int) {
	w.Raw(strconv.Itoa(n))
}

// Attr writes ` name="value"` with the value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// URLAttr writes an href or src attribute, replacing unsafe schemes.
func (w *Writer) URLAttr(name, value string) {
	w.Attr(name, string(templ.URL(value)))
}

// Flag writes a boolean attribute when on is true.
func (w *Writer) Flag(name string, on bool) {
	if on {
		w.Raw(" " + name)
	}
}

// Render renders a nested component into the same output.
func (w *Writer) Render(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}

	w.err = c.Render(w.ctx, w.w)
}
