// Package view renders the HTML pages and datastar fragments.
//
// Components are built with templ.ComponentFunc so they compose with
// templ.Handler and datastar's PatchElementTempl.
package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so render functions can
// emit markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func render(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

const datastarScript = `https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js`

// layout wraps body in the shared page chrome.
func layout(title string, body templ.Component) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` | ML Interview Prep</title>`)
		h.rawf(`<script type="module" src="%s"></script>`, datastarScript)
		h.raw(`</head><body><nav><a href="/">Stages</a> <a href="/resume-ready">Resume ready</a></nav><main>`)
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
	})
}
