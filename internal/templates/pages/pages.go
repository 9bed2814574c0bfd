// Package pages holds the page-level template components. Each page is a
// templ.Component wrapped in the shared layout; handlers pass per-page data
// via small Data structs so templates never reach into plugin types.
package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/courtside-app/courtside/internal/templates/layouts"
)

// esc escapes a string for safe HTML interpolation.
func esc(s string) string {
	return templ.EscapeString(s)
}

// page wraps a body render function in the base layout.
func page(title string, body func(ctx context.Context, b *strings.Builder)) templ.Component {
	inner := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		body(ctx, &b)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.Base(title, inner)
}

// hiddenInput renders a hidden form field. The value is escaped; the name is
// trusted (always a compile-time constant in this package).
func hiddenInput(b *strings.Builder, name, value string) {
	b.WriteString(`<input type="hidden" name="` + name + `" value="` + esc(value) + `">`)
}

// csrfField renders the hidden CSRF token input expected by the CSRF middleware.
func csrfField(b *strings.Builder, token string) {
	hiddenInput(b, "csrf_token", token)
}

// Landing renders the public landing page.
func Landing() templ.Component {
	return page("Find Your Coach", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="hero">`)
		b.WriteString(`<h1>Train with trusted local coaches</h1>`)
		b.WriteString(`<p>Courtside connects parents with verified youth sports trainers for one-on-one and small-group sessions.</p>`)
		b.WriteString(`<p><a class="btn btn-primary" href="/trainers">Browse trainers</a> `)
		b.WriteString(`<a class="btn" href="/register">Create an account</a></p>`)
		b.WriteString(`</section>`)
	})
}

// ErrorData carries the fields shown on the generic error page.
type ErrorData struct {
	StatusCode int
	Title      string
	Message    string
}

// ErrorPage renders a friendly error page for non-2xx outcomes.
func ErrorPage(data ErrorData) templ.Component {
	return page(data.Title, func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="error-page">`)
		b.WriteString(`<h1>` + esc(data.Title) + `</h1>`)
		b.WriteString(`<p>` + esc(data.Message) + `</p>`)
		b.WriteString(`<p><a href="/">Back to the home page</a></p>`)
		b.WriteString(`</section>`)
	})
}
