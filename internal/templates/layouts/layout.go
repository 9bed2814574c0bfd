package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Base wraps page content in the site chrome: document head, header with
// session-aware navigation, flash messages, and footer. Pages pass their
// body as a child component.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>`+templ.EscapeString(title)+` | Courtside</title>`+
				`<link rel="stylesheet" href="/static/css/app.css">`+
				`</head><body><div class="page">`); err != nil {
			return err
		}
		if err := header().Render(ctx, w); err != nil {
			return err
		}
		if err := flashes().Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`</main><footer class="footer"><p>Courtside · book trusted local trainers.</p></footer>`+
				`</div></body></html>`)
		return err
	})
}

// header renders the top navigation bar. Links depend on whether the visitor
// is authenticated and on their role, both read from the render context.
func header() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b []byte
		b = append(b, `<header class="topbar"><a class="brand" href="/">Courtside</a><nav>`...)
		if IsAuthenticated(ctx) {
			if GetUserRole(ctx) == "trainer" {
				b = append(b, navLink(ctx, "/trainer/dashboard", "Dashboard")...)
			} else {
				b = append(b, navLink(ctx, "/dashboard", "Dashboard")...)
			}
			b = append(b, navLink(ctx, "/trainers", "Find Trainers")...)
			b = append(b, navLink(ctx, "/account", "Account")...)
			b = append(b, `<a href="/logout">Log out (`...)
			b = append(b, templ.EscapeString(GetUserName(ctx))...)
			b = append(b, `)</a>`...)
		} else {
			b = append(b, navLink(ctx, "/trainers", "Find Trainers")...)
			b = append(b, navLink(ctx, "/login", "Log in")...)
			b = append(b, navLink(ctx, "/register", "Sign up")...)
		}
		b = append(b, `</nav></header>`...)
		_, err := w.Write(b)
		return err
	})
}

// navLink renders a single nav anchor, marking the active path.
func navLink(ctx context.Context, href, label string) string {
	cls := ""
	if GetActivePath(ctx) == href {
		cls = ` class="active"`
	}
	return `<a href="` + templ.EscapeString(href) + `"` + cls + `>` + templ.EscapeString(label) + `</a>`
}

// flashes renders one-shot success/error banners if present in context.
func flashes() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if msg := GetFlashSuccess(ctx); msg != "" {
			if _, err := io.WriteString(w, `<div class="flash flash-success">`+templ.EscapeString(msg)+`</div>`); err != nil {
				return err
			}
		}
		if msg := GetFlashError(ctx); msg != "" {
			if _, err := io.WriteString(w, `<div class="flash flash-error">`+templ.EscapeString(msg)+`</div>`); err != nil {
				return err
			}
		}
		return nil
	})
}
