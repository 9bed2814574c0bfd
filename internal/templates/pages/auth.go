package pages

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// LoginData carries everything the login page needs to render.
type LoginData struct {
	CSRFToken      string
	RedirectTo     string
	ErrorMessage   string
	SuccessMessage string
	// Disabled renders the form non-interactive. Set while the visitor's
	// address is locked out; the page itself stays reachable.
	Disabled bool
}

// LoginPage renders the login form with optional status banners.
func LoginPage(data LoginData) templ.Component {
	return page("Log In", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="auth-card">`)
		b.WriteString(`<h1>Log in to Courtside</h1>`)

		if data.ErrorMessage != "" {
			b.WriteString(`<div class="notice notice-error">` + esc(data.ErrorMessage) + `</div>`)
		}
		if data.SuccessMessage != "" {
			b.WriteString(`<div class="notice notice-success">` + esc(data.SuccessMessage) + `</div>`)
		}

		disabled := ""
		if data.Disabled {
			disabled = ` disabled`
		}

		b.WriteString(`<form method="post" action="/login">`)
		csrfField(b, data.CSRFToken)
		if data.RedirectTo != "" {
			hiddenInput(b, "redirect_to", data.RedirectTo)
		}
		b.WriteString(`<label for="log">Email</label>`)
		b.WriteString(`<input type="text" id="log" name="log" autocomplete="username"` + disabled + `>`)
		b.WriteString(`<label for="pwd">Password</label>`)
		b.WriteString(`<input type="password" id="pwd" name="pwd" autocomplete="current-password"` + disabled + `>`)
		b.WriteString(`<label class="checkbox"><input type="checkbox" name="rememberme" value="forever"` + disabled + `> Remember me</label>`)
		b.WriteString(`<button type="submit"` + disabled + `>Log In</button>`)
		b.WriteString(`</form>`)

		b.WriteString(`<p class="auth-links"><a href="/register">Create an account</a></p>`)
		b.WriteString(`</section>`)
	})
}

// LogoutConfirmData carries the fields for the logout confirmation screen.
type LogoutConfirmData struct {
	Name       string
	Nonce      string
	RedirectTo string
}

// LogoutConfirmPage renders the logout confirmation screen. The confirm link
// carries a single-use token bound to the current account; without it the
// logout endpoint refuses to act.
func LogoutConfirmPage(data LogoutConfirmData) templ.Component {
	return page("Log Out", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="auth-card">`)
		b.WriteString(`<h1>Log out</h1>`)
		b.WriteString(`<p>You are signed in as <strong>` + esc(data.Name) + `</strong>. Do you really want to log out?</p>`)

		href := "/logout?confirm=1&_wpnonce=" + templ.EscapeString(data.Nonce)
		if data.RedirectTo != "" {
			href += "&redirect_to=" + templ.EscapeString(data.RedirectTo)
		}
		b.WriteString(`<p><a class="btn btn-primary" href="` + href + `">Yes, log me out</a> `)
		b.WriteString(`<a class="btn" href="/dashboard">Cancel</a></p>`)
		b.WriteString(`</section>`)
	})
}

// RegisterData carries the registration form state across validation failures.
type RegisterData struct {
	CSRFToken    string
	Email        string
	DisplayName  string
	ErrorMessage string
}

// RegisterPage renders the account registration form.
func RegisterPage(data RegisterData) templ.Component {
	return page("Sign Up", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="auth-card">`)
		b.WriteString(`<h1>Create your Courtside account</h1>`)

		if data.ErrorMessage != "" {
			b.WriteString(`<div class="notice notice-error">` + esc(data.ErrorMessage) + `</div>`)
		}

		b.WriteString(`<form method="post" action="/register">`)
		csrfField(b, data.CSRFToken)
		b.WriteString(`<label for="email">Email</label>`)
		b.WriteString(`<input type="email" id="email" name="email" value="` + esc(data.Email) + `" autocomplete="email">`)
		b.WriteString(`<label for="display_name">Your name</label>`)
		b.WriteString(`<input type="text" id="display_name" name="display_name" value="` + esc(data.DisplayName) + `" autocomplete="name">`)
		b.WriteString(`<label for="password">Password</label>`)
		b.WriteString(`<input type="password" id="password" name="password" autocomplete="new-password">`)
		b.WriteString(`<label for="password_confirm">Confirm password</label>`)
		b.WriteString(`<input type="password" id="password_confirm" name="password_confirm" autocomplete="new-password">`)
		b.WriteString(`<button type="submit">Sign Up</button>`)
		b.WriteString(`</form>`)

		b.WriteString(`<p class="auth-links">Already have an account? <a href="/login">Log in</a></p>`)
		b.WriteString(`</section>`)
	})
}
