package pages

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// ParentDashboardData carries the parent landing page numbers.
type ParentDashboardData struct {
	Name             string
	PlayerCount      int
	UpcomingSessions int
}

// ParentDashboard renders the parent landing page.
func ParentDashboard(data ParentDashboardData) templ.Component {
	return page("Dashboard", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="dashboard"><h1>Welcome back, ` + esc(data.Name) + `</h1>`)
		b.WriteString(`<div class="stat-grid">`)
		stat(b, strconv.Itoa(data.PlayerCount), "registered players", "/players")
		stat(b, strconv.Itoa(data.UpcomingSessions), "upcoming sessions", "/bookings")
		b.WriteString(`</div>`)
		b.WriteString(`<p><a class="btn btn-primary" href="/trainers">Find a trainer</a></p>`)
		b.WriteString(`</section>`)
	})
}

// TrainerDashboardData carries the trainer landing page numbers.
type TrainerDashboardData struct {
	Name             string
	PendingRequests  int
	UpcomingSessions int
}

// TrainerDashboard renders the trainer landing page.
func TrainerDashboard(data TrainerDashboardData) templ.Component {
	return page("Trainer Dashboard", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="dashboard"><h1>Welcome back, ` + esc(data.Name) + `</h1>`)
		b.WriteString(`<div class="stat-grid">`)
		stat(b, strconv.Itoa(data.PendingRequests), "pending requests", "/bookings")
		stat(b, strconv.Itoa(data.UpcomingSessions), "upcoming sessions", "/bookings")
		b.WriteString(`</div>`)
		b.WriteString(`<p><a class="btn" href="/trainer/profile">Edit my profile</a></p>`)
		b.WriteString(`</section>`)
	})
}

func stat(b *strings.Builder, value, label, href string) {
	b.WriteString(`<a class="stat" href="` + href + `"><span class="stat-value">` + value + `</span>`)
	b.WriteString(`<span class="stat-label">` + esc(label) + `</span></a>`)
}

// PlayerRow is one player in the household list.
type PlayerRow struct {
	ID        string
	FirstName string
	BirthYear int
	Sport     string
}

// PlayersData carries the player management page.
type PlayersData struct {
	CSRFToken string
	Players   []PlayerRow
}

// PlayersPage renders the household's players with add/remove forms.
func PlayersPage(data PlayersData) templ.Component {
	return page("My Players", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="players"><h1>My players</h1>`)

		if len(data.Players) == 0 {
			b.WriteString(`<p class="empty">No players yet. Add your first player below.</p>`)
		} else {
			b.WriteString(`<ul class="player-list">`)
			for _, p := range data.Players {
				b.WriteString(`<li>` + esc(p.FirstName) + ` (born ` + strconv.Itoa(p.BirthYear) + `, ` + esc(p.Sport) + `)`)
				b.WriteString(`<form method="post" action="/players/` + esc(p.ID) + `/delete" class="inline">`)
				csrfField(b, data.CSRFToken)
				b.WriteString(`<button type="submit" class="btn-link">Remove</button></form></li>`)
			}
			b.WriteString(`</ul>`)
		}

		b.WriteString(`<h2>Add a player</h2>`)
		b.WriteString(`<form method="post" action="/players">`)
		csrfField(b, data.CSRFToken)
		b.WriteString(`<label for="first_name">First name</label>`)
		b.WriteString(`<input type="text" id="first_name" name="first_name">`)
		b.WriteString(`<label for="birth_year">Birth year</label>`)
		b.WriteString(`<input type="number" id="birth_year" name="birth_year">`)
		b.WriteString(`<label for="sport">Sport</label>`)
		b.WriteString(`<input type="text" id="sport" name="sport">`)
		b.WriteString(`<button type="submit">Add player</button>`)
		b.WriteString(`</form></section>`)
	})
}

// BookingRow is one session on a schedule.
type BookingRow struct {
	ID          string
	TrainerName string
	PlayerName  string
	Sport       string
	StartsAt    time.Time
	EndsAt      time.Time
	Status      string
	Location    string
}

// BookingsData carries the schedule page for either role.
type BookingsData struct {
	CSRFToken string
	IsTrainer bool
	Bookings  []BookingRow
}

// BookingsPage renders the caller's schedule with role-appropriate actions.
func BookingsPage(data BookingsData) templ.Component {
	return page("My Sessions", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="bookings"><h1>My sessions</h1>`)

		if len(data.Bookings) == 0 {
			b.WriteString(`<p class="empty">No sessions scheduled.</p></section>`)
			return
		}

		b.WriteString(`<table class="booking-table"><thead><tr>`)
		b.WriteString(`<th>When</th><th>Player</th><th>Trainer</th><th>Sport</th><th>Status</th><th></th>`)
		b.WriteString(`</tr></thead><tbody>`)
		for _, row := range data.Bookings {
			b.WriteString(`<tr><td>` + row.StartsAt.Format("Mon Jan 2, 3:04 PM") + `</td>`)
			b.WriteString(`<td>` + esc(row.PlayerName) + `</td>`)
			b.WriteString(`<td>` + esc(row.TrainerName) + `</td>`)
			b.WriteString(`<td>` + esc(row.Sport) + `</td>`)
			b.WriteString(`<td><span class="status status-` + esc(row.Status) + `">` + esc(row.Status) + `</span></td>`)
			b.WriteString(`<td>`)
			bookingActions(b, data, row)
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table></section>`)
	})
}

func bookingActions(b *strings.Builder, data BookingsData, row BookingRow) {
	action := func(path, label string) {
		b.WriteString(`<form method="post" action="/bookings/` + esc(row.ID) + path + `" class="inline">`)
		csrfField(b, data.CSRFToken)
		b.WriteString(`<button type="submit" class="btn-link">` + label + `</button></form>`)
	}

	if data.IsTrainer {
		switch row.Status {
		case "pending":
			action("/confirm", "Confirm")
			action("/decline", "Decline")
		case "confirmed":
			action("/complete", "Complete")
		}
		return
	}

	if row.Status == "pending" || row.Status == "confirmed" {
		action("/cancel", "Cancel")
	}
}

// ActivityRow is one entry in the account page's sign-in activity panel.
type ActivityRow struct {
	Event    string
	ClientIP string
	When     string
}

// AccountData carries the account page.
type AccountData struct {
	CSRFToken string
	Name      string
	Email     string
	Role      string
	Activity  []ActivityRow
}

// AccountPage renders the account page: profile summary, password change,
// recent sign-in activity.
func AccountPage(data AccountData) templ.Component {
	return page("Account", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="account"><h1>Account</h1>`)
		b.WriteString(`<p>` + esc(data.Name) + ` · ` + esc(data.Email) + ` · ` + esc(data.Role) + `</p>`)

		b.WriteString(`<h2>Change password</h2>`)
		b.WriteString(`<form method="post" action="/account/password">`)
		csrfField(b, data.CSRFToken)
		b.WriteString(`<label for="current_password">Current password</label>`)
		b.WriteString(`<input type="password" id="current_password" name="current_password" autocomplete="current-password">`)
		b.WriteString(`<label for="new_password">New password</label>`)
		b.WriteString(`<input type="password" id="new_password" name="new_password" autocomplete="new-password">`)
		b.WriteString(`<label for="confirm_password">Confirm new password</label>`)
		b.WriteString(`<input type="password" id="confirm_password" name="confirm_password" autocomplete="new-password">`)
		b.WriteString(`<button type="submit">Change password</button>`)
		b.WriteString(`</form>`)

		if len(data.Activity) > 0 {
			b.WriteString(`<h2>Recent sign-in activity</h2><ul class="activity">`)
			for _, row := range data.Activity {
				b.WriteString(`<li>` + esc(row.When) + ` · ` + esc(row.Event) + ` from ` + esc(row.ClientIP) + `</li>`)
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</section>`)
	})
}
