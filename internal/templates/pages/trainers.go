package pages

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// TrainerCard is the template representation of a trainer profile.
type TrainerCard struct {
	ID          string
	DisplayName string
	Sport       string
	HourlyRate  string
	// BioHTML is sanitized upstream and rendered as-is.
	BioHTML    string
	IsVerified bool
}

// TrainerDirectoryData carries the public directory listing.
type TrainerDirectoryData struct {
	Trainers []TrainerCard
	Total    int
	Sport    string
	Sports   []string
	Page     int
}

// TrainerDirectory renders the public trainer listing with a sport filter.
func TrainerDirectory(data TrainerDirectoryData) templ.Component {
	return page("Find Trainers", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="directory"><h1>Find a trainer</h1>`)

		b.WriteString(`<form method="get" action="/trainers" class="filter-bar">`)
		b.WriteString(`<select name="sport"><option value="">All sports</option>`)
		for _, sport := range data.Sports {
			sel := ""
			if sport == data.Sport {
				sel = ` selected`
			}
			b.WriteString(`<option value="` + esc(sport) + `"` + sel + `>` + esc(sport) + `</option>`)
		}
		b.WriteString(`</select><button type="submit">Filter</button></form>`)

		b.WriteString(`<p class="result-count">` + strconv.Itoa(data.Total) + ` trainers</p>`)

		b.WriteString(`<ul class="trainer-list">`)
		for _, t := range data.Trainers {
			b.WriteString(`<li class="trainer-card">`)
			b.WriteString(`<a href="/trainers/` + esc(t.ID) + `">` + esc(t.DisplayName) + `</a>`)
			if t.IsVerified {
				b.WriteString(`<span class="badge badge-verified">Verified</span>`)
			}
			b.WriteString(`<span class="sport">` + esc(t.Sport) + `</span>`)
			b.WriteString(`<span class="rate">` + esc(t.HourlyRate) + `</span>`)
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul></section>`)
	})
}

// TrainerDetailData carries one trainer's public profile page.
type TrainerDetailData struct {
	Trainer   TrainerCard
	CanBook   bool
	CSRFToken string
}

// TrainerDetail renders a trainer's public profile.
func TrainerDetail(data TrainerDetailData) templ.Component {
	t := data.Trainer
	return page(t.DisplayName, func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="trainer-detail">`)
		b.WriteString(`<h1>` + esc(t.DisplayName) + `</h1>`)
		if t.IsVerified {
			b.WriteString(`<span class="badge badge-verified">Verified</span>`)
		}
		b.WriteString(`<p class="meta">` + esc(t.Sport) + ` · ` + esc(t.HourlyRate) + `</p>`)

		// Bio passed through the sanitizer on write; safe to emit raw.
		b.WriteString(`<div class="bio">` + t.BioHTML + `</div>`)

		if data.CanBook {
			b.WriteString(`<p><a class="btn btn-primary" href="/bookings?trainer=` + esc(t.ID) + `">Book a session</a></p>`)
		} else {
			b.WriteString(`<p><a href="/login?redirect_to=%2Ftrainers%2F` + esc(t.ID) + `">Log in</a> to book a session.</p>`)
		}
		b.WriteString(`</section>`)
	})
}

// TrainerProfileFormData carries the trainer's own profile edit form.
type TrainerProfileFormData struct {
	CSRFToken string
	Trainer   TrainerCard
	Sports    []string
}

// TrainerProfileForm renders the profile edit form.
func TrainerProfileForm(data TrainerProfileFormData) templ.Component {
	t := data.Trainer
	return page("My Profile", func(ctx context.Context, b *strings.Builder) {
		b.WriteString(`<section class="profile-form"><h1>My trainer profile</h1>`)
		b.WriteString(`<form method="post" action="/trainer/profile">`)
		csrfField(b, data.CSRFToken)

		b.WriteString(`<label for="display_name">Display name</label>`)
		b.WriteString(`<input type="text" id="display_name" name="display_name" value="` + esc(t.DisplayName) + `">`)

		b.WriteString(`<label for="sport">Sport</label><select id="sport" name="sport">`)
		for _, sport := range data.Sports {
			sel := ""
			if sport == t.Sport {
				sel = ` selected`
			}
			b.WriteString(`<option value="` + esc(sport) + `"` + sel + `>` + esc(sport) + `</option>`)
		}
		b.WriteString(`</select>`)

		b.WriteString(`<label for="hourly_rate_cents">Hourly rate (cents)</label>`)
		b.WriteString(`<input type="number" id="hourly_rate_cents" name="hourly_rate_cents" min="0" step="100">`)

		b.WriteString(`<label for="bio">Bio</label>`)
		b.WriteString(`<textarea id="bio" name="bio" rows="8"></textarea>`)

		b.WriteString(`<button type="submit">Save profile</button>`)
		b.WriteString(`</form></section>`)
	})
}
