// Package sale tracks the storefront's seasonal sale calendar.
//
// Windows open and close at the storefront rollover time, 10:00 in
// America/Los_Angeles, which keeps the instants DST-safe.
package sale

import "time"

// Phase of the reported sale window.
type Phase string

const (
	PhaseActive   Phase = "active"
	PhaseUpcoming Phase = "upcoming"
)

const rolloverHour = 10

// Info describes the active sale (counting down to its end) or the next
// upcoming one (counting down to its start).
type Info struct {
	Label  string    `json:"saleLabel"`
	Phase  Phase     `json:"phase"`
	Target time.Time `json:"saleTargetAt"`
}

// Report combines the calendar position with the live count of
// discounted items. GamesOnSale stays nil when the count was
// unavailable; the countdown is still served.
type Report struct {
	Info
	GamesOnSale *int      `json:"gamesOnSale"`
	Now         time.Time `json:"now"`
}

// Window is one seasonal sale period.
type Window struct {
	Label      string
	Start, End time.Time
}

var storefrontTZ = func() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return time.UTC
	}
	return loc
}()

func rollover(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, rolloverHour, 0, 0, 0, storefrontTZ)
}

// Windows returns the 2025 seasonal sale calendar.
func Windows() []Window {
	return []Window{
		{Label: "Spring Sale", Start: rollover(2025, time.March, 13), End: rollover(2025, time.March, 20)},
		{Label: "Summer Sale", Start: rollover(2025, time.June, 26), End: rollover(2025, time.July, 10)},
		{Label: "Autumn Sale", Start: rollover(2025, time.September, 29), End: rollover(2025, time.October, 6)},
		{Label: "Winter Sale", Start: rollover(2025, time.December, 18), End: rollover(2026, time.January, 5)},
	}
}

// ActiveOrNext reports the sale window relevant at now: an active window
// targets its end, otherwise the next upcoming window targets its start.
// Past the calendar's final window it points at the next spring placeholder.
func ActiveOrNext(now time.Time) Info {
	for _, w := range Windows() {
		if !now.Before(w.Start) && !now.After(w.End) {
			return Info{Label: w.Label, Phase: PhaseActive, Target: w.End}
		}
	}
	for _, w := range Windows() {
		if now.Before(w.Start) {
			return Info{Label: w.Label, Phase: PhaseUpcoming, Target: w.Start}
		}
	}
	return Info{Label: "Spring Sale", Phase: PhaseUpcoming, Target: rollover(2026, time.March, 19)}
}
