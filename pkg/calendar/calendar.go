// Package calendar builds month grids for date inputs.
package calendar

import "time"

// Day is a single cell in a month grid.
type Day struct {
	Date     time.Time
	InMonth  bool
	Today    bool
	Selected bool
	Disabled bool
	Weekend  bool
}

// Week is seven consecutive days starting at the grid's week start.
type Week [7]Day

// Grid is a rendered month.
type Grid struct {
	Year     int
	Month    time.Month
	Weekdays []time.Weekday
	Weeks    []Week
}

// Options customise grid generation. Zero values mean "not set".
type Options struct {
	WeekStart time.Weekday
	Today     time.Time
	Selected  time.Time
	Min       time.Time
	Max       time.Time
}

// Month builds the grid for year/month. The grid always contains whole weeks,
// padding the first and last week with days from the adjacent months.
func Month(year int, month time.Month, opts Options) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) - int(opts.WeekStart) + 7) % 7
	start := first.AddDate(0, 0, -offset)

	last := first.AddDate(0, 1, -1)
	total := offset + last.Day()
	weeks := (total + 6) / 7

	grid := Grid{
		Year:     year,
		Month:    month,
		Weekdays: weekdays(opts.WeekStart),
		Weeks:    make([]Week, weeks),
	}

	for w := 0; w < weeks; w++ {
		for d := 0; d < 7; d++ {
			date := start.AddDate(0, 0, w*7+d)
			grid.Weeks[w][d] = Day{
				Date:     date,
				InMonth:  date.Month() == month,
				Today:    sameDay(date, opts.Today),
				Selected: sameDay(date, opts.Selected),
				Disabled: outOfRange(date, opts.Min, opts.Max),
				Weekend:  date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
			}
		}
	}
	return grid
}

// Prev returns the year and month before year/month.
func Prev(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// Next returns the year and month after year/month.
func Next(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

func weekdays(start time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(start) + i) % 7)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	if b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func outOfRange(date, min, max time.Time) bool {
	day := dayKey(date)
	if !min.IsZero() && day < dayKey(min) {
		return true
	}
	if !max.IsZero() && day > dayKey(max) {
		return true
	}
	return false
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
