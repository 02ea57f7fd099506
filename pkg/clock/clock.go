// Package clock models the value of a time-of-day input.
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// New normalises hour and minute into range, wrapping around the day.
func New(hour, minute int) Clock {
	total := mod(hour*60+minute, 24*60)
	return Clock{Hour: total / 60, Minute: total % 60}
}

// IncrementHour moves forward by step hours, wrapping at midnight.
func (c Clock) IncrementHour(step int) Clock {
	return Clock{Hour: mod(c.Hour+step, 24), Minute: c.Minute}
}

// DecrementHour moves back by step hours, wrapping at midnight.
func (c Clock) DecrementHour(step int) Clock {
	return c.IncrementHour(-step)
}

// IncrementMinute moves forward by step minutes. Minutes wrap within the hour
// without carrying into the hour field, matching spinner behaviour.
func (c Clock) IncrementMinute(step int) Clock {
	return Clock{Hour: c.Hour, Minute: mod(c.Minute+step, 60)}
}

// DecrementMinute moves back by step minutes, wrapping within the hour.
func (c Clock) DecrementMinute(step int) Clock {
	return c.IncrementMinute(-step)
}

// Snap rounds the minute down to the nearest multiple of step.
func (c Clock) Snap(step int) Clock {
	if step <= 1 {
		return c
	}
	return Clock{Hour: c.Hour, Minute: c.Minute - c.Minute%step}
}

// Format24 renders "HH:MM".
func (c Clock) Format24() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Format12 renders "h:MM AM".
func (c Clock) Format12() string {
	period := "AM"
	if c.Hour >= 12 {
		period = "PM"
	}
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, period)
}

// Parse reads "HH:MM", "HH:MM:SS" or "h:MM AM/PM".
func Parse(raw string) (Clock, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return Clock{}, fmt.Errorf("clock: empty value")
	}

	period := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(value, suffix) {
			period = suffix
			value = strings.TrimSpace(strings.TrimSuffix(value, suffix))
		}
	}

	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("clock: invalid time %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("clock: invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("clock: invalid minute in %q", raw)
	}

	switch period {
	case "":
		if hour < 0 || hour > 23 {
			return Clock{}, fmt.Errorf("clock: invalid hour in %q", raw)
		}
	default:
		if hour < 1 || hour > 12 {
			return Clock{}, fmt.Errorf("clock: invalid hour in %q", raw)
		}
		hour %= 12
		if period == "PM" {
			hour += 12
		}
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func mod(value, n int) int {
	return ((value % n) + n) % n
}
