// Package otp holds the value handling behind one-time-code inputs.
package otp

import (
	"context"
	"strings"
	"time"
)

// DefaultLength is the number of cells rendered when none is configured.
const DefaultLength = 6

// Normalize keeps digits only and truncates to length.
func Normalize(raw string, length int) string {
	if length <= 0 {
		length = DefaultLength
	}
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == length {
			break
		}
	}
	return b.String()
}

// Distribute spreads pasted input over the cells starting at index start,
// returning the updated cells and the index that should receive focus next.
func Distribute(cells []string, start int, pasted string) ([]string, int) {
	out := append([]string(nil), cells...)
	if len(out) == 0 {
		return out, 0
	}
	if start < 0 {
		start = 0
	}
	idx := start
	for _, r := range Normalize(pasted, len(out)) {
		if idx >= len(out) {
			break
		}
		out[idx] = string(r)
		idx++
	}
	if idx >= len(out) {
		idx = len(out) - 1
	}
	return out, idx
}

// Cells splits value into length single-digit cells, padding with blanks.
func Cells(value string, length int) []string {
	if length <= 0 {
		length = DefaultLength
	}
	digits := Normalize(value, length)
	cells := make([]string, length)
	for i, r := range digits {
		cells[i] = string(r)
	}
	return cells
}

// Complete reports whether value holds exactly length digits.
func Complete(value string, length int) bool {
	if length <= 0 {
		length = DefaultLength
	}
	return len(Normalize(value, length)) == length && len(strings.TrimSpace(value)) == length
}

// Cooldown counts down d in one-second steps, calling tick with the remaining
// whole seconds (including the initial value and a final zero). It returns
// early with ctx.Err() when ctx is cancelled.
func Cooldown(ctx context.Context, d time.Duration, tick func(remaining int)) error {
	return cooldown(ctx, d, time.Second, tick)
}

func cooldown(ctx context.Context, d, step time.Duration, tick func(remaining int)) error {
	remaining := int(d / step)
	if tick != nil {
		tick(remaining)
	}
	if remaining <= 0 {
		return nil
	}

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			remaining--
			if tick != nil {
				tick(remaining)
			}
		}
	}
	return nil
}
