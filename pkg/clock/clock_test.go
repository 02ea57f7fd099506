package clock

import "testing"

func TestWraparound(t *testing.T) {
	c := Clock{Hour: 23, Minute: 55}

	if got := c.IncrementHour(1); got != (Clock{Hour: 0, Minute: 55}) {
		t.Fatalf("increment hour: got %+v", got)
	}
	if got := c.IncrementMinute(10); got != (Clock{Hour: 23, Minute: 5}) {
		t.Fatalf("increment minute should not carry: got %+v", got)
	}
	if got := (Clock{}).DecrementHour(1); got != (Clock{Hour: 23}) {
		t.Fatalf("decrement hour: got %+v", got)
	}
	if got := (Clock{Hour: 8}).DecrementMinute(15); got != (Clock{Hour: 8, Minute: 45}) {
		t.Fatalf("decrement minute: got %+v", got)
	}
	if got := New(25, -30); got != (Clock{Hour: 0, Minute: 30}) {
		t.Fatalf("new normalises: got %+v", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		clock Clock
		h24   string
		h12   string
	}{
		{Clock{0, 5}, "00:05", "12:05 AM"},
		{Clock{12, 0}, "12:00", "12:00 PM"},
		{Clock{18, 30}, "18:30", "6:30 PM"},
	}
	for _, tc := range cases {
		if got := tc.clock.Format24(); got != tc.h24 {
			t.Fatalf("format24: want %q, got %q", tc.h24, got)
		}
		if got := tc.clock.Format12(); got != tc.h12 {
			t.Fatalf("format12: want %q, got %q", tc.h12, got)
		}
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Clock{
		"09:30":    {9, 30},
		"23:59:59": {23, 59},
		"12:15 am": {0, 15},
		"1:05PM":   {13, 5},
		"12:00 PM": {12, 0},
	}
	for raw, want := range cases {
		got, err := Parse(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %+v, got %+v", raw, want, got)
		}
	}

	for _, raw := range []string{"", "24:00", "13:00 PM", "10:60", "noon"} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestSnap(t *testing.T) {
	if got := (Clock{Hour: 10, Minute: 44}).Snap(15); got != (Clock{Hour: 10, Minute: 30}) {
		t.Fatalf("snap: got %+v", got)
	}
}
