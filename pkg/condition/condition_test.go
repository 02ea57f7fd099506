package condition

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEval(t *testing.T) {
	values := map[string]any{
		"plan":       "pro",
		"trial":      false,
		"seats":      12,
		"discount":   "0.5",
		"newsletter": "on",
		"tags":       []string{"go", "web"},
		"country":    "",
		"billing":    map[string]any{"currency": "EUR"},
		"user.role":  "admin",
	}

	tests := []struct {
		rule string
		want bool
	}{
		{"", true},
		{"plan", true},
		{"country", false},
		{"missing", false},
		{"trial", false},
		{"!trial", true},
		{"newsletter", true},
		{`plan == "pro"`, true},
		{"plan == pro", true},
		{"plan != 'free'", true},
		{"seats == 12", true},
		{"seats >= 10 && seats < 20", true},
		{"discount > 0.25", true},
		{"plan > 1", false},
		{"trial == false", true},
		{"country == null", true},
		{"missing == null", true},
		{"plan != null", true},
		{`tags == "go"`, true},
		{`tags != "rust"`, true},
		{`tags == "rust"`, false},
		{`billing.currency == "EUR"`, true},
		{`user.role == admin`, true},
		{`plan == "free" || seats > 10`, true},
		{`plan == "free" || (seats > 10 && trial)`, false},
		{`not trial and plan == pro`, true},
		{`!(plan == "pro")`, false},
	}
	for _, tc := range tests {
		t.Run(tc.rule, func(t *testing.T) {
			got, err := Eval(tc.rule, values)
			if err != nil {
				t.Fatalf("eval %q: %v", tc.rule, err)
			}
			if got != tc.want {
				t.Fatalf("eval %q: want %v, got %v", tc.rule, tc.want, got)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		rule string
		pos  int
	}{
		{"plan = pro", 5},
		{"a & b", 2},
		{"a | b", 2},
		{`plan == "pro`, 8},
		{"(plan", 5},
		{"plan ==", 7},
		{"== pro", 0},
		{"plan pro", 5},
		{"seats > pro", 6},
		{"a # b", 2},
		{"seats == 1.2.3", 9},
	}
	for _, tc := range tests {
		t.Run(tc.rule, func(t *testing.T) {
			_, err := Parse(tc.rule)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
			if syntaxErr.Pos != tc.pos {
				t.Fatalf("position: want %d, got %d (%v)", tc.pos, syntaxErr.Pos, err)
			}
		})
	}
}

func TestRule_Names(t *testing.T) {
	rule := MustParse(`  plan == "pro" && (seats > 3 || !plan) && billing.currency  `)
	if diff := cmp.Diff([]string{"plan", "seats", "billing.currency"}, rule.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := rule.String(); got != `plan == "pro" && (seats > 3 || !plan) && billing.currency` {
		t.Fatalf("string: got %q", got)
	}

	var empty *Rule
	if !empty.Eval(nil) || empty.Names() != nil {
		t.Fatalf("nil rule should always hold and read nothing")
	}
}
