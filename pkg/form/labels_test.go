package form

import (
	"strings"
	"testing"
)

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"email":                    "Email",
		"firstName":                "First Name",
		"billing_address.postCode": "Billing Address Post Code",
		"otp-code":                 "Otp Code",
	}
	for input, want := range cases {
		if got := Humanize(input); got != want {
			t.Fatalf("humanize %q: want %q, got %q", input, want, got)
		}
	}
}

func TestSanitizeIcon(t *testing.T) {
	raw := `<svg viewBox="0 0 20 20" onload="alert(1)"><script>alert(1)</script><path d="M0 0h20"/></svg>`
	got := SanitizeIcon(raw)
	if strings.Contains(got, "script") || strings.Contains(got, "onload") {
		t.Fatalf("unsafe markup kept: %q", got)
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, `<path d="M0 0h20"`) {
		t.Fatalf("svg stripped: %q", got)
	}
	if SanitizeIcon("   ") != "" {
		t.Fatalf("blank icon should stay blank")
	}
}

func TestSanitizeDescription(t *testing.T) {
	got := SanitizeDescription(`Read the <a href="/terms" onclick="x()">terms</a> <strong>first</strong><img src=x>`)
	if strings.Contains(got, "onclick") || strings.Contains(got, "<img") {
		t.Fatalf("unsafe markup kept: %q", got)
	}
	if !strings.Contains(got, "<strong>first</strong>") || !strings.Contains(got, `href="/terms"`) {
		t.Fatalf("allowed markup stripped: %q", got)
	}
}
