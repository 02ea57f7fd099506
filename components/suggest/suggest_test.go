package suggest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
)

var courses = []form.Choice{
	{Value: "go-101", Label: "Go basics"},
	{Value: "web-201", Label: "Web forms in Go"},
	{Value: "algo-301", Label: "Algorithms"},
	{Value: "legacy", Label: "Go legacy", Disabled: true},
}

func get(t *testing.T, h http.Handler, target string) []Option {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type: want json, got %q", ct)
	}
	var payload struct {
		Data []Option `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data == nil {
		t.Fatalf("data should be an array, got null")
	}
	return payload.Data
}

func TestSearch_PrefixFirst(t *testing.T) {
	got := Search(courses, "go", 0, NewOptions())
	want := []Option{
		{Value: "go-101", Label: "Go basics"},
		{Value: "algo-301", Label: "Algorithms"},
		{Value: "web-201", Label: "Web forms in Go"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	if got := Search(courses, "ALGO-3", 0, NewOptions()); len(got) != 1 || got[0].Value != "algo-301" {
		t.Fatalf("value match: got %v", got)
	}
}

func TestSearch_EmptyQueryAndLimits(t *testing.T) {
	if got := Search(courses, "  ", 0, NewOptions()); got != nil {
		t.Fatalf("empty query with none mode: want nil, got %v", got)
	}
	got := Search(courses, "", 2, NewOptions(WithEmptyMode(EmptyTop)))
	if diff := cmp.Diff([]Option{{Value: "go-101", Label: "Go basics"}, {Value: "web-201", Label: "Web forms in Go"}}, got); diff != "" {
		t.Fatalf("top results mismatch (-want +got):\n%s", diff)
	}
	if got := Search(courses, "o", -1, NewOptions()); got != nil {
		t.Fatalf("negative limit: want nil, got %v", got)
	}
	if got := Search(courses, "o", 50, NewOptions(WithMaxLimit(1))); len(got) != 1 {
		t.Fatalf("clamped limit: want 1 result, got %d", len(got))
	}
}

func TestHandler(t *testing.T) {
	h := Handler(courses, WithSearchParam("search"), WithLimitParam("n"))

	if got := get(t, h, "/api/courses?search=forms&n=5"); len(got) != 1 || got[0].Value != "web-201" {
		t.Fatalf("search: got %v", got)
	}
	if got := get(t, h, "/api/courses"); len(got) != 0 {
		t.Fatalf("blank query: want no results, got %v", got)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/courses", nil))
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != "GET, HEAD" {
		t.Fatalf("post: got %d allow %q", rec.Code, rec.Header().Get("Allow"))
	}
}

func TestHandler_Guard(t *testing.T) {
	tests := []struct {
		name  string
		guard GuardFunc
		want  int
	}{
		{"plain error", func(*http.Request) error { return errors.New("nope") }, http.StatusForbidden},
		{"status error", func(*http.Request) error { return StatusError{Code: http.StatusUnauthorized} }, http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handler(courses, WithGuard(tc.guard)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?q=go", nil))
			if rec.Code != tc.want {
				t.Fatalf("status: want %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	path, err := RegisterRoutes(mux, "/admin/", "api/courses", courses)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if path != "/admin/api/courses" {
		t.Fatalf("path: want %q, got %q", "/admin/api/courses", path)
	}
	if got := get(t, mux, "/admin/api/courses?q=algo"); len(got) != 1 {
		t.Fatalf("mounted handler: got %v", got)
	}
	if _, err := RegisterRoutes(nil, "", "/x", nil); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestDecodeChoices(t *testing.T) {
	got, err := DecodeChoices([]byte("- Europe/Madrid\n- value: UTC\n  label: Coordinated Universal Time\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []form.Choice{{Value: "Europe/Madrid"}, {Value: "UTC", Label: "Coordinated Universal Time"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if _, err := DecodeChoices([]byte("- label: no value\n")); err == nil {
		t.Fatalf("expected error for missing value")
	}
	if _, err := DecodeChoices([]byte("- [a, b]\n")); err == nil {
		t.Fatalf("expected error for nested list")
	}
}
