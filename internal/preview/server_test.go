package preview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formkit/pkg/form"
)

const signupYAML = `
id: signup
action: /api/signup
title: Sign up
description: Create an account
fields:
  - name: email
    required: true
    input:
      kind: text
      type: email
  - name: plan
    input:
      kind: dropdown
      choices:
        - value: free
        - value: pro
  - name: code
    input:
      kind: otp
      length: 4
buttons:
  - label: Create
`

const feedbackYAML = `
id: feedback
fields:
  - name: message
    input:
      kind: text
      multiline: true
`

func definitions(t *testing.T) []form.Definition {
	t.Helper()
	var out []form.Definition
	for _, raw := range []string{signupYAML, feedbackYAML} {
		def, err := form.DecodeDefinition([]byte(raw))
		if err != nil {
			t.Fatalf("decode definition: %v", err)
		}
		out = append(out, def)
	}
	return out
}

func newServer(t *testing.T, csrf bool) *Server {
	t.Helper()
	srv, err := NewServer(Options{Forms: definitions(t), CSRF: csrf, DisableReqLogs: true})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func assertBody(t *testing.T, rec *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, fragment := range fragments {
		if !strings.Contains(body, fragment) {
			t.Fatalf("body missing %q\n%s", fragment, body)
		}
	}
}

func TestServer_Index(t *testing.T) {
	rec := do(newServer(t, false), httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want %d, got %d", http.StatusOK, rec.Code)
	}
	assertBody(t, rec,
		`<a href="/forms/signup"`, `>Sign up</a>`, `Create an account`, `3 fields`,
		`<a href="/forms/feedback"`, `>Feedback</a>`,
		`<script src="https://cdn.tailwindcss.com"></script>`,
	)
}

func TestServer_ShowForm(t *testing.T) {
	srv := newServer(t, false)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/forms/signup", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want %d, got %d", http.StatusOK, rec.Code)
	}
	assertBody(t, rec,
		`action="/forms/signup"`, `method="POST"`,
		`<input type="email" id="fk-email" name="email"`,
		`<script src="/formkit/assets/formkit-otp.js" defer></script>`,
		`&larr; All forms`,
	)

	rec = do(srv, httptest.NewRequest(http.MethodGet, "/forms/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: want %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServer_Assets(t *testing.T) {
	rec := do(newServer(t, false), httptest.NewRequest(http.MethodGet, "/formkit/assets/formkit-otp.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("expected asset body")
	}
}

func TestServer_Submit(t *testing.T) {
	srv := newServer(t, false)

	rec := do(srv, postForm("/forms/signup", url.Values{"plan": {"pro"}, "code": {"12"}}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: want %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
	assertBody(t, rec,
		`data-field="email" data-status="error"`,
		form.MessageRequired,
		form.MessageInvalidCode,
		`<option value="pro" selected>`,
	)

	rec = do(srv, postForm("/forms/signup", url.Values{"email": {"ada@example.com"}, "code": {"1234"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want %d, got %d\n%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	assertBody(t, rec, SuccessNotice, `value="ada@example.com"`)
}

func TestServer_SubmitJSON(t *testing.T) {
	req := postForm("/forms/signup", url.Values{"email": {"ada@example.com"}, "plan": {"gold"}})
	req.Header.Set(echo.HeaderAccept, "text/html;q=0.5, application/json")
	rec := do(newServer(t, false), req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: want %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}

	var got struct {
		Values map[string]any      `json:"values"`
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"plan": {form.MessageUnknownValue}}, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got.Values["email"] != "ada@example.com" {
		t.Fatalf("email: want %q, got %v", "ada@example.com", got.Values["email"])
	}
}

func TestServer_CSRF(t *testing.T) {
	srv := newServer(t, true)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/forms/feedback", nil))
	var token string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == CSRFField {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatalf("expected csrf cookie")
	}
	assertBody(t, rec, `<input type="hidden" name="_csrf" value="`+token+`">`)

	rec = do(srv, postForm("/forms/feedback", url.Values{"message": {"hi"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status without token: want %d, got %d", http.StatusBadRequest, rec.Code)
	}

	req := postForm("/forms/feedback", url.Values{"message": {"hi"}, CSRFField: {token}})
	req.AddCookie(&http.Cookie{Name: CSRFField, Value: token})
	rec = do(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status with token: want %d, got %d\n%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	assertBody(t, rec, SuccessNotice, `>hi</textarea>`)
}

func TestServer_Suggestions(t *testing.T) {
	srv, err := NewServer(Options{
		Forms:          definitions(t),
		DisableReqLogs: true,
		Suggestions: map[string][]form.Choice{
			"timezones": {{Value: "Europe/Madrid"}, {Value: "Europe/London"}, {Value: "UTC"}},
		},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/suggest/timezones?q=europe&limit=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want %d, got %d", http.StatusOK, rec.Code)
	}
	var got struct {
		Data []map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	want := []map[string]string{{"value": "Europe/London", "label": "Europe/London"}}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewServer(Options{Suggestions: map[string][]form.Choice{"/": nil}}); err == nil {
		t.Fatalf("expected error for unnamed endpoint")
	}
}

func TestNewServer_RejectsBadDefinitions(t *testing.T) {
	defs := definitions(t)
	if _, err := NewServer(Options{Forms: append(defs, defs[0])}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
	if _, err := NewServer(Options{Forms: []form.Definition{{Title: "No id"}}}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}
