package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	messages     []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func enrolForm() *form.Form {
	f := form.New(nil,
		form.WithTitle("Enrol"),
		form.WithValues(map[string]any{"plan": "pro", "nickname": "locked"}),
		form.WithErrors(map[string][]string{"email": {"Already taken"}}),
	)
	f.Field(form.FieldProps{Name: "email", Required: true}, form.TextInput{Type: "email"})
	f.Field(form.FieldProps{Name: "bio"}, form.TextInput{Multiline: true})
	f.Field(form.FieldProps{Name: "plan"}, form.DropdownInput{Choices: []form.Choice{{Value: "free"}, {Value: "pro"}}})
	f.Field(form.FieldProps{Name: "tags"}, form.CheckboxInput{Choices: []form.Choice{{Value: "go"}, {Value: "web"}}})
	f.Field(form.FieldProps{Name: "terms", Required: true}, form.CheckboxInput{Text: "I agree"})
	f.Field(form.FieldProps{Name: "code"}, form.OTPInput{Length: 4})
	f.Field(form.FieldProps{Name: "phone"}, form.PhoneInput{DefaultCountry: "GB"})
	f.Field(form.FieldProps{Name: "birthday"}, form.DateInput{})
	f.Field(form.FieldProps{Name: "alarm"}, form.TimeInput{Step: 15})
	f.Field(form.FieldProps{Name: "avatar"}, form.FileInput{Multiple: true})
	f.Field(form.FieldProps{Name: "q"}, form.SearchInput{})
	f.Field(form.FieldProps{Name: "age"}, form.TextInput{Type: "number"})
	f.Field(form.FieldProps{Name: "nickname", Disabled: true}, form.TextInput{})
	f.Button(form.ButtonProps{Label: "Enrol"})
	return f
}

func enrolDriver() *stubDriver {
	return &stubDriver{
		inputs:    []string{"ada@example.com", "1234", "7700 900123", "2026-10-05", "7:44 PM", "a.png, b.png", "forms", "42"},
		textAreas: []string{"Hello"},
		selectIdx: []int{0, 1},
		multiIdx:  [][]int{{1}},
		confirm:   []bool{true},
	}
}

func TestRender_CollectsEveryKind(t *testing.T) {
	driver := enrolDriver()
	out, err := New(WithPromptDriver(driver)).Render(context.Background(), enrolForm())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{
		"email":    "ada@example.com",
		"bio":      "Hello",
		"plan":     "free",
		"tags":     []any{"web"},
		"terms":    true,
		"code":     "1234",
		"phone":    "+44 7700 900123",
		"birthday": "2026-10-05",
		"alarm":    "19:30",
		"avatar":   []any{"a.png", "b.png"},
		"q":        "forms",
		"age":      float64(42),
		"nickname": "locked",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Enrol", "! Email *: Already taken"}, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	if driver.messages[0] != "Email *" || driver.messages[4] != "I agree" {
		t.Fatalf("unexpected prompt messages: %q", driver.messages)
	}
}

func TestRender_FormEncodedOutput(t *testing.T) {
	r := New(WithPromptDriver(enrolDriver()), WithOutputFormat(OutputFormatFormURLEncoded))
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("content type: got %q", r.ContentType())
	}
	out, err := r.Render(context.Background(), enrolForm())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	values, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if diff := cmp.Diff([]string{"a.png", "b.png"}, values["avatar"]); diff != "" {
		t.Fatalf("avatar mismatch (-want +got):\n%s", diff)
	}
	if values.Get("age") != "42" || values.Get("terms") != "true" {
		t.Fatalf("unexpected encoding: %s", out)
	}
}

func TestRender_ValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		field  form.FieldProps
		input  form.Input
		driver *stubDriver
		want   error
	}{
		{"required text", form.FieldProps{Name: "email", Required: true}, form.TextInput{}, &stubDriver{inputs: []string{"  "}}, ErrRequired},
		{"bad email", form.FieldProps{Name: "email"}, form.TextInput{Type: "email"}, &stubDriver{inputs: []string{"nope"}}, nil},
		{"short otp", form.FieldProps{Name: "code"}, form.OTPInput{Length: 6}, &stubDriver{inputs: []string{"12"}}, nil},
		{"date after max", form.FieldProps{Name: "day"}, form.DateInput{Max: mustDate(t, "2026-01-01")}, &stubDriver{inputs: []string{"2026-02-01"}}, nil},
		{"bad time", form.FieldProps{Name: "at"}, form.TimeInput{}, &stubDriver{inputs: []string{"25:00"}}, nil},
		{"unchecked terms", form.FieldProps{Name: "terms", Required: true}, form.CheckboxInput{}, &stubDriver{confirm: []bool{false}}, ErrRequired},
		{"pattern", form.FieldProps{Name: "slug"}, form.TextInput{Pattern: "[a-z]+"}, &stubDriver{inputs: []string{"Abc"}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := form.New(nil)
			f.Field(tc.field, tc.input)
			_, err := New(WithPromptDriver(tc.driver)).Render(context.Background(), f)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRender_AbortAndCancel(t *testing.T) {
	f := form.New(nil)
	f.Field(form.FieldProps{Name: "name"}, form.TextInput{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(WithPromptDriver(&stubDriver{})).Render(ctx, f); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := New(WithPromptDriver(abortDriver{&stubDriver{}})).Render(context.Background(), f); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_SubmitTransformer(t *testing.T) {
	f := form.New(nil)
	f.Field(form.FieldProps{Name: "name"}, form.TextInput{})

	r := New(
		WithPromptDriver(&stubDriver{inputs: []string{"Ada"}}),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "cli"
			return values, nil
		}),
	)
	out, err := r.Render(context.Background(), f)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"name":"Ada","source":"cli"}` {
		t.Fatalf("output: want %q, got %q", `{"name":"Ada","source":"cli"}`, out)
	}
}

type abortDriver struct {
	*stubDriver
}

func (abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return day
}

func TestParseOutputFormat(t *testing.T) {
	tests := map[string]OutputFormat{
		"":           OutputFormatJSON,
		"JSON":       OutputFormatJSON,
		" form ":     OutputFormatFormURLEncoded,
		"urlencoded": OutputFormatFormURLEncoded,
	}
	for raw, want := range tests {
		got, err := ParseOutputFormat(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %q, got %q", raw, want, got)
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestCollect_VisibleWhen(t *testing.T) {
	f := form.New(nil)
	f.Field(form.FieldProps{Name: "tags"}, form.CheckboxInput{Choices: []form.Choice{{Value: "go"}, {Value: "web"}}})
	f.Field(form.FieldProps{Name: "framework", VisibleWhen: `tags == "web"`}, form.TextInput{})
	f.Field(form.FieldProps{Name: "crate", VisibleWhen: `tags == "rust"`}, form.TextInput{})

	driver := &stubDriver{multiIdx: [][]int{{1}}, inputs: []string{"echo"}}
	got, err := New(WithPromptDriver(driver)).Collect(context.Background(), f.Resolve())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]any{"tags": []string{"web"}, "framework": "echo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(driver.messages) != 2 {
		t.Fatalf("expected 2 prompts, got %v", driver.messages)
	}
}
