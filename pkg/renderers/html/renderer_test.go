package html

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/renderers/html/components"
	"github.com/goliatone/go-formkit/pkg/style"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

var fixedNow = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func newRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func render(t *testing.T, r *Renderer, f *form.Form) string {
	t.Helper()
	out, err := r.Render(context.Background(), f)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, markup string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(markup, fragment) {
			t.Fatalf("markup missing %q\n%s", fragment, markup)
		}
	}
}

func assertNotContains(t *testing.T, markup string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(markup, fragment) {
			t.Fatalf("markup unexpectedly contains %q\n%s", fragment, markup)
		}
	}
}

func TestRender_FormShell(t *testing.T) {
	store := config.NewStore()
	store.Configure(config.Config{ClassNames: map[string]string{config.SlotForm: "p-6"}})

	f := form.New(store,
		form.WithID("signup"),
		form.WithAction("/signup", "put"),
		form.WithTitle("Create <account>"),
		form.WithDescription(`Read the <strong>terms</strong><script>x()</script>`),
		form.WithErrors(map[string][]string{"__all__": {"Service unavailable"}}),
		form.WithHidden(form.CSRFToken("_csrf", `t"k`), form.VersionField("version", 3)),
	)
	f.Field(form.FieldProps{Name: "email", Required: true}, form.TextInput{Type: "email", Placeholder: "you@example.com"})
	f.Button(form.ButtonProps{Label: "Save"})
	f.Button(form.ButtonProps{Label: "Cancel", Type: "button"})

	out := render(t, newRenderer(t, WithCSSVars(map[string]string{"formkit-color-primary": "#2563eb"})), f)

	assertContains(t, out,
		`<form class="formkit-form" method="POST" id="signup" action="/signup"`,
		`style="--formkit-color-primary: #2563eb"`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<input type="hidden" name="_csrf" value="t&quot;k">`,
		`<input type="hidden" name="version" value="3">`,
		`Create &lt;account&gt;`,
		`<strong>terms</strong>`,
		`<li>Service unavailable</li>`,
		`class="formkit-grid grid grid-cols-1 gap-4 p-6"`,
		`<label for="fk-email" class="formkit-label`,
		`<span class="text-red-600" aria-hidden="true">*</span>`,
		`<input type="email" id="fk-email" name="email"`,
		`placeholder="you@example.com"`,
		`<div class="formkit-actions col-span-full`,
	)
	assertNotContains(t, out, "<script>x()</script>")

	if strings.Index(out, ">Save<") > strings.Index(out, ">Cancel<") {
		t.Fatalf("buttons out of order")
	}
	if strings.Count(out, "formkit-actions") != 1 {
		t.Fatalf("consecutive buttons should share one actions row\n%s", out)
	}
}

func TestRender_ShellGolden(t *testing.T) {
	store := testsupport.NewStore(t, "testdata/formkit.yaml")
	f := form.New(store,
		form.WithID("contact"),
		form.WithAction("/contact", "post"),
		form.WithTitle("Contact us"),
		form.WithDescription("We reply within one <strong>working day</strong>."),
		form.WithHidden(form.CSRFToken("_csrf", "abc"), form.VersionField("version", 2)),
	)

	out, err := newRenderer(t, WithAssets(false)).Render(context.Background(), f)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGoldenHTML(t, "testdata/shell.golden.html", out)
}

func TestRender_FieldStatusMarkup(t *testing.T) {
	f := form.New(config.NewStore(), form.WithErrors(map[string][]string{"email": {"Already <taken>"}}))
	f.Field(form.FieldProps{Name: "email", Success: "Looks good", Helper: "We never share it"}, form.TextInput{})
	f.Field(form.FieldProps{Name: "name", Success: "Looks good"}, form.TextInput{})

	out := render(t, newRenderer(t), f)
	assertContains(t, out,
		`data-field="email" data-status="error"`,
		`aria-invalid="true"`,
		`aria-describedby="fk-email-message"`,
		`<p id="fk-email-message" class="formkit-message text-sm text-red-600" role="alert">Already &lt;taken&gt;</p>`,
		`<p id="fk-email-helper"`,
		`data-field="name" data-status="success"`,
		`text-green-600`,
	)
}

func TestRender_AllInputKinds(t *testing.T) {
	f := form.New(config.NewStore(), form.WithValues(map[string]any{
		"bio":      "Hello <world>",
		"plan":     "pro",
		"tags":     []string{"go", "web"},
		"terms":    true,
		"code":     "12a3",
		"phone":    "+44 7700 900123",
		"birthday": "2026-10-05",
		"alarm":    "7:44 PM",
		"q":        "forms",
	}))
	f.Field(form.FieldProps{Name: "bio"}, form.TextInput{Multiline: true, Rows: 4, MaxLength: 200})
	f.Field(form.FieldProps{Name: "plan"}, form.DropdownInput{
		Placeholder: "Choose a plan",
		Choices:     []form.Choice{{Value: "free"}, {Value: "pro", Label: "Pro"}},
	})
	f.Field(form.FieldProps{Name: "tags"}, form.CheckboxInput{Choices: []form.Choice{{Value: "go"}, {Value: "rust"}, {Value: "web"}}})
	f.Field(form.FieldProps{Name: "terms"}, form.CheckboxInput{Text: "I agree", Toggle: true})
	f.Field(form.FieldProps{Name: "code"}, form.OTPInput{Length: 4, ResendSeconds: 30})
	f.Field(form.FieldProps{Name: "phone"}, form.PhoneInput{})
	f.Field(form.FieldProps{Name: "birthday"}, form.DateInput{
		ShowCalendar: true,
		WeekStart:    time.Monday,
		Max:          time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC),
	})
	f.Field(form.FieldProps{Name: "alarm"}, form.TimeInput{Step: 15})
	f.Field(form.FieldProps{Name: "avatar"}, form.FileInput{Accept: []string{"image/png", "image/jpeg"}, DropZone: true, MaxSize: 1024})
	f.Field(form.FieldProps{Name: "q"}, form.SearchInput{Endpoint: "/api/search", MinChars: 2})

	out := render(t, newRenderer(t), f)
	assertContains(t, out,
		`<textarea id="fk-bio" name="bio"`, `rows="4"`, `maxlength="200"`, `>Hello &lt;world&gt;</textarea>`,
		`<option value="">Choose a plan</option>`, `<option value="pro" selected>Pro</option>`,
		`name="tags[]" value="go"`, `value="go" class="h-4 w-4`, `id="fk-tags-1" name="tags[]" value="rust" class="h-4 w-4 rounded border-gray-300 text-blue-600 focus:ring-blue-500">`,
		`role="switch" aria-checked="true"`, `<span>I agree</span>`,
		`data-formkit-otp id="fk-code" data-length="4"`, `<input type="hidden" name="code" value="123">`, `aria-label="Digit 4 of 4"`,
		`data-cooldown="30"`,
		`<option value="+44" selected>GB +44</option>`, `value="7700 900123"`,
		`<input type="date" id="fk-birthday" name="birthday"`, `value="2026-10-05"`, `max="2026-10-20"`,
		`data-date="2026-10-05" aria-pressed="true"`, `data-date="2026-10-21" disabled`, `<th scope="col" class="py-1 font-medium text-gray-500">Mo</th>`,
		`<input type="time" id="fk-alarm" name="alarm"`, `value="19:30"`, `step="900"`,
		`data-formkit-dropzone for="fk-avatar" data-max-size="1024"`, `accept="image/png,image/jpeg"`, `class="sr-only"`,
		`<input type="search" id="fk-q" name="q"`, `data-formkit-search="/api/search"`, `data-min-chars="2"`,
		`<link rel="stylesheet" href="/formkit/assets/formkit-calendar.css">`,
		`<script src="/formkit/assets/formkit-otp.js" defer></script>`,
		`<script src="/formkit/assets/formkit-search.js" defer></script>`,
	)
	if strings.Count(out, `aria-label="Digit`) != 4 {
		t.Fatalf("expected 4 otp cells")
	}
}

func TestRender_VisibleWhen(t *testing.T) {
	f := form.New(config.NewStore(), form.WithValues(map[string]any{"plan": "free"}))
	f.Field(form.FieldProps{Name: "plan"}, form.DropdownInput{Choices: []form.Choice{{Value: "free"}, {Value: "pro"}}})
	f.Field(form.FieldProps{Name: "seats", VisibleWhen: `plan == "pro"`}, form.TextInput{Type: "number"})
	f.Field(form.FieldProps{Name: "coupon", VisibleWhen: `plan != "pro"`}, form.TextInput{})

	out := render(t, newRenderer(t), f)
	assertContains(t, out,
		`data-field="seats" data-status="default" data-visible-when="plan == &#34;pro&#34;" hidden>`,
		`data-field="coupon" data-status="default" data-visible-when="plan != &#34;pro&#34;">`,
	)
}

func TestRender_ComponentOverride(t *testing.T) {
	registry := components.New()
	registry.MustRegister(components.Descriptor{
		Kind: form.KindText,
		Renderer: func(buf *strings.Builder, field form.FieldView) error {
			buf.WriteString(`<x-text name="` + field.Name + `"></x-text>`)
			return nil
		},
	})

	f := form.New(nil)
	f.Field(form.FieldProps{Name: "title"}, form.TextInput{})
	f.Field(form.FieldProps{Name: "code"}, form.OTPInput{})

	out := render(t, newRenderer(t, WithComponents(registry), WithAssets(false)), f)
	assertContains(t, out, `<x-text name="title"></x-text>`, `data-length="6"`)
	assertNotContains(t, out, "<script")
}

func TestRender_LabelPositionsAndBareInput(t *testing.T) {
	store := config.NewStore()
	store.Configure(config.Config{Label: &config.Label{Position: config.Ptr(form.LabelFloating)}})

	f := form.New(store)
	f.Field(form.FieldProps{Name: "city"}, form.TextInput{})
	f.Input("token", form.TextInput{Type: "password"}, form.InputProps{ClassName: "font-mono"})

	out := render(t, newRenderer(t), f)
	control := strings.Index(out, `<input type="text" id="fk-city"`)
	label := strings.Index(out, `<label for="fk-city"`)
	if control < 0 || label < control {
		t.Fatalf("floating label should follow the control\n%s", out)
	}
	assertContains(t, out, `<input type="password" id="fk-token" name="token"`, "font-mono")
	assertNotContains(t, out, `data-field="token"`)
}

func TestRender_ButtonStates(t *testing.T) {
	store := config.NewStore()
	store.Configure(config.Config{Button: &config.Button{LoadingText: config.Ptr("Saving")}})

	f := form.New(store)
	f.Button(form.ButtonProps{
		Label: "Next",
		Icon:  `<svg viewBox="0 0 20 20" onclick="x()"><path d="M0 0"/></svg>`,
		Style: style.Preset{FullWidth: config.Ptr(true)},
	})
	f.Button(form.ButtonProps{Label: "Save", Loading: true})

	out := render(t, newRenderer(t), f)
	assertContains(t, out, `<svg`, `<span>Next</span>`, `w-full`, `aria-busy="true"`, `<span>Saving</span>`)
	assertNotContains(t, out, "onclick")
}

func TestRender_Errors(t *testing.T) {
	r := newRenderer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, form.New(nil)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	f := form.New(nil)
	f.Field(form.FieldProps{Name: "missing"}, nil)
	if _, err := r.Render(context.Background(), f); err == nil {
		t.Fatalf("expected error for field without input")
	}
	if _, err := r.Render(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil form")
	}
}
