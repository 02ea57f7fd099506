package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/responsive"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const fixture = "testdata/admin.yaml"

var ignoreResponsive = cmpopts.IgnoreUnexported(responsive.Value[int]{}, responsive.Value[string]{})

func loadOperations(t *testing.T) map[string]Operation {
	t.Helper()
	doc, err := NewLoader().Load(context.Background(), SourceFromFile(fixture))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ops, err := Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ops
}

func TestParse_Operations(t *testing.T) {
	ops := loadOperations(t)

	want := []string{
		"createChannel", "createCourse", "createLesson", "createLevel", "createOption",
		"createQuestion", "createQuiz", "deleteCourse", "moderatePost", "updateCourse",
	}
	if diff := cmp.Diff(want, OperationIDs(ops)); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	update := ops["updateCourse"]
	if update.Method != "PUT" || update.Path != "/courses/{id}" {
		t.Fatalf("updateCourse: got %s %s", update.Method, update.Path)
	}
	if ops["deleteCourse"].RequestBody.HasProperties() {
		t.Fatalf("deleteCourse should have no request body")
	}
	if got := ops["createCourse"].Extensions["x-formkit-submit"]; got != "Create course" {
		t.Fatalf("operation extension: want %q, got %v", "Create course", got)
	}

	lesson := ops["createLesson"].RequestBody
	if lesson.Type != "object" {
		t.Fatalf("allOf type: want %q, got %q", "object", lesson.Type)
	}
	if diff := cmp.Diff([]string{"title", "course", "video"}, lesson.Required); diff != "" {
		t.Fatalf("allOf required mismatch (-want +got):\n%s", diff)
	}
	if _, ok := lesson.Properties["createdAt"]; !ok {
		t.Fatalf("allOf properties should include createdAt")
	}
	if maxLen := lesson.Properties["title"].MaxLength; maxLen == nil || *maxLen != 120 {
		t.Fatalf("maxLength: want 120, got %v", maxLen)
	}
}

func TestParse_Errors(t *testing.T) {
	src := SourceFromFS("doc.yaml")
	empty := MustNewDocument(src, []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n"))
	if _, err := Parse(context.Background(), empty); err == nil {
		t.Fatalf("expected error for document without paths")
	}
	if _, err := Parse(context.Background(), MustNewDocument(src, []byte("{"))); err == nil {
		t.Fatalf("expected error for malformed document")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Parse(ctx, empty); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestBuilder_CourseDefinition(t *testing.T) {
	ops := loadOperations(t)
	def, err := NewBuilder().Definition(ops["createCourse"])
	if err != nil {
		t.Fatalf("definition: %v", err)
	}

	want := form.Definition{
		ID:     "createCourse",
		Action: "/courses",
		Method: "POST",
		Title:  "Create course",
		Fields: []form.FieldDefinition{
			{
				FieldProps: form.FieldProps{Name: "title", Label: "Course title", Required: true},
				Input:      form.InputDefinition{Input: form.TextInput{MinLength: 3, MaxLength: 120}},
			},
			{
				FieldProps: form.FieldProps{Name: "level", Required: true},
				Input: form.InputDefinition{Input: form.DropdownInput{Choices: []form.Choice{
					{Value: "beginner", Label: "Beginner"},
					{Value: "intermediate", Label: "Intermediate"},
					{Value: "advanced", Label: "Advanced"},
				}}},
			},
			{
				FieldProps: form.FieldProps{Name: "cover"},
				Input:      form.InputDefinition{Input: form.FileInput{Accept: []string{"image/png", "image/jpeg"}, DropZone: true}},
			},
			{
				FieldProps: form.FieldProps{Name: "published", Label: "Published"},
				Input:      form.InputDefinition{Input: form.CheckboxInput{}},
			},
			{
				FieldProps: form.FieldProps{Name: "summary", Helper: "Shown on the course card."},
				Input:      form.InputDefinition{Input: form.TextInput{Multiline: true, Rows: 4}},
			},
		},
		Buttons: []form.ButtonProps{{Label: "Create course", Type: "submit"}},
	}
	if diff := cmp.Diff(want, def, ignoreResponsive); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}

	if got := Defaults(ops["createCourse"].RequestBody); got["level"] != "beginner" {
		t.Fatalf("defaults: want level %q, got %v", "beginner", got)
	}
}

func TestBuilder_InputKinds(t *testing.T) {
	ops := loadOperations(t)
	defs, err := NewBuilder().Definitions(ops)
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}
	if _, ok := defs["deleteCourse"]; ok {
		t.Fatalf("operations without a body should be skipped")
	}
	if len(defs) != 9 {
		t.Fatalf("definitions: want 9, got %d", len(defs))
	}

	kinds := func(def form.Definition) map[string]form.Kind {
		out := map[string]form.Kind{}
		for _, field := range def.Fields {
			out[field.Name] = field.Input.Input.Kind()
		}
		return out
	}

	cases := []struct {
		operation string
		want      map[string]form.Kind
	}{
		{"createLesson", map[string]form.Kind{
			"title": form.KindText, "course": form.KindSearch, "video": form.KindFile,
			"content": form.KindText, "publishAt": form.KindDate, "startsAt": form.KindTime,
		}},
		{"createQuiz", map[string]form.Kind{
			"title": form.KindText, "lesson": form.KindSearch, "passingScore": form.KindText, "shuffle": form.KindCheckbox,
		}},
		{"moderatePost", map[string]form.Kind{
			"status": form.KindDropdown, "reasons": form.KindCheckbox, "note": form.KindText,
		}},
		{"createChannel", map[string]form.Kind{
			"name": form.KindText, "slug": form.KindText, "owner.email": form.KindText, "owner.phone": form.KindPhone,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.operation, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, kinds(defs[tc.operation])); diff != "" {
				t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}

	lesson := defs["createLesson"].Fields
	if lesson[0].Name != "title" || lesson[1].Name != "course" || lesson[2].Name != "video" {
		t.Fatalf("required fields should lead in listed order, got %q %q %q", lesson[0].Name, lesson[1].Name, lesson[2].Name)
	}
	video := lesson[2].Input.Input.(form.FileInput)
	if diff := cmp.Diff(form.FileInput{Accept: []string{"video/mp4", "video/webm"}, DropZone: true, MaxSize: 52428800}, video); diff != "" {
		t.Fatalf("video input mismatch (-want +got):\n%s", diff)
	}
	for _, field := range lesson {
		switch input := field.Input.Input.(type) {
		case form.DateInput:
			if !input.ShowCalendar || !input.Min.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("date input: got %+v", input)
			}
		case form.TimeInput:
			if input.Step != 15 {
				t.Fatalf("time step: want 15, got %d", input.Step)
			}
		case form.SearchInput:
			if input.Endpoint != "/api/courses/search" || input.MinChars != 2 {
				t.Fatalf("search input: got %+v", input)
			}
		}
	}

	post := defs["moderatePost"]
	if post.Method != "PATCH" || post.Fields[len(post.Fields)-1].Name != "note" {
		t.Fatalf("moderatePost: method %q, last field %q", post.Method, post.Fields[len(post.Fields)-1].Name)
	}
	if post.ID != "moderatePost" || post.Buttons[0].Label != DefaultSubmitLabel {
		t.Fatalf("moderatePost: id %q, button %q", post.ID, post.Buttons[0].Label)
	}

	var names []string
	for _, field := range defs["createChannel"].Fields {
		names = append(names, field.Name)
		switch input := field.Input.Input.(type) {
		case form.TextInput:
			if field.Name == "owner.email" && input.Type != "email" {
				t.Fatalf("owner.email type: want %q, got %q", "email", input.Type)
			}
		case form.PhoneInput:
			if input.DefaultCountry != "GB" {
				t.Fatalf("owner.phone country: want %q, got %q", "GB", input.DefaultCountry)
			}
		}
	}
	if diff := cmp.Diff([]string{"name", "owner.email", "owner.phone", "slug"}, names); diff != "" {
		t.Fatalf("channel field order mismatch (-want +got):\n%s", diff)
	}

	quiz := defs["createQuiz"]
	for _, field := range quiz.Fields {
		if field.Name == "shuffle" {
			if diff := cmp.Diff(form.CheckboxInput{Text: "Shuffle questions", Toggle: true}, field.Input.Input); diff != "" {
				t.Fatalf("shuffle input mismatch (-want +got):\n%s", diff)
			}
		}
		if field.Name == "passingScore" {
			if got := field.Input.Input.(form.TextInput).Type; got != "number" {
				t.Fatalf("integer type: want %q, got %q", "number", got)
			}
		}
	}
	if got := Defaults(ops["createQuiz"].RequestBody); got["passingScore"] == nil || got["shuffle"] != true {
		t.Fatalf("quiz defaults: got %v", got)
	}
}

func TestBuilder_CustomWidgets(t *testing.T) {
	ops := loadOperations(t)
	registry := widgets.NewRegistry()
	registry.Register(form.KindOTP, 100, func(prop widgets.Property) bool { return prop.Name == "slug" })

	def, err := NewBuilder(WithWidgets(registry)).Definition(ops["createChannel"])
	if err != nil {
		t.Fatalf("definition: %v", err)
	}
	for _, field := range def.Fields {
		if field.Name == "slug" && field.Input.Input.Kind() != form.KindOTP {
			t.Fatalf("custom matcher: want %q, got %q", form.KindOTP, field.Input.Input.Kind())
		}
	}
}

func TestBuilder_Errors(t *testing.T) {
	b := NewBuilder()
	if _, err := b.Definition(Operation{ID: "list", Method: "POST", Path: "/x", RequestBody: Schema{Type: "array"}}); err == nil {
		t.Fatalf("expected error for array body")
	}
	if _, err := b.Definition(Operation{ID: "empty", Method: "POST", Path: "/x", RequestBody: Schema{Type: "object"}}); err == nil {
		t.Fatalf("expected error for body without properties")
	}
}

func TestLoader_Sources(t *testing.T) {
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	ctx := context.Background()

	fsLoader := NewLoader(WithFileSystem(fstest.MapFS{"specs/admin.yaml": {Data: data}}))
	doc, err := fsLoader.Load(ctx, SourceFromFS("specs/admin.yaml"))
	if err != nil {
		t.Fatalf("fs load: %v", err)
	}
	if doc.Location() != "specs/admin.yaml" || len(doc.Raw()) != len(data) {
		t.Fatalf("fs document: location %q, %d bytes", doc.Location(), len(doc.Raw()))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer server.Close()

	src, err := SourceFor(server.URL + "/openapi.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := NewLoader().Load(ctx, src); err == nil {
		t.Fatalf("expected error when http is disabled")
	}
	httpLoader := NewLoader(WithHTTPClient(server.Client()), WithHTTPFallback(time.Second))
	if _, err := httpLoader.Load(ctx, src); err != nil {
		t.Fatalf("http load: %v", err)
	}
	missing, _ := SourceFromURL(server.URL + "/missing.yaml")
	if _, err := httpLoader.Load(ctx, missing); err == nil {
		t.Fatalf("expected error for 404")
	}

	if _, err := SourceFor(""); err == nil {
		t.Fatalf("expected error for empty location")
	}
	if _, err := NewLoader().Load(ctx, SourceFromFS("x.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}
