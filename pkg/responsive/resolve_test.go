package responsive

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name  string
		value Value[string]
		want  string
	}{
		{name: "unset", value: Value[string]{}, want: "md"},
		{name: "scalar", value: Of("lg"), want: "lg"},
		{name: "base", value: At(map[Breakpoint]string{Base: "sm"}), want: "sm"},
		{name: "empty mapping", value: At(map[Breakpoint]string{}), want: "md"},
		{name: "mapping without base ignores viewport", value: At(map[Breakpoint]string{LG: "xl"}), want: "md"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Resolve(tc.value, "md"); got != tc.want {
				t.Fatalf("resolve: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveAt_CascadesDown(t *testing.T) {
	value := At(map[Breakpoint]int{Base: 1, MD: 2, XL: 4})

	cases := map[Breakpoint]int{
		Base: 1,
		SM:   1,
		MD:   2,
		LG:   2,
		XL:   4,
		XXL:  4,
	}
	for bp, want := range cases {
		if got := ResolveAt(value, bp, 0); got != want {
			t.Fatalf("resolve at %s: want %d, got %d", bp, want, got)
		}
	}

	if got := ResolveAt(At(map[Breakpoint]int{LG: 3}), SM, 9); got != 9 {
		t.Fatalf("expected fallback below first declared breakpoint, got %d", got)
	}
	if got := ResolveAt(Of(5), SM, 9); got != 5 {
		t.Fatalf("scalar should ignore breakpoint, got %d", got)
	}
}

func TestToClasses(t *testing.T) {
	cases := []struct {
		name   string
		value  Value[string]
		prefix string
		want   string
	}{
		{name: "scale token", value: Of("4"), prefix: "gap", want: "gap-4"},
		{name: "unit value", value: Of("1rem"), prefix: "gap", want: "gap-[1rem]"},
		{name: "fraction", value: Of("1/2"), prefix: "w", want: "w-1/2"},
		{name: "keyword", value: Of("px"), prefix: "gap", want: "gap-px"},
		{name: "calc", value: Of("calc(100% - 2rem)"), prefix: "w", want: "w-[calc(100%_-_2rem)]"},
		{name: "bare without prefix", value: Of("outline"), prefix: "", want: "outline"},
		{
			name:   "breakpoints in order",
			value:  At(map[Breakpoint]string{MD: "4", Base: "2"}),
			prefix: "gap",
			want:   "gap-2 md:gap-4",
		},
		{
			name:   "mixed units",
			value:  At(map[Breakpoint]string{Base: "2", XXL: "3rem"}),
			prefix: "gap",
			want:   "gap-2 2xl:gap-[3rem]",
		},
		{name: "unset", value: Value[string]{}, prefix: "gap", want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ToClasses(tc.value, tc.prefix); got != tc.want {
				t.Fatalf("to classes: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestColumnClasses(t *testing.T) {
	value := Of(1).With(MD, 2).With(LG, 3)
	if got := ColumnClasses(value); got != "grid-cols-1 md:grid-cols-2 lg:grid-cols-3" {
		t.Fatalf("unexpected column classes: %q", got)
	}
}

func TestValue_Merge(t *testing.T) {
	cases := []struct {
		name  string
		base  Value[string]
		patch Value[string]
		want  string
	}{
		{name: "unset patch", base: Of("2"), patch: Value[string]{}, want: "gap-2"},
		{name: "mappings combine", base: At(map[Breakpoint]string{Base: "2", MD: "4"}), patch: At(map[Breakpoint]string{MD: "6", LG: "8"}), want: "gap-2 md:gap-6 lg:gap-8"},
		{name: "scalar over mapping", base: At(map[Breakpoint]string{Base: "2"}), patch: Of("4"), want: "gap-4"},
		{name: "mapping over scalar", base: Of("2"), patch: At(map[Breakpoint]string{MD: "4"}), want: "md:gap-4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GapClasses(tc.base.Merge(tc.patch)); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}

	base := At(map[Breakpoint]string{Base: "2"})
	base.Merge(At(map[Breakpoint]string{MD: "4"}))
	if got := GapClasses(base); got != "gap-2" {
		t.Fatalf("merge must not mutate the receiver, got %q", got)
	}
}

func TestValue_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Gap     Value[string] `yaml:"gap"`
		Columns Value[int]    `yaml:"columns"`
	}
	input := "gap: 1rem\ncolumns:\n  base: 1\n  md: 2\n"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := GapClasses(doc.Gap); got != "gap-[1rem]" {
		t.Fatalf("gap: got %q", got)
	}
	if got := ColumnClasses(doc.Columns); got != "grid-cols-1 md:grid-cols-2" {
		t.Fatalf("columns: got %q", got)
	}
}

func TestValue_UnmarshalRejectsUnknownBreakpoint(t *testing.T) {
	var value Value[int]
	if err := yaml.Unmarshal([]byte("tablet: 2\n"), &value); err == nil {
		t.Fatalf("expected error for unknown breakpoint")
	}
}

func TestValue_JSON(t *testing.T) {
	var value Value[int]
	if err := json.Unmarshal([]byte(`{"base":1,"lg":4}`), &value); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !value.Equal(At(map[Breakpoint]int{Base: 1, LG: 4})) {
		t.Fatalf("unexpected value: %s", value)
	}

	payload, err := json.Marshal(Of(3))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != "3" {
		t.Fatalf("scalar json: got %s", payload)
	}
}
