package engine

import (
	"testing"
	"time"
)

// renderExpr is a shorthand for evaluating a single helper expression.
func renderExpr(t *testing.T, template string, data map[string]any) string {
	t.Helper()
	return New().Render(template, data, nil)
}

func TestDateHelper(t *testing.T) {
	cases := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{
			name:     "default preset is long",
			template: "{{date d}}",
			data:     map[string]any{"d": "2026-03-05"},
			want:     "March 5, 2026",
		},
		{
			name:     "short preset",
			template: `{{date d "short"}}`,
			data:     map[string]any{"d": "2026-03-05"},
			want:     "Mar 5, 2026",
		},
		{
			name:     "time preset",
			template: `{{date d "time"}}`,
			data:     map[string]any{"d": "2026-03-05T19:30:00"},
			want:     "7:30 PM",
		},
		{
			name:     "unknown preset falls back to long",
			template: `{{date d "huge"}}`,
			data:     map[string]any{"d": "2026-03-05"},
			want:     "March 5, 2026",
		},
		{
			name:     "unparseable passes through",
			template: "{{date d}}",
			data:     map[string]any{"d": "second tuesday"},
			want:     "second tuesday",
		},
		{
			name:     "time.Time value",
			template: `{{date d "short"}}`,
			data:     map[string]any{"d": time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)},
			want:     "Jan 9, 2026",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderExpr(t, tc.template, tc.data); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTruncateHelper(t *testing.T) {
	cases := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{
			name:     "shortens and appends suffix",
			template: "{{truncate text 5}}",
			data:     map[string]any{"text": "hello world"},
			want:     "hello...",
		},
		{
			name:     "custom suffix",
			template: `{{truncate text 5 "…"}}`,
			data:     map[string]any{"text": "hello world"},
			want:     "hello…",
		},
		{
			name:     "within length passes through",
			template: "{{truncate text 100}}",
			data:     map[string]any{"text": "short"},
			want:     "short",
		},
		{
			name:     "falsy passes through",
			template: "{{truncate text 5}}",
			data:     map[string]any{"text": ""},
			want:     "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderExpr(t, tc.template, tc.data); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestJoinHelper(t *testing.T) {
	data := map[string]any{
		"tags":   []any{"go", "templates", 3},
		"scalar": 12,
	}

	if got := renderExpr(t, "{{join tags}}", data); got != "go, templates, 3" {
		t.Fatalf("default separator, got %q", got)
	}
	if got := renderExpr(t, `{{join tags " | "}}`, data); got != "go | templates | 3" {
		t.Fatalf("custom separator, got %q", got)
	}
	if got := renderExpr(t, "{{join scalar}}", data); got != "" {
		t.Fatalf("non-array should join to empty, got %q", got)
	}
}

func TestCaseHelpers(t *testing.T) {
	data := map[string]any{"s": "hello World"}

	if got := renderExpr(t, "{{upper s}}", data); got != "HELLO WORLD" {
		t.Fatalf("upper, got %q", got)
	}
	if got := renderExpr(t, "{{lower s}}", data); got != "hello world" {
		t.Fatalf("lower, got %q", got)
	}
	if got := renderExpr(t, "{{capitalize s}}", data); got != "Hello World" {
		t.Fatalf("capitalize, got %q", got)
	}
}

func TestDefaultHelper(t *testing.T) {
	cases := []struct {
		name string
		data map[string]any
		want string
	}{
		{name: "nil uses fallback", data: map[string]any{}, want: "fallback"},
		{name: "empty string uses fallback", data: map[string]any{"v": ""}, want: "fallback"},
		{name: "zero is kept", data: map[string]any{"v": 0}, want: "0"},
		{name: "value is kept", data: map[string]any{"v": "set"}, want: "set"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderExpr(t, `{{default v "fallback"}}`, tc.data); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestArithmeticHelpers(t *testing.T) {
	cases := []struct {
		name     string
		template string
		want     string
	}{
		{name: "add", template: "{{add 2 3}}", want: "5"},
		{name: "subtract", template: "{{subtract 2 3}}", want: "-1"},
		{name: "multiply", template: "{{multiply 2.5 4}}", want: "10"},
		{name: "divide", template: "{{divide 9 2}}", want: "4.5"},
		{name: "divide by zero", template: "{{divide 9 0}}", want: "Infinity"},
		{name: "non-numeric operand", template: `{{add "a" 1}}`, want: "NaN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderExpr(t, tc.template, nil); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestComparisonHelpers(t *testing.T) {
	data := map[string]any{"count": 3, "ratio": 3.0, "label": "a"}

	cases := []struct {
		name     string
		template string
		want     string
	}{
		{name: "eq numeric across kinds", template: "{{eq count ratio}}", want: "true"},
		{name: "eq strings", template: `{{eq label "a"}}`, want: "true"},
		{name: "eq mismatch", template: `{{eq label "b"}}`, want: "false"},
		{name: "ne", template: `{{ne label "b"}}`, want: "true"},
		{name: "gt", template: "{{gt count 2}}", want: "true"},
		{name: "lt", template: "{{lt count 2}}", want: "false"},
		{name: "gte equal", template: "{{gte count 3}}", want: "true"},
		{name: "lte equal", template: "{{lte count 3}}", want: "true"},
		{name: "ordering with non-numeric is false", template: `{{gt label 1}}`, want: "false"},
		{name: "ordering coerces numeric strings", template: `{{gt "10" 2}}`, want: "true"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderExpr(t, tc.template, data); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}
