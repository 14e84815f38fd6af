package components

import (
	"strings"
	"testing"

	"github.com/goliatone/go-stache/pkg/engine"
)

func newEngine() *engine.Engine {
	eng := engine.New()
	Register(eng)
	return eng
}

func TestSafeHTML_StripsScripts(t *testing.T) {
	eng := newEngine()
	data := map[string]any{
		"body": `<p>Hello <strong>world</strong></p><script>alert(1)</script>`,
	}

	got := eng.Render("{{component:SafeHTML value=body}}", data, nil)
	if strings.Contains(got, "<script") {
		t.Fatalf("script element survived sanitization: %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("formatting markup should survive: %q", got)
	}
}

func TestSafeHTML_EmptyValue(t *testing.T) {
	eng := newEngine()
	if got := eng.Render("{{component:SafeHTML value=missing}}", nil, nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestIcon_KeepsAllowedSVG(t *testing.T) {
	eng := newEngine()
	data := map[string]any{
		"icon": `<svg viewBox="0 0 24 24"><path d="M0 0h24v24H0z"/></svg>`,
	}

	got := eng.Render("{{component:Icon markup=icon}}", data, nil)
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "<path") {
		t.Fatalf("allowed SVG elements stripped: %q", got)
	}
}

func TestIcon_DropsEventHandlers(t *testing.T) {
	eng := newEngine()
	data := map[string]any{
		"icon": `<svg onload="alert(1)"><path d="M0 0"/></svg><script>x</script>`,
	}

	got := eng.Render("{{component:Icon markup=icon}}", data, nil)
	if strings.Contains(got, "onload") || strings.Contains(got, "<script") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
}

func TestLink(t *testing.T) {
	eng := newEngine()
	data := map[string]any{
		"resource": map[string]any{
			"url":   "https://example.com/a?b=1&c=2",
			"title": `Docs <&>`,
		},
	}

	got := eng.Render(`{{component:Link href=resource.url text=resource.title class="res-link" external=true}}`, data, nil)

	if !strings.Contains(got, `href="https://example.com/a?b=1&amp;c=2"`) {
		t.Fatalf("href not escaped correctly: %q", got)
	}
	if !strings.Contains(got, "Docs &lt;&amp;&gt;") {
		t.Fatalf("text not escaped: %q", got)
	}
	if !strings.Contains(got, `class="res-link"`) {
		t.Fatalf("class missing: %q", got)
	}
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Fatalf("external handling missing: %q", got)
	}
}

func TestLink_DefaultsTextToHref(t *testing.T) {
	eng := newEngine()
	data := map[string]any{"url": "https://example.com"}

	got := eng.Render("{{component:Link href=url}}", data, nil)
	if got != `<a href="https://example.com">https://example.com</a>` {
		t.Fatalf("unexpected anchor: %q", got)
	}
}

func TestLink_MissingHref(t *testing.T) {
	eng := newEngine()
	if got := eng.Render("{{component:Link text=label}}", nil, nil); got != "" {
		t.Fatalf("expected empty output without href, got %q", got)
	}
}
