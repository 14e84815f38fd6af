// Package components provides optional built-in components for the template
// engine. Components return HTML fragments substituted verbatim, so each one
// here either sanitizes or escapes everything it emits.
package components

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-stache/pkg/engine"
)

// Component names installed by Register.
const (
	NameSafeHTML = "SafeHTML"
	NameIcon     = "Icon"
	NameLink     = "Link"
)

// Register installs the built-in components on the engine. Existing
// registrations under the same names are overwritten.
func Register(e *engine.Engine) {
	e.RegisterComponent(NameSafeHTML, SafeHTML)
	e.RegisterComponent(NameIcon, Icon)
	e.RegisterComponent(NameLink, Link)
}

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// SafeHTML renders the "value" argument through a user-generated-content
// sanitization policy, allowing common formatting markup while stripping
// scripts and event handlers.
//
//	{{component:SafeHTML value=article.body}}
func SafeHTML(args map[string]any, _ *engine.Context) string {
	raw := stringArg(args, "value")
	if raw == "" {
		return ""
	}
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy.Sanitize(raw)
}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// Icon sanitizes inline SVG markup from the "markup" argument down to a
// strict allow-list of SVG elements and presentation attributes.
//
//	{{component:Icon markup=item.icon}}
func Icon(args map[string]any, _ *engine.Context) string {
	raw := strings.TrimSpace(stringArg(args, "markup"))
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(raw))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "use", "clipPath",
		)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		policy.AllowAttrs("href", "xlink:href", "clip-path").OnElements("use")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}

		policy.AllowAttrs("id", "clipPathUnits").OnElements("clipPath")
		policy.AllowAttrs("id").OnElements("defs")
		policy.AllowAttrs("id").OnElements("g")

		iconPolicy = policy
	})
	return iconPolicy
}

// Link builds an escaped anchor tag from "href", "text", and optional
// "class" and "external" arguments. External links open in a new tab with
// rel protections applied.
//
//	{{component:Link href=resource.url text=resource.title external=true}}
func Link(args map[string]any, _ *engine.Context) string {
	href := stringArg(args, "href")
	if href == "" {
		return ""
	}
	text := stringArg(args, "text")
	if text == "" {
		text = href
	}

	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(html.EscapeString(href))
	sb.WriteString(`"`)
	if class := stringArg(args, "class"); class != "" {
		sb.WriteString(` class="`)
		sb.WriteString(html.EscapeString(class))
		sb.WriteString(`"`)
	}
	if external, _ := args["external"].(bool); external {
		sb.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(html.EscapeString(text))
	sb.WriteString(`</a>`)
	return sb.String()
}

func stringArg(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
