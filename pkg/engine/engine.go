package engine

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Helper is a named function callable from template expressions. It receives
// the resolved positional arguments plus the current context, and its return
// value is coerced to a string and HTML-escaped before substitution.
type Helper func(args []any, ctx *Context) any

// Component is a named render function invoked by {{component:Name ...}}
// markers. It receives the parsed keyword arguments plus the current context
// and returns an HTML fragment substituted verbatim, so components are
// responsible for escaping anything they interpolate.
type Component func(args map[string]any, ctx *Context) string

// Engine owns the template, helper, and component registries and drives the
// render pipeline. Construct one with New at startup and share it by
// reference; registries are expected to be populated once and read-mostly
// afterwards.
type Engine struct {
	logger     *zap.Logger
	templates  *registry[string]
	helpers    *registry[Helper]
	components *registry[Component]
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithLogger installs the logger used for render diagnostics. The default is
// a nop logger, so rendering stays silent unless the host opts in.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTemplates registers a batch of named templates.
func WithTemplates(templates map[string]string) Option {
	return func(e *Engine) {
		for name, template := range templates {
			e.templates.set(name, template)
		}
	}
}

// WithHelpers registers additional helpers, overriding built-ins on name
// collision.
func WithHelpers(helpers map[string]Helper) Option {
	return func(e *Engine) {
		for name, fn := range helpers {
			e.helpers.set(name, fn)
		}
	}
}

// WithComponents registers a batch of components.
func WithComponents(components map[string]Component) Option {
	return func(e *Engine) {
		for name, fn := range components {
			e.components.set(name, fn)
		}
	}
}

// New constructs an engine with the built-in helper set registered, then
// applies the supplied options in order.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:     zap.NewNop(),
		templates:  newRegistry[string](),
		helpers:    newRegistry[Helper](),
		components: newRegistry[Component](),
	}
	registerBuiltins(e)
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// RegisterTemplate stores a named template string for reuse. Registering an
// existing name overwrites it silently.
func (e *Engine) RegisterTemplate(name, template string) {
	e.templates.set(name, template)
}

// RegisterHelper stores a helper under the given name, overriding any
// built-in or previous registration with that name.
func (e *Engine) RegisterHelper(name string, fn Helper) {
	e.helpers.set(name, fn)
}

// RegisterComponent stores a component render function under the given name.
func (e *Engine) RegisterComponent(name string, fn Component) {
	e.components.set(name, fn)
}

// TemplateNames returns the sorted names of all registered templates.
func (e *Engine) TemplateNames() []string { return e.templates.names() }

// HelperNames returns the sorted names of all registered helpers.
func (e *Engine) HelperNames() []string { return e.helpers.names() }

// ComponentNames returns the sorted names of all registered components.
func (e *Engine) ComponentNames() []string { return e.components.names() }

// Render resolves templateOrName against the template registry, falling back
// to treating the argument as a literal template, and renders it against
// data. The options map is reachable from templates under $options and from
// helpers and components via Context.Options.
//
// Render never fails: malformed syntax, unknown references, missing paths,
// and helper or component panics all degrade to empty substitutions reported
// through the engine's logger.
func (e *Engine) Render(templateOrName string, data map[string]any, options map[string]any) string {
	source := e.resolveSource(templateOrName)

	nodes, issues := parse(source)
	for _, issue := range issues {
		e.logger.Warn("malformed template marker",
			zap.Int("pos", issue.Pos),
			zap.String("marker", issue.Marker),
			zap.String("detail", issue.Message))
	}

	if data == nil {
		data = map[string]any{}
	}
	ctx := &Context{engine: e, data: data, options: options}

	var out strings.Builder
	e.renderNodes(nodes, ctx, &out)
	return out.String()
}

// Check parses a template and reports malformed constructs without rendering
// it. A nil result means the template is structurally sound.
func (e *Engine) Check(templateOrName string) []Issue {
	_, issues := parse(e.resolveSource(templateOrName))
	return issues
}

// Vars returns the sorted unique dotted paths the template references:
// variable interpolations, block expressions, helper path arguments, and
// component path keyword values. Loop bindings (this, @index and friends)
// and reserved $-keys are excluded.
func (e *Engine) Vars(templateOrName string) []string {
	nodes, _ := parse(e.resolveSource(templateOrName))

	seen := map[string]struct{}{}
	collectVars(nodes, seen)

	out := make([]string, 0, len(seen))
	for path := range seen {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func (e *Engine) resolveSource(templateOrName string) string {
	if template, ok := e.templates.get(templateOrName); ok {
		return template
	}
	return templateOrName
}

func collectVars(nodes []node, seen map[string]struct{}) {
	record := func(path string) {
		if path == "" || strings.HasPrefix(path, "@") || strings.HasPrefix(path, "$") {
			return
		}
		if path == "this" || strings.HasPrefix(path, "this.") {
			return
		}
		seen[path] = struct{}{}
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case ifNode:
			record(n.expr)
			collectVars(n.body, seen)
		case eachNode:
			record(n.path)
			collectVars(n.body, seen)
		case varNode:
			if n.helper == "" {
				record(n.raw)
				continue
			}
			for _, arg := range n.args {
				if arg.kind == argPath {
					record(arg.path)
				}
			}
		case componentNode:
			for _, kw := range n.kwargs {
				if kw.arg.kind == argPath {
					record(kw.arg.path)
				}
			}
		}
	}
}
