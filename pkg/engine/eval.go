package engine

import (
	"html"
	"strings"

	"go.uber.org/zap"
)

// renderNodes walks the parse tree and writes the resolved output. Block
// bodies re-enter this function with a derived context, so conditionals
// inside loops inside conditionals resolve to arbitrary depth.
func (e *Engine) renderNodes(nodes []node, ctx *Context, out *strings.Builder) {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			out.WriteString(n.text)
		case ifNode:
			if isTruthy(ctx.Lookup(n.expr)) {
				e.renderNodes(n.body, ctx, out)
			}
		case eachNode:
			e.renderEach(n, ctx, out)
		case varNode:
			e.renderVar(n, ctx, out)
		case componentNode:
			e.renderComponent(n, ctx, out)
		}
	}
}

// renderEach expands a loop block. Each iteration gets a fresh child context
// carrying the element under "this" plus the positional bindings, so loop
// state never leaks between iterations or out of the block.
func (e *Engine) renderEach(n eachNode, ctx *Context, out *strings.Builder) {
	items := toSlice(ctx.Lookup(n.path))
	for i, item := range items {
		child := ctx.fork(map[string]any{
			"this":   item,
			"@index": i,
			"@first": i == 0,
			"@last":  i == len(items)-1,
			"@odd":   i%2 == 1,
			"@even":  i%2 == 0,
		})
		e.renderNodes(n.body, child, out)
	}
}

// renderVar handles plain path interpolation and helper invocation. Either
// way the resolved value is coerced to a string and HTML-escaped.
func (e *Engine) renderVar(n varNode, ctx *Context, out *strings.Builder) {
	if n.helper == "" {
		out.WriteString(html.EscapeString(stringify(ctx.Lookup(n.raw))))
		return
	}

	fn, ok := e.helpers.get(n.helper)
	if !ok {
		e.logger.Warn("unknown template helper",
			zap.String("helper", n.helper),
			zap.String("expression", n.raw))
		return
	}

	args := make([]any, 0, len(n.args))
	for _, arg := range n.args {
		args = append(args, arg.resolve(ctx))
	}

	value, ok := e.invokeHelper(n.helper, fn, args, ctx)
	if !ok {
		return
	}
	out.WriteString(html.EscapeString(stringify(value)))
}

// renderComponent expands a component invocation. Component output is
// substituted verbatim; components own their escaping.
func (e *Engine) renderComponent(n componentNode, ctx *Context, out *strings.Builder) {
	fn, ok := e.components.get(n.name)
	if !ok {
		e.logger.Warn("unknown template component", zap.String("component", n.name))
		return
	}

	args := make(map[string]any, len(n.kwargs))
	for _, kw := range n.kwargs {
		args[kw.key] = kw.arg.resolve(ctx)
	}

	fragment, ok := e.invokeComponent(n.name, fn, args, ctx)
	if !ok {
		return
	}
	out.WriteString(fragment)
}

// invokeHelper calls a helper, converting a panic into an empty substitution
// plus a diagnostic instead of aborting the render.
func (e *Engine) invokeHelper(name string, fn Helper, args []any, ctx *Context) (value any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("template helper panicked",
				zap.String("helper", name),
				zap.Any("panic", r))
			value, ok = nil, false
		}
	}()
	return fn(args, ctx), true
}

// invokeComponent mirrors invokeHelper for component functions.
func (e *Engine) invokeComponent(name string, fn Component, args map[string]any, ctx *Context) (fragment string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("template component panicked",
				zap.String("component", name),
				zap.Any("panic", r))
			fragment, ok = "", false
		}
	}()
	return fn(args, ctx), true
}
