package engine

import (
	"reflect"
	"strings"
)

// Context carries the data a template is rendered against. It combines the
// caller's data object with the render options and a reference back to the
// owning engine so helpers and components can reach the registries.
//
// Contexts are read-only from the pipeline's perspective: loop iteration
// derives a child context via fork rather than mutating the parent, so
// sibling blocks never observe each other's loop bindings.
type Context struct {
	engine  *Engine
	data    map[string]any
	options map[string]any
}

// Engine returns the engine that created this context.
func (c *Context) Engine() *Engine { return c.engine }

// Options returns the per-render options supplied to Render. The same values
// are reachable from templates under the reserved $options key.
func (c *Context) Options() map[string]any {
	if c.options == nil {
		return map[string]any{}
	}
	return c.options
}

// fork derives a child context with the supplied bindings layered over a
// shallow copy of the parent data. Used for loop scopes.
func (c *Context) fork(bindings map[string]any) *Context {
	data := make(map[string]any, len(c.data)+len(bindings))
	for key, value := range c.data {
		data[key] = value
	}
	for key, value := range bindings {
		data[key] = value
	}
	return &Context{engine: c.engine, data: data, options: c.options}
}

// Lookup resolves a dotted path against the context. It splits on ".", walks
// the data key by key, and returns nil as soon as an intermediate value is
// missing or nil. Array indices are not addressable through paths; loops
// expose positions via the @index binding instead.
//
// The reserved root segment $options resolves against the render options.
func (c *Context) Lookup(path string) any {
	if path == "" {
		return nil
	}
	segments := strings.Split(path, ".")

	var current any
	switch segments[0] {
	case "$options":
		current = c.options
		segments = segments[1:]
		if len(segments) == 0 {
			return c.options
		}
	default:
		current = c.data
	}

	for _, segment := range segments {
		current = lookupKey(current, segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// lookupKey reads a single key from a map or struct value. Unsupported
// shapes resolve to nil rather than erroring.
func lookupKey(value any, key string) any {
	switch v := value.(type) {
	case map[string]any:
		return v[key]
	case map[any]any:
		return v[key]
	case nil:
		return nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		entry := rv.MapIndex(reflect.ValueOf(key))
		if !entry.IsValid() {
			return nil
		}
		return entry.Interface()
	case reflect.Struct:
		field := rv.FieldByName(key)
		if !field.IsValid() || !field.CanInterface() {
			return nil
		}
		return field.Interface()
	default:
		return nil
	}
}
