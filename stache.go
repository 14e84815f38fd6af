// Package stache re-exports the template engine's primary entry points so
// most callers only need a single import.
package stache

import (
	"github.com/goliatone/go-stache/pkg/engine"
)

// Engine drives the render pipeline and owns the template, helper, and
// component registries. See the engine package for the full API.
type Engine = engine.Engine

// Context is the per-render data scope handed to helpers and components.
type Context = engine.Context

// Helper is a named function callable from template expressions.
type Helper = engine.Helper

// Component is a named render function invoked by {{component:Name ...}}.
type Component = engine.Component

// Option configures an Engine during construction.
type Option = engine.Option

// New constructs an engine with the built-in helpers registered.
func New(opts ...Option) *Engine {
	return engine.New(opts...)
}
