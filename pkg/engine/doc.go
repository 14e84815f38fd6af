// Package engine implements a small mustache-style template engine with
// variable interpolation, conditional and loop blocks, named helper
// functions, and pluggable components.
//
// Templates are parsed into a node tree and evaluated by a tree-walking
// interpreter. Rendering never fails: unknown references, missing paths, and
// helper or component panics all degrade to an empty substitution at the
// smallest possible scope, reported through the engine's logger rather than
// returned as errors.
package engine
