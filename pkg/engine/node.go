package engine

// Parse tree nodes. The template text is tokenized once into a flat sequence
// of tags, then assembled into a tree so block bodies can be evaluated
// recursively without rescanning the raw text.

type node interface {
	nodeKind() string
}

// textNode holds literal template text emitted verbatim.
type textNode struct {
	text string
}

// varNode is a {{...}} interpolation. When helper is empty the raw expression
// is a dotted path; otherwise helper names a registered helper and args carry
// its classified positional arguments.
type varNode struct {
	raw    string
	helper string
	args   []argument
}

// ifNode is a {{#if expr}}...{{/if}} block. The expression is a dotted path
// tested for truthiness.
type ifNode struct {
	expr string
	body []node
}

// eachNode is a {{#each path}}...{{/each}} block iterating an array.
type eachNode struct {
	path string
	body []node
}

// componentNode is a {{component:Name key=value ...}} invocation.
type componentNode struct {
	name   string
	kwargs []kwarg
}

type kwarg struct {
	key string
	arg argument
}

func (textNode) nodeKind() string      { return "text" }
func (varNode) nodeKind() string       { return "var" }
func (ifNode) nodeKind() string        { return "if" }
func (eachNode) nodeKind() string      { return "each" }
func (componentNode) nodeKind() string { return "component" }
