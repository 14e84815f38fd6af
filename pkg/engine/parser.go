package engine

import (
	"strings"
)

// Issue describes a malformed construct found while parsing a template.
// Issues never abort rendering; the offending marker degrades to an empty
// substitution and the rest of the template renders normally.
type Issue struct {
	Pos     int    // byte offset of the marker in the template
	Marker  string // raw marker text including delimiters
	Message string
}

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// parse tokenizes the template into tags and literal text, then assembles the
// block structure. It never fails: unclosed blocks are reported as issues and
// their bodies spliced into the parent, stray closers are dropped, and an
// opening delimiter without a matching close stays literal text.
func parse(input string) ([]node, []Issue) {
	p := &parser{}
	p.run(input)
	return p.finish()
}

type parser struct {
	stack  []*blockFrame
	top    []node
	issues []Issue
}

// blockFrame is an open #if or #each whose closer has not been seen yet.
type blockFrame struct {
	kind   string // "if" or "each"
	expr   string
	pos    int
	marker string
	body   []node
}

func (p *parser) run(input string) {
	pos := 0
	for {
		rel := strings.Index(input[pos:], openDelim)
		if rel < 0 {
			p.text(input[pos:])
			return
		}
		start := pos + rel
		p.text(input[pos:start])

		end := strings.Index(input[start+len(openDelim):], closeDelim)
		if end < 0 {
			// no closing delimiter anywhere ahead; the rest is literal
			p.text(input[start:])
			return
		}
		end = start + len(openDelim) + end
		marker := input[start : end+len(closeDelim)]
		p.tag(strings.TrimSpace(input[start+len(openDelim):end]), start, marker)
		pos = end + len(closeDelim)
	}
}

// tag classifies a single {{...}} marker and updates the tree.
func (p *parser) tag(content string, pos int, marker string) {
	switch {
	case content == "/if":
		p.closeBlock("if", pos, marker)
	case content == "/each":
		p.closeBlock("each", pos, marker)
	case strings.HasPrefix(content, "#if") && hasBlockExpr(content, "#if"):
		p.openBlock("if", strings.TrimSpace(content[len("#if"):]), pos, marker)
	case strings.HasPrefix(content, "#each") && hasBlockExpr(content, "#each"):
		p.openBlock("each", strings.TrimSpace(content[len("#each"):]), pos, marker)
	case strings.HasPrefix(content, "component:"):
		p.component(strings.TrimPrefix(content, "component:"))
	default:
		p.variable(content)
	}
}

// hasBlockExpr reports whether a #if/#each marker carries an expression after
// the keyword. A bare {{#if}} falls through to variable handling, where it
// resolves to empty like any other unknown reference.
func hasBlockExpr(content, keyword string) bool {
	rest := content[len(keyword):]
	if rest == "" {
		return false
	}
	switch rest[0] {
	case ' ', '\t', '\n', '\r':
	default:
		return false
	}
	return strings.TrimSpace(rest) != ""
}

func (p *parser) openBlock(kind, expr string, pos int, marker string) {
	p.stack = append(p.stack, &blockFrame{kind: kind, expr: expr, pos: pos, marker: marker})
}

func (p *parser) closeBlock(kind string, pos int, marker string) {
	if len(p.stack) == 0 || p.stack[len(p.stack)-1].kind != kind {
		p.issues = append(p.issues, Issue{
			Pos:     pos,
			Marker:  marker,
			Message: "close marker without matching open block",
		})
		return
	}
	frame := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	var block node
	if kind == "if" {
		block = ifNode{expr: frame.expr, body: frame.body}
	} else {
		block = eachNode{path: frame.expr, body: frame.body}
	}
	p.append(block)
}

func (p *parser) component(content string) {
	name := content
	rest := ""
	for i := 0; i < len(content); i++ {
		if content[i] == ' ' || content[i] == '\t' || content[i] == '\n' || content[i] == '\r' {
			name = content[:i]
			rest = content[i+1:]
			break
		}
	}
	p.append(componentNode{name: name, kwargs: parseKwargs(rest)})
}

func (p *parser) variable(content string) {
	tokens := splitTokens(content)
	switch len(tokens) {
	case 0:
		// {{ }} resolves to nothing
		p.append(varNode{raw: ""})
	case 1:
		p.append(varNode{raw: tokens[0]})
	default:
		args := make([]argument, 0, len(tokens)-1)
		for _, token := range tokens[1:] {
			args = append(args, classifyArg(token))
		}
		p.append(varNode{raw: content, helper: tokens[0], args: args})
	}
}

func (p *parser) text(text string) {
	if text == "" {
		return
	}
	p.append(textNode{text: text})
}

func (p *parser) append(n node) {
	if len(p.stack) > 0 {
		frame := p.stack[len(p.stack)-1]
		frame.body = append(frame.body, n)
		return
	}
	p.top = append(p.top, n)
}

// finish unwinds any blocks left open at end of input. The open marker is
// dropped and its body re-parented, matching the degradation the regex-based
// pipeline exhibits for unmatched markers.
func (p *parser) finish() ([]node, []Issue) {
	for len(p.stack) > 0 {
		frame := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		p.issues = append(p.issues, Issue{
			Pos:     frame.pos,
			Marker:  frame.marker,
			Message: "block is never closed",
		})
		p.appendAll(frame.body)
	}
	return p.top, p.issues
}

func (p *parser) appendAll(nodes []node) {
	for _, n := range nodes {
		p.append(n)
	}
}
