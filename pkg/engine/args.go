package engine

import (
	"strconv"
	"strings"
	"unicode"
)

// Helper and component argument tokens are classified once at parse time into
// one of four shapes: quoted string literal, numeric literal, boolean
// literal, or a dotted path resolved against the context at render time.

type argKind int

const (
	argString argKind = iota
	argNumber
	argBool
	argPath
)

type argument struct {
	kind argKind
	str  string
	num  float64
	flag bool
	path string
}

// classifyArg maps a raw token to its argument shape. Quoting wins over
// numeric and boolean readings, which win over path resolution.
func classifyArg(token string) argument {
	if len(token) >= 2 {
		first := token[0]
		last := token[len(token)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return argument{kind: argString, str: token[1 : len(token)-1]}
		}
	}
	if num, err := strconv.ParseFloat(token, 64); err == nil {
		return argument{kind: argNumber, num: num}
	}
	switch token {
	case "true":
		return argument{kind: argBool, flag: true}
	case "false":
		return argument{kind: argBool, flag: false}
	}
	return argument{kind: argPath, path: token}
}

// resolve produces the runtime value for an argument.
func (a argument) resolve(ctx *Context) any {
	switch a.kind {
	case argString:
		return a.str
	case argNumber:
		return a.num
	case argBool:
		return a.flag
	default:
		return ctx.Lookup(a.path)
	}
}

// splitTokens splits a helper expression on whitespace while keeping quoted
// literals (which may contain spaces) intact as single tokens.
func splitTokens(input string) []string {
	var tokens []string
	var current strings.Builder
	var quote byte

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case quote != 0:
			current.WriteByte(ch)
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
			current.WriteByte(ch)
		case unicode.IsSpace(rune(ch)):
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

// parseKwargs reads key=value pairs left to right. Values use the same
// classification as positional helper arguments; quoted values may contain
// spaces. Tokens without an equals sign are ignored.
func parseKwargs(input string) []kwarg {
	var kwargs []kwarg
	for _, token := range splitTokens(input) {
		eq := strings.IndexByte(token, '=')
		if eq <= 0 {
			continue
		}
		key := token[:eq]
		kwargs = append(kwargs, kwarg{key: key, arg: classifyArg(token[eq+1:])})
	}
	return kwargs
}
