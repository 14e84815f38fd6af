package engine

import (
	"math"
	"reflect"
	"strings"
	"time"
	"unicode"
)

// Built-in helper catalog, registered by New. Callers can override any entry
// by re-registering the name.

func registerBuiltins(e *Engine) {
	e.RegisterHelper("date", dateHelper)
	e.RegisterHelper("truncate", truncateHelper)
	e.RegisterHelper("join", joinHelper)
	e.RegisterHelper("upper", upperHelper)
	e.RegisterHelper("lower", lowerHelper)
	e.RegisterHelper("capitalize", capitalizeHelper)
	e.RegisterHelper("default", defaultHelper)
	e.RegisterHelper("add", arithmeticHelper(func(a, b float64) float64 { return a + b }))
	e.RegisterHelper("subtract", arithmeticHelper(func(a, b float64) float64 { return a - b }))
	e.RegisterHelper("multiply", arithmeticHelper(func(a, b float64) float64 { return a * b }))
	e.RegisterHelper("divide", arithmeticHelper(func(a, b float64) float64 { return a / b }))
	e.RegisterHelper("eq", func(args []any, _ *Context) any { return looseEqual(argAt(args, 0), argAt(args, 1)) })
	e.RegisterHelper("ne", func(args []any, _ *Context) any { return !looseEqual(argAt(args, 0), argAt(args, 1)) })
	e.RegisterHelper("gt", orderingHelper(func(a, b float64) bool { return a > b }))
	e.RegisterHelper("lt", orderingHelper(func(a, b float64) bool { return a < b }))
	e.RegisterHelper("gte", orderingHelper(func(a, b float64) bool { return a >= b }))
	e.RegisterHelper("lte", orderingHelper(func(a, b float64) bool { return a <= b }))
}

func argAt(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// datePresets are the named output formats accepted as the second argument
// to the date helper. The default preset is "long".
var datePresets = map[string]string{
	"short": "Jan 2, 2006",
	"long":  "January 2, 2006",
	"time":  "3:04 PM",
}

// dateLayouts are tried in order when the input value is a string.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// dateHelper formats a date value using a named preset. Values that do not
// parse as dates pass through unmodified.
func dateHelper(args []any, _ *Context) any {
	value := argAt(args, 0)
	layout := datePresets["long"]
	if preset, ok := datePresets[stringify(argAt(args, 1))]; ok {
		layout = preset
	}

	parsed, ok := parseDate(value)
	if !ok {
		return value
	}
	return parsed.Format(layout)
}

func parseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case int, int64, float64:
		epoch := toNumber(value)
		if math.IsNaN(epoch) || epoch <= 0 {
			return time.Time{}, false
		}
		// epoch milliseconds past ~2001 read as milliseconds, else seconds
		if epoch > 1e12 {
			return time.UnixMilli(int64(epoch)).UTC(), true
		}
		return time.Unix(int64(epoch), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// truncateHelper shortens text to length runes and appends a suffix. Falsy
// or already-short input passes through.
func truncateHelper(args []any, _ *Context) any {
	value := argAt(args, 0)
	if !isTruthy(value) {
		return value
	}
	text := stringify(value)

	length := 100
	if n := toNumber(argAt(args, 1)); !math.IsNaN(n) && n >= 0 {
		length = int(n)
	}
	suffix := "..."
	if len(args) > 2 {
		suffix = stringify(argAt(args, 2))
	}

	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + suffix
}

// joinHelper concatenates array elements with a separator. Non-arrays yield
// an empty string.
func joinHelper(args []any, _ *Context) any {
	items := toSlice(argAt(args, 0))
	if items == nil {
		return ""
	}
	separator := ", "
	if len(args) > 1 {
		separator = stringify(argAt(args, 1))
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = stringify(item)
	}
	return strings.Join(parts, separator)
}

func upperHelper(args []any, _ *Context) any {
	return strings.ToUpper(stringify(argAt(args, 0)))
}

func lowerHelper(args []any, _ *Context) any {
	return strings.ToLower(stringify(argAt(args, 0)))
}

// capitalizeHelper uppercases the first rune and leaves the rest untouched.
func capitalizeHelper(args []any, _ *Context) any {
	text := stringify(argAt(args, 0))
	if text == "" {
		return ""
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// defaultHelper substitutes a fallback for nil or empty-string values.
func defaultHelper(args []any, _ *Context) any {
	value := argAt(args, 0)
	if value == nil || value == "" {
		if len(args) > 1 {
			return argAt(args, 1)
		}
		return ""
	}
	return value
}

func arithmeticHelper(op func(a, b float64) float64) Helper {
	return func(args []any, _ *Context) any {
		return op(toNumber(argAt(args, 0)), toNumber(argAt(args, 1)))
	}
}

func orderingHelper(cmp func(a, b float64) bool) Helper {
	return func(args []any, _ *Context) any {
		a := toNumber(argAt(args, 0))
		b := toNumber(argAt(args, 1))
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return cmp(a, b)
	}
}

// looseEqual compares operands as given, bridging the int/float64 seam that
// YAML and JSON decoding introduces: two numeric values compare numerically,
// everything else by deep equality.
func looseEqual(a, b any) bool {
	if isNumeric(a) && isNumeric(b) {
		return toNumber(a) == toNumber(b)
	}
	return reflect.DeepEqual(a, b)
}
