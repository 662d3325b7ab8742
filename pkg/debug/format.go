package debug

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// ANSI escape sequences used in emitter output.
const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiYellow  = "\x1b[33m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
	ansiGray    = "\x1b[90m"
)

// spewConfig renders composite values on a single line with stable map ordering.
var spewConfig = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// formatVerbs are the printf verbs a leading format string may use.
const formatVerbs = "vsdqxXfFeEgGtbocUT"

// Format renders args the way an emitter prints them.
//
// When the first value is a string followed by more values, it is read as a
// format: each known verb ("%s", "%d", "%v", ...) takes the next value, "%%" is
// a literal percent, and any other '%' is printed as is. Values not taken by a
// verb are appended. Values are joined with single spaces: strings as they are,
// errors and Stringers by their text, scalars in yellow and times in magenta
// when color is set, and everything else through go-spew.
func Format(color bool, args ...any) string {
	if len(args) == 0 {
		return ""
	}

	var b strings.Builder
	rest := args[1:]
	if format, ok := args[0].(string); ok && len(rest) > 0 {
		rest = expandFormat(&b, format, rest, color)
	} else {
		b.WriteString(inspect(args[0], color))
	}
	for _, arg := range rest {
		b.WriteByte(' ')
		b.WriteString(inspect(arg, color))
	}
	return b.String()
}

// expandFormat writes format to b with its verbs filled from args and returns
// the args no verb consumed. A verb without a value left stays as written.
func expandFormat(b *strings.Builder, format string, args []any, color bool) []any {
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}

		verb := format[i+1]
		switch {
		case verb == '%':
			b.WriteByte('%')
			i++
		case len(args) > 0 && strings.IndexByte(formatVerbs, verb) >= 0:
			if verb == 'v' {
				b.WriteString(inspect(args[0], color))
			} else {
				fmt.Fprintf(b, "%"+string(verb), args[0])
			}
			args = args[1:]
			i++
		default:
			b.WriteByte(c)
		}
	}
	return args
}

func inspect(v any, color bool) string {
	if v == nil {
		return paint(color, ansiBold, "<nil>")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return paint(color, ansiBold, "<nil>")
	}

	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	case time.Time:
		return paint(color, ansiMagenta, x.UTC().Format(time.RFC3339Nano))
	case fmt.Stringer:
		return x.String()
	}

	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return paint(color, ansiYellow, fmt.Sprint(v))
	case reflect.Pointer:
		// spew prints addresses for top-level pointers under %+v.
		return inspect(rv.Elem().Interface(), color)
	default:
		return spewConfig.Sprintf("%+v", v)
	}
}

func paint(color bool, code, s string) string {
	if !color {
		return s
	}
	return code + s + ansiReset
}
