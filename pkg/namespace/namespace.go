// Package namespace decides which debug namespaces are enabled.
//
// An allow-list is read from two sources: the DEBUG environment variable and
// a --debug command-line flag. Each source holds one of:
//
//	"", "false", "0"      nothing enabled
//	"*", "true", "1"      everything enabled
//	"[ns1, ns2, ...]"     a bracketed, comma-separated pattern list
//
// A pattern is an exact namespace ("foo"), a prefix wildcard ("foo:*") or a
// scoped brace expansion ("@scope/{a:b}"). None of the functions in this
// package return errors: malformed input simply matches nothing.
package namespace

import (
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	log "github.com/lucas-albers-lz4/nsdebug/pkg/log"
)

const (
	// Wildcard enables every namespace when it appears in an allowed set.
	Wildcard = "*"

	// EnvDebug is the environment variable holding the allow-list.
	EnvDebug = "DEBUG"

	// FlagDebug is the command-line flag holding the allow-list.
	FlagDebug = "--debug"
)

// Environment is the read-only view of environment variables the engine needs.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// OSEnvironment reads the process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is a fixed environment, mostly useful in tests.
type MapEnvironment map[string]string

// LookupEnv implements Environment.
func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Source bundles the external inputs an allowed set is computed from.
// A nil Env behaves like an empty environment.
type Source struct {
	Env  Environment
	Args []string
}

// DefaultSource returns the live process environment and arguments.
func DefaultSource() Source {
	var args []string
	if len(os.Args) > 1 {
		args = os.Args[1:]
	}
	return Source{Env: OSEnvironment{}, Args: args}
}

// ParsePatternList parses a bracketed list such as "[foo, bar:*]".
// Text without the surrounding brackets yields an empty list.
func ParsePatternList(text string) []string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		if text != "" {
			log.Debug("ignoring namespace list without brackets", "text", text)
		}
		return []string{}
	}

	inner := removeSpace(text[1 : len(text)-1])
	patterns := []string{}
	for _, p := range strings.Split(inner, ",") {
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// removeSpace drops whitespace runes from s. Every other byte, including
// bytes that are not valid UTF-8, is kept unchanged.
func removeSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// ParseSpec interprets the raw value of a single source.
func ParseSpec(text string) []string {
	switch strings.TrimSpace(text) {
	case "", "false", "0":
		return []string{}
	case Wildcard, "true", "1":
		return []string{Wildcard}
	default:
		return ParsePatternList(text)
	}
}

// FromEnvironment reads the allow-list from DEBUG. An unset variable counts as empty.
func FromEnvironment(env Environment) []string {
	if env == nil {
		return ParseSpec("")
	}
	text, _ := env.LookupEnv(EnvDebug)
	return ParseSpec(text)
}

// FromArgs reads the allow-list from the first argument starting with --debug.
// A bare --debug enables everything.
func FromArgs(args []string) []string {
	i := slices.IndexFunc(args, func(arg string) bool {
		return strings.HasPrefix(arg, FlagDebug)
	})
	if i < 0 {
		return ParseSpec("")
	}

	arg := args[i]
	if arg == FlagDebug {
		return []string{Wildcard}
	}
	return ParseSpec(strings.Replace(arg, FlagDebug+"=", "", 1))
}

// Allowed merges the environment and argument allow-lists of src.
// Environment patterns come first and duplicates keep their first position.
// If any pattern is the wildcard the result is just the wildcard.
func Allowed(src Source) []string {
	merged := append(FromEnvironment(src.Env), FromArgs(src.Args)...)
	if len(merged) == 0 {
		return []string{}
	}
	if slices.Contains(merged, Wildcard) {
		return []string{Wildcard}
	}

	seen := make(map[string]struct{}, len(merged))
	allowed := make([]string, 0, len(merged))
	for _, p := range merged {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		allowed = append(allowed, p)
	}
	return allowed
}

// IsAllowed reports whether namespace is matched by any pattern in allowed.
func IsAllowed(allowed []string, namespace string) bool {
	_, ok := FirstMatch(allowed, namespace)
	return ok
}

// FirstMatch returns the pattern of allowed that enables namespace.
// The wildcard wins wherever it appears in the set.
func FirstMatch(allowed []string, namespace string) (string, bool) {
	if slices.Contains(allowed, Wildcard) {
		return Wildcard, true
	}
	for _, pattern := range allowed {
		if Match(pattern, namespace) {
			return pattern, true
		}
	}
	return "", false
}
