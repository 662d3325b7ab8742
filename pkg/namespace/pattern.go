package namespace

import "strings"

// Kind is the syntactic form of a pattern.
type Kind int

// Pattern kinds.
const (
	KindExact Kind = iota
	KindPrefix
	KindScoped
	KindAll
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindPrefix:
		return "prefix"
	case KindScoped:
		return "scoped"
	case KindAll:
		return "all"
	default:
		return "unknown"
	}
}

// Classify reports the form of pattern.
func Classify(pattern string) Kind {
	switch {
	case pattern == Wildcard:
		return KindAll
	case strings.HasSuffix(pattern, Wildcard):
		return KindPrefix
	case isScoped(pattern):
		return KindScoped
	default:
		return KindExact
	}
}

func isScoped(pattern string) bool {
	return strings.Contains(pattern, "/{") && strings.Contains(pattern, "}")
}

// Expand returns the exact namespaces a scoped pattern stands for, so
// "@foo/{bar:baz}" becomes "@foo/bar" and "@foo/baz". Patterns that are not
// scoped return nil.
//
// Only the first two "/" separated segments take part: "@a/b/{c}" expands
// from scope "@a" and remainder "b".
func Expand(pattern string) []string {
	if !isScoped(pattern) {
		return nil
	}

	segments := strings.Split(pattern, "/")
	scope, packages := segments[0], segments[1]
	packages = strings.Replace(packages, "{", "", 1)
	packages = strings.Replace(packages, "}", "", 1)

	names := strings.Split(packages, ":")
	expanded := make([]string, 0, len(names))
	for _, name := range names {
		expanded = append(expanded, scope+"/"+name)
	}
	return expanded
}

// Match reports whether a single pattern matches namespace.
func Match(pattern, namespace string) bool {
	if pattern == namespace {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, Wildcard); ok && strings.HasPrefix(namespace, prefix) {
		return true
	}
	for _, candidate := range Expand(pattern) {
		if candidate == namespace {
			return true
		}
	}
	return false
}
