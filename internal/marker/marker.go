package marker

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Kind identifies a marker directive.
type Kind string

// InjectLogin marks the struct field whose owning type is the login target.
const InjectLogin Kind = "bbgo:injectlogin"

// MinGoVersion is the oldest language version the generated code targets.
const MinGoVersion = "go1.21"

// Directive returns the comment form of the marker (e.g. "//bbgo:injectlogin").
func (k Kind) Directive() string {
	return "//" + string(k)
}

// Registry lists the markers the generator reacts to.
type Registry struct {
	kinds []Kind
}

var defaultRegistry = &Registry{kinds: []Kind{InjectLogin}}

// Default returns the process-wide registry. It must not be modified.
func Default() *Registry {
	return defaultRegistry
}

// Kinds returns the registered markers.
func (r *Registry) Kinds() []Kind {
	return append([]Kind(nil), r.kinds...)
}

// Supported reports whether k is registered.
func (r *Registry) Supported(k Kind) bool {
	for _, known := range r.kinds {
		if known == k {
			return true
		}
	}

	return false
}

// Match parses a comment and returns the registered marker it carries.
//
// Supported formats:
//   - //bbgo:injectlogin
//   - // bbgo:injectlogin
//   - // +bbgo:injectlogin
//   - //bbgo:injectlogin - reason
func (r *Registry) Match(text string) (Kind, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "+")

	for _, k := range r.kinds {
		if !strings.HasPrefix(text, string(k)) {
			continue
		}

		rest := text[len(k):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return k, true
		}
	}

	return "", false
}

// SupportsGoVersion reports whether a module language version ("go1.22",
// "1.24.0") is within the supported range.
func SupportsGoVersion(v string) bool {
	sv, ok := toSemver(v)
	if !ok {
		return false
	}

	minimum, _ := toSemver(MinGoVersion)

	return semver.Compare(sv, minimum) >= 0
}

// toSemver converts a Go version string into semver form ("go1.22" -> "v1.22").
func toSemver(v string) (string, bool) {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "go")
	if v == "" {
		return "", false
	}

	sv := "v" + v
	if !semver.IsValid(sv) {
		return "", false
	}

	return sv, true
}
