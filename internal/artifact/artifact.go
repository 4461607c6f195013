// Package artifact describes the declaration a build round generates.
package artifact

import (
	"go/token"

	"github.com/cockroachdb/errors"

	"github.com/mpyw/injectlogin/internal/extract"
)

// Namespace is the package clause of every generated file.
const Namespace = "injectlogin"

// AccessorName is the name of the single generated function.
const AccessorName = "GetInjectLoginClass"

// Func is a generated function returning a constant string.
type Func struct {
	Name string
	// Static functions need no state; they are rendered as value-receiver
	// methods on the empty struct.
	Static bool
	Result string
	// Return is the string the function returns, unquoted.
	Return string
}

// Artifact is the generated type and its functions. It is built once and
// never mutated.
type Artifact struct {
	Namespace string
	TypeName  string
	Exported  bool
	Funcs     []Func
	// Target is the qualified name the artifact refers to.
	Target string
}

// Build returns the artifact for the login target md, named name.
func Build(name string, md extract.Metadata) Artifact {
	return Artifact{
		Namespace: Namespace,
		TypeName:  name,
		Exported:  true,
		Funcs: []Func{{
			Name:   AccessorName,
			Static: true,
			Result: "string",
			Return: md.QualifiedName,
		}},
		Target: md.QualifiedName,
	}
}

// Accessor returns the single accessor function.
func (a Artifact) Accessor() Func {
	if len(a.Funcs) == 0 {
		return Func{}
	}

	return a.Funcs[0]
}

// Validate checks that a can be rendered as Go source.
func (a Artifact) Validate() error {
	if !token.IsIdentifier(a.Namespace) {
		return errors.Newf("invalid package name %q", a.Namespace)
	}

	if !token.IsIdentifier(a.TypeName) {
		return errors.Newf("invalid type name %q", a.TypeName)
	}

	if a.Exported != token.IsExported(a.TypeName) {
		return errors.Newf("type name %q does not match exported=%t", a.TypeName, a.Exported)
	}

	if len(a.Funcs) != 1 {
		return errors.Newf("artifact must have exactly one function, got %d", len(a.Funcs))
	}

	fn := a.Funcs[0]
	if fn.Name != AccessorName || !fn.Static || fn.Result != "string" {
		return errors.Newf("unexpected function %s", fn.Name)
	}

	if fn.Return == "" {
		return errors.New("accessor has no return value")
	}

	return nil
}
