// Package universe defines the read-only view of the declarations a build
// round works on.
package universe

import (
	"context"
	"go/token"

	"github.com/mpyw/injectlogin/internal/marker"
)

// Kind classifies a declaration.
type Kind int

// Declaration kinds.
const (
	Other Kind = iota
	Field
	Method
	Func
	Type
	Var
	Const
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Field:
		return "field"
	case Method:
		return "method"
	case Func:
		return "func"
	case Type:
		return "type"
	case Var:
		return "var"
	case Const:
		return "const"
	default:
		return "declaration"
	}
}

// Decl is a declaration borrowed from a Universe.
// Only the Universe that produced a Decl may answer questions about it.
type Decl interface {
	// Name is the declared identifier, used in diagnostics.
	Name() string
	// Pos is where the declaration starts. It may be the zero Position.
	Pos() token.Position
}

// Universe answers the questions a build round asks about declarations.
// Implementations never mutate the program they describe.
type Universe interface {
	// FindByMarker returns every declaration carrying the marker in
	// discovery order.
	FindByMarker(ctx context.Context, m marker.Kind) ([]Decl, error)
	// KindOf classifies d.
	KindOf(d Decl) Kind
	// EnclosingTypeOf returns the named type declaring d.
	EnclosingTypeOf(d Decl) (Decl, bool)
	// QualifiedNameOf returns the fully qualified name of d, e.g.
	// "github.com/example/app/ui.LoginActivity".
	QualifiedNameOf(d Decl) string
}
