// Package extract finds marked declarations and reduces them to the
// metadata a build round needs.
package extract

import (
	"context"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mpyw/injectlogin/internal/diag"
	"github.com/mpyw/injectlogin/internal/marker"
	"github.com/mpyw/injectlogin/internal/universe"
)

// ErrUnknownMarker is returned by Scan for markers missing from the registry.
var ErrUnknownMarker = errors.New("unknown marker")

// Metadata identifies the login target type.
// The zero value means no target was found.
type Metadata struct {
	// QualifiedName is "<import path>.<TypeName>".
	QualifiedName string
}

// IsZero reports whether m carries no target.
func (m Metadata) IsZero() bool {
	return m.QualifiedName == ""
}

// SimpleName returns the text after the last ".".
//
//	"github.com/example/app/ui.LoginActivity" -> "LoginActivity"
func (m Metadata) SimpleName() string {
	return m.QualifiedName[strings.LastIndex(m.QualifiedName, ".")+1:]
}

// PkgPath returns the text before the last ".", or "" if there is none.
func (m Metadata) PkgPath() string {
	lastDot := strings.LastIndex(m.QualifiedName, ".")
	if lastDot == -1 {
		return ""
	}

	return m.QualifiedName[:lastDot]
}

// Scan returns every declaration in u carrying m, in discovery order.
func Scan(ctx context.Context, u universe.Universe, m marker.Kind) ([]universe.Decl, error) {
	if r := marker.Default(); !r.Supported(m) {
		return nil, errors.Wrapf(ErrUnknownMarker, "%q (supported: %v)", string(m), r.Kinds())
	}

	decls, err := u.FindByMarker(ctx, m)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan for %s", m.Directive())
	}

	return decls, nil
}

// FilterAndExtract keeps the field candidates and folds them into metadata.
// Every eligible field overwrites the previous one, so the last eligible
// candidate in discovery order wins. Skipped candidates are reported as
// warnings on c.
func FilterAndExtract(u universe.Universe, candidates []universe.Decl, c *diag.Collector) (Metadata, bool) {
	var (
		md       Metadata
		found    bool
		eligible int
	)

	for _, d := range candidates {
		if k := u.KindOf(d); k != universe.Field {
			c.Warnf(d.Pos(), "%s is a %s, not a field; skipped", d.Name(), k)
			continue
		}

		owner, ok := u.EnclosingTypeOf(d)
		if !ok {
			c.Warnf(d.Pos(), "field %s has no enclosing named type; skipped", d.Name())
			continue
		}

		qname := u.QualifiedNameOf(owner)
		if qname == "" {
			c.Warnf(d.Pos(), "field %s has an unnamed enclosing type; skipped", d.Name())
			continue
		}

		md = Metadata{QualifiedName: qname}
		found = true
		eligible++
		c.Infof(d.Pos(), "login target %s", qname)
	}

	if eligible > 1 {
		c.Infof(token.Position{}, "%d eligible fields; using the last one, %s", eligible, md.QualifiedName)
	}

	return md, found
}
