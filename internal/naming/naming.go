// Package naming derives the names of generated declarations and files.
package naming

import (
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mpyw/injectlogin/internal/extract"
)

// Default naming parts.
const (
	ProjectPrefix = "Bbgo"
	Separator     = "_"
	Suffix        = "InjectLogin"
)

// ErrNoMetadata is returned when a name is requested without a login target.
var ErrNoMetadata = errors.New("no login target metadata")

// Convention joins the parts of a generated type name.
type Convention struct {
	Prefix    string
	Separator string
	Suffix    string
}

// DefaultConvention returns Bbgo_<Simple>_InjectLogin naming.
func DefaultConvention() Convention {
	return Convention{
		Prefix:    ProjectPrefix,
		Separator: Separator,
		Suffix:    Suffix,
	}
}

// Validate reports whether names built by c can be Go identifiers.
func (c Convention) Validate() error {
	if c.Prefix == "" {
		return errors.New("naming prefix must not be empty")
	}

	if c.Suffix == "" {
		return errors.New("naming suffix must not be empty")
	}

	// "X" stands in for the simple name, which is always an identifier.
	if sample := c.join("X"); !token.IsIdentifier(sample) {
		return errors.Newf("naming convention produces invalid identifier %q", sample)
	} else if !token.IsExported(sample) {
		return errors.Newf("naming convention produces unexported identifier %q", sample)
	}

	return nil
}

// Synthesize returns Prefix+Separator+SimpleName+Separator+Suffix.
func (c Convention) Synthesize(md extract.Metadata) (string, error) {
	if md.IsZero() {
		return "", ErrNoMetadata
	}

	return c.join(md.SimpleName()), nil
}

func (c Convention) join(simple string) string {
	return c.Prefix + c.Separator + simple + c.Separator + c.Suffix
}

// FileName returns the file the type named name is written to.
//
//	"Bbgo_LoginActivity_InjectLogin" -> "zz_generated.bbgo_loginactivity_injectlogin.go"
func FileName(name string) string {
	return "zz_generated." + strings.ToLower(name) + ".go"
}
