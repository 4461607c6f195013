// Package render turns an artifact into formatted Go source.
package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"

	"github.com/mpyw/injectlogin/internal/artifact"
)

// Header is the first line of every generated file.
const Header = "// Code generated by injectlogin. DO NOT EDIT."

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// Render returns the Go source of a. The output depends on a only.
func Render(a artifact.Artifact) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid artifact")
	}

	var out bytes.Buffer

	fmt.Fprintf(&out, "%s\n\npackage %s\n\n", Header, a.Namespace)
	fmt.Fprintf(&out, "// %s locates the login target %s.\n", a.TypeName, a.Target)
	fmt.Fprintf(&out, "type %s struct{}\n", a.TypeName)

	for _, fn := range a.Funcs {
		fmt.Fprintf(&out, "\n// %s returns the fully qualified name of the login target.\n", fn.Name)
		fmt.Fprintf(&out, "func (%s) %s() %s {\n\treturn %s\n}\n", a.TypeName, fn.Name, fn.Result, strconv.Quote(fn.Return))
	}

	src, err := imports.Process(a.TypeName+".go", out.Bytes(), formatOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to format %s", a.TypeName)
	}

	return src, nil
}
