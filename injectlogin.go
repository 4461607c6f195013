// Package injectlogin provides a go/analysis based analyzer that resolves
// the login target marked with //bbgo:injectlogin and reports markers that
// cannot be used.
package injectlogin

import (
	"context"
	"flag"
	"go/token"
	"reflect"

	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/injectlogin/internal/diag"
	"github.com/mpyw/injectlogin/internal/generator"
	"github.com/mpyw/injectlogin/internal/logger"
	"github.com/mpyw/injectlogin/internal/naming"
	"github.com/mpyw/injectlogin/internal/round"
	"github.com/mpyw/injectlogin/internal/universe/gotypes"
)

// Flags for the analyzer.
var (
	prefix string
	suffix string
)

func init() {
	Analyzer.Flags.StringVar(&prefix, "prefix", naming.ProjectPrefix,
		"prefix of the generated type name")
	Analyzer.Flags.StringVar(&suffix, "suffix", naming.Suffix,
		"suffix of the generated type name")
}

// Analyzer is the main analyzer for injectlogin.
// Its result is the *round.Result of the package, or nil when the package
// has no marker.
var Analyzer = &analysis.Analyzer{
	Name:       "injectlogin",
	Doc:        "checks that //bbgo:injectlogin markers resolve to a login target type",
	Run:        run,
	ResultType: reflect.TypeOf((*round.Result)(nil)),
	Flags:      flag.FlagSet{},
}

func run(pass *analysis.Pass) (any, error) {
	conv := naming.Convention{
		Prefix:    prefix,
		Separator: naming.Separator,
		Suffix:    suffix,
	}
	if err := conv.Validate(); err != nil {
		return nil, err
	}

	g := &generator.Generator{
		Convention: conv,
		Logger:     logger.ComponentLogger("analyzer").With(logger.FieldPackage, pass.Pkg.Path()),
	}

	res, err := g.Generate(context.Background(), gotypes.New(gotypes.FromPass(pass)))
	if err != nil {
		return nil, err
	}

	if res == nil {
		return (*round.Result)(nil), nil
	}

	files := buildFileIndex(pass)
	for _, d := range res.Diagnostics {
		if d.Severity != diag.Warning {
			continue
		}
		pass.Reportf(files.pos(d.Pos), "%s", d.Message)
	}

	return res, nil
}

// fileIndex maps file names to their token.File.
type fileIndex map[string]*token.File

func buildFileIndex(pass *analysis.Pass) fileIndex {
	idx := make(fileIndex, len(pass.Files))

	for _, file := range pass.Files {
		if tf := pass.Fset.File(file.Pos()); tf != nil {
			idx[tf.Name()] = tf
		}
	}

	return idx
}

// pos converts a Position back into a Pos of the pass.
func (idx fileIndex) pos(p token.Position) token.Pos {
	tf, ok := idx[p.Filename]
	if !ok || p.Line < 1 || p.Line > tf.LineCount() {
		return token.NoPos
	}

	return tf.LineStart(p.Line) + token.Pos(p.Column-1)
}
