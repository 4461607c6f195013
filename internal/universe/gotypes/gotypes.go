// Package gotypes implements universe.Universe over type-checked Go packages.
package gotypes

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/mpyw/injectlogin/internal/marker"
	"github.com/mpyw/injectlogin/internal/universe"
)

// Source is one type-checked package.
type Source struct {
	Fset  *token.FileSet
	Files []*ast.File
	Pkg   *types.Package
	Info  *types.Info
	// GoVersion is the language version of the enclosing module, if known.
	GoVersion string
}

// FromPass builds a Source from an analysis pass.
func FromPass(pass *analysis.Pass) Source {
	src := Source{
		Fset:  pass.Fset,
		Files: pass.Files,
		Pkg:   pass.Pkg,
		Info:  pass.TypesInfo,
	}
	if pass.Module != nil {
		src.GoVersion = pass.Module.GoVersion
	}

	return src
}

// FromPackage builds a Source from a loaded package.
func FromPackage(pkg *packages.Package) Source {
	src := Source{
		Fset:  pkg.Fset,
		Files: pkg.Syntax,
		Pkg:   pkg.Types,
		Info:  pkg.TypesInfo,
	}
	if pkg.Module != nil {
		src.GoVersion = pkg.Module.GoVersion
	}

	return src
}

// Path returns the import path of the package, or "" if unknown.
func (s Source) Path() string {
	if s.Pkg == nil {
		return ""
	}

	return s.Pkg.Path()
}

// Decl is a declaration found in a Source.
type Decl struct {
	name      string
	kind      universe.Kind
	qualified string
	owner     *Decl
	pos       token.Position
}

// Name implements universe.Decl.
func (d *Decl) Name() string { return d.name }

// Pos implements universe.Decl.
func (d *Decl) Pos() token.Position { return d.pos }

// Universe is a universe.Universe over one or more packages.
type Universe struct {
	sources  []Source
	registry *marker.Registry
}

var _ universe.Universe = (*Universe)(nil)

// New creates a Universe over the given packages. Declarations are
// discovered in source order.
func New(sources ...Source) *Universe {
	return &Universe{
		sources:  sources,
		registry: marker.Default(),
	}
}

// Sources returns the packages the universe covers.
func (u *Universe) Sources() []Source {
	return u.sources
}

// FindByMarker implements universe.Universe.
// Packages are scanned concurrently; results keep the sequential order.
func (u *Universe) FindByMarker(ctx context.Context, k marker.Kind) ([]universe.Decl, error) {
	perSource := make([][]*Decl, len(u.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range u.sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perSource[i] = newScanner(src, u.registry, k).scan()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Test variants of a package share its files; report each
	// declaration once.
	seen := make(map[token.Position]bool)

	var found []universe.Decl
	for _, decls := range perSource {
		for _, d := range decls {
			if seen[d.pos] {
				continue
			}
			seen[d.pos] = true
			found = append(found, d)
		}
	}

	return found, nil
}

// KindOf implements universe.Universe.
func (u *Universe) KindOf(d universe.Decl) universe.Kind {
	gd, ok := d.(*Decl)
	if !ok {
		return universe.Other
	}

	return gd.kind
}

// EnclosingTypeOf implements universe.Universe.
func (u *Universe) EnclosingTypeOf(d universe.Decl) (universe.Decl, bool) {
	gd, ok := d.(*Decl)
	if !ok || gd.owner == nil {
		return nil, false
	}

	return gd.owner, true
}

// QualifiedNameOf implements universe.Universe.
func (u *Universe) QualifiedNameOf(d universe.Decl) string {
	gd, ok := d.(*Decl)
	if !ok {
		return ""
	}

	return gd.qualified
}
