// Package loader loads Go packages for the generator.
package loader

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/mpyw/injectlogin/internal/universe/gotypes"
)

// Mode is the information the generator needs from each package.
const Mode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// Config controls package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// working directory.
	Dir string
	// Tests includes test packages.
	Tests bool
	// BuildFlags are passed to the build system (e.g. "-tags=integration").
	BuildFlags []string
}

// Load loads and type-checks the packages matching patterns.
// Sources are returned in the order the build system reports them.
func Load(ctx context.Context, cfg Config, patterns ...string) ([]gotypes.Source, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pcfg := &packages.Config{
		Context:    ctx,
		Mode:       Mode,
		Dir:        cfg.Dir,
		Tests:      cfg.Tests,
		BuildFlags: cfg.BuildFlags,
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load packages %v", patterns)
	}

	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %v", patterns)
	}

	var loadErrs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, errors.Newf("%s: %s", pkg.PkgPath, e.Error()))
		}
	})
	if len(loadErrs) > 0 {
		return nil, errors.Wrap(errors.Join(loadErrs...), "package errors")
	}

	pkgs = withoutShadowedVariants(pkgs)

	sources := make([]gotypes.Source, 0, len(pkgs))
	for _, pkg := range pkgs {
		sources = append(sources, gotypes.FromPackage(pkg))
	}

	return sources, nil
}

// withoutShadowedVariants drops generated test mains and every package whose
// test variant ("p [p.test]") was also loaded, since the variant contains
// all of its files.
func withoutShadowedVariants(pkgs []*packages.Package) []*packages.Package {
	tested := make(map[string]bool)
	for _, pkg := range pkgs {
		if pkg.ForTest != "" && pkg.PkgPath == pkg.ForTest {
			tested[pkg.PkgPath] = true
		}
	}

	out := make([]*packages.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Name == "main" && strings.HasSuffix(pkg.ID, ".test") {
			continue
		}
		if pkg.ForTest == "" && tested[pkg.PkgPath] {
			continue
		}
		out = append(out, pkg)
	}

	return out
}

// ImportPath returns the import path of the package in dir, derived from
// the nearest go.mod at or above it. dir need not exist yet.
func ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve directory")
	}

	for root := abs; ; {
		goMod := filepath.Join(root, "go.mod")
		data, err := os.ReadFile(goMod)
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", errors.Newf("module path not found in %s", goMod)
			}

			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", errors.Wrapf(err, "failed to relate %s to %s", abs, root)
			}
			if rel == "." {
				return modPath, nil
			}
			return path.Join(modPath, filepath.ToSlash(rel)), nil
		}
		if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "failed to read %s", goMod)
		}

		parent := filepath.Dir(root)
		if parent == root {
			return "", errors.New("go.mod not found")
		}
		root = parent
	}
}
