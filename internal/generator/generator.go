// Package generator wires package loading, scanning and the build round.
package generator

import (
	"context"
	"go/token"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/mpyw/injectlogin/internal/diag"
	"github.com/mpyw/injectlogin/internal/emit"
	"github.com/mpyw/injectlogin/internal/extract"
	"github.com/mpyw/injectlogin/internal/loader"
	"github.com/mpyw/injectlogin/internal/logger"
	"github.com/mpyw/injectlogin/internal/marker"
	"github.com/mpyw/injectlogin/internal/naming"
	"github.com/mpyw/injectlogin/internal/round"
	"github.com/mpyw/injectlogin/internal/universe"
	"github.com/mpyw/injectlogin/internal/universe/gotypes"
)

// Generator runs a build round whenever the marker is present.
type Generator struct {
	Convention naming.Convention
	// Channel receives the generated file. Nil means analysis only.
	Channel emit.Channel
	Loader  loader.Config
	// Logger defaults to the "generator" component logger.
	Logger *zap.SugaredLogger
}

// sourced is implemented by universes backed by Go packages.
type sourced interface {
	Sources() []gotypes.Source
}

func (g *Generator) log() *zap.SugaredLogger {
	if g.Logger != nil {
		return g.Logger
	}

	return logger.ComponentLogger("generator")
}

// Generate scans u once and runs a round over the candidates.
// Without candidates no round runs and Generate returns a nil result.
// Unless the round fails, generated files it did not produce are pruned.
// A round that fails returns its result together with the error.
func (g *Generator) Generate(ctx context.Context, u universe.Universe) (*round.Result, error) {
	log := g.log()

	candidates, err := extract.Scan(ctx, u, marker.InjectLogin)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		log.Debugw("no markers found; nothing to generate")
		return nil, g.prune(ctx, "")
	}

	c := diag.NewCollector().LogTo(log)
	if s, ok := u.(sourced); ok {
		checkGoVersions(s.Sources(), c)
	}

	res := round.Round{
		Universe:   u,
		Candidates: candidates,
		Convention: g.Convention,
		Channel:    g.Channel,
		Logger:     log.Named("round"),
	}.Run(ctx)
	res.Diagnostics = append(c.List(), res.Diagnostics...)

	if res.Err != nil {
		return res, errors.Wrapf(res.Err, "build round %s", res.State)
	}

	keep := ""
	if res.State == round.Done {
		keep = res.File.Name
	}

	return res, g.prune(ctx, keep)
}

// prune removes generated files other than keep from channels that
// support it. Files from an earlier target or from removed markers would
// otherwise stay behind.
func (g *Generator) prune(ctx context.Context, keep string) error {
	p, ok := g.Channel.(emit.Pruner)
	if !ok {
		return nil
	}

	removed, err := p.Prune(ctx, keep)
	if err != nil {
		return errors.Wrap(err, "failed to prune generated files")
	}

	for _, path := range removed {
		g.log().Infow("removed "+filepath.Base(path), logger.FieldFile, path)
	}

	return nil
}

// GeneratePatterns loads the packages matching patterns and generates
// from them.
func (g *Generator) GeneratePatterns(ctx context.Context, patterns ...string) (*round.Result, error) {
	sources, err := loader.Load(ctx, g.Loader, patterns...)
	if err != nil {
		return nil, err
	}

	for _, src := range sources {
		g.log().Debugw("loaded package", logger.FieldPackage, src.Path(), logger.FieldCount, len(src.Files))
	}

	return g.Generate(ctx, gotypes.New(sources...))
}

func checkGoVersions(sources []gotypes.Source, c *diag.Collector) {
	for _, src := range sources {
		if src.GoVersion == "" || marker.SupportsGoVersion(src.GoVersion) {
			continue
		}

		var pos token.Position
		if len(src.Files) > 0 {
			pos = src.Fset.Position(src.Files[0].Package)
		}

		c.Warnf(pos, "package %s targets go %s; generated code requires %s or newer",
			src.Path(), src.GoVersion, marker.MinGoVersion)
	}
}
