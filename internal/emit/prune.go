package emit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/mpyw/injectlogin/internal/render"
)

// generatedPattern matches the names naming.FileName produces.
const generatedPattern = "zz_generated.*.go"

// Pruner is implemented by channels that can remove generated files left
// over from earlier rounds.
type Pruner interface {
	// Prune removes every generated file except the one named keep and
	// returns the paths it removed. An empty keep removes them all.
	Prune(ctx context.Context, keep string) ([]string, error)
}

var (
	_ Pruner = DirChannel{}
	_ Pruner = CheckChannel{}
)

// leftovers lists the generated files under the root other than keep.
// Files without the generated header belong to the user and are never
// listed.
func (c DirChannel) leftovers(ctx context.Context, keep string) ([]string, error) {
	fs := c.fs()

	infos, err := afero.ReadDir(fs, c.Root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", c.Root)
	}

	var paths []string
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := info.Name()
		if info.IsDir() || name == keep {
			continue
		}
		if ok, _ := filepath.Match(generatedPattern, name); !ok {
			continue
		}

		path := filepath.Join(c.Root, name)
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		if !bytes.HasPrefix(content, []byte(render.Header)) {
			continue
		}

		paths = append(paths, path)
	}
	sort.Strings(paths)

	return paths, nil
}

// Prune implements Pruner.
func (c DirChannel) Prune(ctx context.Context, keep string) ([]string, error) {
	paths, err := c.leftovers(ctx, keep)
	if err != nil {
		return nil, err
	}

	fs := c.fs()
	for i, path := range paths {
		if err := fs.Remove(path); err != nil {
			return paths[:i], errors.Wrapf(err, "failed to remove %s", path)
		}
	}

	return paths, nil
}

// Prune implements Pruner. It removes nothing and fails with ErrStale
// when DirChannel.Prune would remove a file.
func (c CheckChannel) Prune(ctx context.Context, keep string) ([]string, error) {
	paths, err := c.Dir.leftovers(ctx, keep)
	if err != nil {
		return nil, err
	}

	if len(paths) > 0 {
		return paths, errors.Wrapf(ErrStale, "leftover %s", strings.Join(paths, ", "))
	}

	return nil, nil
}
