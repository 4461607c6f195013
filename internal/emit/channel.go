package emit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// ErrStale is returned by CheckChannel when a generated file is out of date.
var ErrStale = errors.New("generated file is stale")

// DirChannel writes files under Root.
type DirChannel struct {
	// Fs defaults to the OS filesystem.
	Fs   afero.Fs
	Root string
}

func (c DirChannel) fs() afero.Fs {
	if c.Fs == nil {
		return afero.NewOsFs()
	}

	return c.Fs
}

// Path returns where f is written.
func (c DirChannel) Path(f File) string {
	return filepath.Join(c.Root, f.Name)
}

// Write implements Channel. An existing file with identical content is left
// untouched.
func (c DirChannel) Write(ctx context.Context, f File) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Written, err
	}

	fs := c.fs()
	path := c.Path(f)

	existing, err := afero.ReadFile(fs, path)
	if err == nil && bytes.Equal(existing, f.Content) {
		return Unchanged, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return Written, errors.Wrapf(err, "failed to read %s", path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Written, errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}

	if err := afero.WriteFile(fs, path, f.Content, 0o644); err != nil {
		return Written, errors.Wrapf(err, "failed to write %s", path)
	}

	return Written, nil
}

// CheckChannel compares files with what DirChannel would write and fails
// with ErrStale on any difference. It never writes.
type CheckChannel struct {
	Dir DirChannel
}

// Write implements Channel.
func (c CheckChannel) Write(ctx context.Context, f File) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Unchanged, err
	}

	path := c.Dir.Path(f)

	existing, err := afero.ReadFile(c.Dir.fs(), path)
	if os.IsNotExist(err) {
		return Unchanged, errors.Wrapf(ErrStale, "%s does not exist", path)
	}
	if err != nil {
		return Unchanged, errors.Wrapf(err, "failed to read %s", path)
	}

	if !bytes.Equal(existing, f.Content) {
		return Unchanged, errors.Wrapf(ErrStale, "%s differs", path)
	}

	return Unchanged, nil
}

// MemoryChannel records files in memory.
type MemoryChannel struct {
	mu    sync.Mutex
	files []File
	err   error
}

// FailWith makes every subsequent Write fail with err.
func (c *MemoryChannel) FailWith(err error) *MemoryChannel {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err

	return c
}

// Write implements Channel.
func (c *MemoryChannel) Write(ctx context.Context, f File) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Written, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return Written, c.err
	}

	f.Content = append([]byte(nil), f.Content...)
	c.files = append(c.files, f)

	return Written, nil
}

// Files returns the recorded files in write order.
func (c *MemoryChannel) Files() []File {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]File(nil), c.files...)
}
