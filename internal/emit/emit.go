// Package emit writes rendered artifacts to an output channel.
package emit

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/mpyw/injectlogin/internal/artifact"
	"github.com/mpyw/injectlogin/internal/naming"
	"github.com/mpyw/injectlogin/internal/render"
)

// ErrEmit matches every error returned by Emitter.Emit.
var ErrEmit = errors.New("emit failed")

// Outcome is what a channel did with a file.
type Outcome int

// Outcomes.
const (
	Written Outcome = iota
	Unchanged
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	if o == Unchanged {
		return "unchanged"
	}

	return "written"
}

// File is one emitted source file.
type File struct {
	// Namespace is the package clause of the file.
	Namespace string
	// Name is the base file name.
	Name    string
	Content []byte
	Outcome Outcome
}

// Channel persists files.
type Channel interface {
	Write(ctx context.Context, f File) (Outcome, error)
}

// EmitError reports a failed emission.
type EmitError struct {
	File string
	Err  error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("failed to emit %s: %v", e.File, e.Err)
}

// Unwrap returns the cause.
func (e *EmitError) Unwrap() error { return e.Err }

// Is makes every EmitError match ErrEmit.
func (e *EmitError) Is(target error) bool { return target == ErrEmit }

// Emitter renders artifacts and hands them to a channel.
type Emitter struct{}

// Emit renders a and writes it to ch. Any failure is an *EmitError.
func (Emitter) Emit(ctx context.Context, a artifact.Artifact, ch Channel) (File, error) {
	f := File{
		Namespace: a.Namespace,
		Name:      naming.FileName(a.TypeName),
	}

	if err := ctx.Err(); err != nil {
		return f, &EmitError{File: f.Name, Err: err}
	}

	src, err := render.Render(a)
	if err != nil {
		return f, &EmitError{File: f.Name, Err: err}
	}
	f.Content = src

	outcome, err := ch.Write(ctx, f)
	if err != nil {
		return f, &EmitError{File: f.Name, Err: err}
	}
	f.Outcome = outcome

	return f, nil
}
