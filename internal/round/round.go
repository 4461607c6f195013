package round

import (
	"context"
	"go/token"

	"go.uber.org/zap"

	"github.com/mpyw/injectlogin/internal/artifact"
	"github.com/mpyw/injectlogin/internal/diag"
	"github.com/mpyw/injectlogin/internal/emit"
	"github.com/mpyw/injectlogin/internal/extract"
	"github.com/mpyw/injectlogin/internal/logger"
	"github.com/mpyw/injectlogin/internal/marker"
	"github.com/mpyw/injectlogin/internal/naming"
	"github.com/mpyw/injectlogin/internal/universe"
)

// State is a step of a build round.
type State int

// States in the order a successful round visits them.
const (
	Idle State = iota
	Scanning
	Filtering
	NoEligible
	Synthesizing
	Emitting
	Done
	EmitFailed
	Failed
)

var stateNames = [...]string{
	Idle:         "idle",
	Scanning:     "scanning",
	Filtering:    "filtering",
	NoEligible:   "no-eligible",
	Synthesizing: "synthesizing",
	Emitting:     "emitting",
	Done:         "done",
	EmitFailed:   "emit-failed",
	Failed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	switch s {
	case NoEligible, Done, EmitFailed, Failed:
		return true
	default:
		return false
	}
}

// Round is the configuration of a build round. A Round holds no state
// between runs.
type Round struct {
	Universe universe.Universe
	// Marker defaults to marker.InjectLogin.
	Marker marker.Kind
	// Candidates, when non-nil, replaces scanning the universe.
	Candidates []universe.Decl
	Convention naming.Convention
	// Channel receives the generated file. A nil Channel ends the round
	// after synthesis.
	Channel emit.Channel
	// Logger defaults to the "round" component logger.
	Logger *zap.SugaredLogger
}

// Result is everything a round produced.
type Result struct {
	State State
	// Transitions lists every state entered, starting with Idle.
	Transitions []State
	Metadata    extract.Metadata
	HasMetadata bool
	Name        string
	Artifact    artifact.Artifact
	File        emit.File
	Diagnostics []diag.Diagnostic
	Err         error
}

// Succeeded reports whether the round ended without error.
func (r *Result) Succeeded() bool {
	return r.State == Done || r.State == NoEligible
}

// Warnings returns the warning diagnostics.
func (r *Result) Warnings() []diag.Diagnostic {
	return diag.Filter(r.Diagnostics, diag.Warning)
}

type run struct {
	res *Result
	log *zap.SugaredLogger
}

func (r *run) enter(s State) {
	r.res.State = s
	r.res.Transitions = append(r.res.Transitions, s)
	r.log.Debugw("round state", logger.FieldState, s.String())

	if s.Terminal() {
		r.log.Infow("round finished", logger.FieldState, s.String(), logger.FieldCount, len(r.res.Transitions))
	}
}

// Run executes the round. It never panics on emission failure; the failure
// is reported through the result.
func (rd Round) Run(ctx context.Context) *Result {
	log := rd.Logger
	if log == nil {
		log = logger.ComponentLogger("round")
	}

	m := rd.Marker
	if m == "" {
		m = marker.InjectLogin
	}

	conv := rd.Convention
	if conv == (naming.Convention{}) {
		conv = naming.DefaultConvention()
	}

	r := &run{res: &Result{}, log: log}
	c := diag.NewCollector().LogTo(log)

	defer func() {
		r.res.Diagnostics = c.List()
	}()

	r.enter(Idle)

	r.enter(Scanning)
	candidates := rd.Candidates
	if candidates == nil {
		var err error
		candidates, err = extract.Scan(ctx, rd.Universe, m)
		if err != nil {
			c.Errorf(token.Position{}, "scan failed: %v", err)
			r.res.Err = err
			r.enter(Failed)
			return r.res
		}
	}
	log.Debugw("candidates found", logger.FieldCount, len(candidates))

	r.enter(Filtering)
	md, ok := extract.FilterAndExtract(rd.Universe, candidates, c)
	if !ok {
		r.enter(NoEligible)
		return r.res
	}
	r.res.Metadata = md
	r.res.HasMetadata = true

	r.enter(Synthesizing)
	name, err := conv.Synthesize(md)
	if err == nil {
		r.res.Name = name
		r.res.Artifact = artifact.Build(name, md)
		err = r.res.Artifact.Validate()
	}
	if err != nil {
		c.Errorf(token.Position{}, "synthesis failed: %v", err)
		r.res.Err = err
		r.enter(Failed)
		return r.res
	}

	if rd.Channel == nil {
		r.enter(Done)
		return r.res
	}

	r.enter(Emitting)
	f, err := emit.Emitter{}.Emit(ctx, r.res.Artifact, rd.Channel)
	r.res.File = f
	if err != nil {
		log.Debugw("emit failed", logger.FieldTarget, md.QualifiedName, logger.FieldError, err)
		c.Errorf(token.Position{}, "%v", err)
		r.res.Err = err
		r.enter(EmitFailed)
		return r.res
	}

	log.Infow("generated "+f.Name,
		logger.FieldTarget, md.QualifiedName,
		logger.FieldPackage, md.PkgPath(),
		"outcome", f.Outcome.String(),
	)
	r.enter(Done)

	return r.res
}
