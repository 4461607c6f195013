// Package logger holds the process-wide zap logger used by the generator.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for the -v flag count.
const (
	VerbosityQuiet = 0 // warnings and errors only
	VerbosityInfo  = 1 // -v: + resolved login targets, written files
	VerbosityDebug = 2 // -vv: + candidates, loaded packages, round states
)

// Standard field names for structured logging.
const (
	FieldPackage  = "package"
	FieldFile     = "file"
	FieldLine     = "line"
	FieldState    = "state"
	FieldTarget   = "target"
	FieldCount    = "count"
	FieldSeverity = "severity"
	FieldError    = "error"
)

// Logger is the global logger. It is a no-op until Initialize is called.
var Logger = zap.NewNop().Sugar()

// Initialize sets up the global logger writing to stderr.
func Initialize(jsonOutput bool, verbosity int) error {
	l, err := New(os.Stderr, jsonOutput, verbosity)
	if err != nil {
		return err
	}

	Logger = l

	return nil
}

// New builds a logger writing to w. go generate shows stderr, so the
// console encoder omits timestamps to keep build output stable.
func New(w io.Writer, jsonOutput bool, verbosity int) (*zap.SugaredLogger, error) {
	level := zap.NewAtomicLevelAt(VerbosityToLevel(verbosity))

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	return zap.New(core).Sugar(), nil
}

// VerbosityToLevel maps the -v count to a zap level.
//
//	0 (none) -> WarnLevel
//	1 (-v)   -> InfoLevel
//	2+ (-vv) -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// ComponentLogger returns a named logger for a component.
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Cleanup flushes buffered log entries.
func Cleanup() {
	_ = Logger.Sync()
}
