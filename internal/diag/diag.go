// Package diag collects the diagnostics a build round produces.
package diag

import (
	"fmt"
	"go/token"

	"go.uber.org/zap"

	"github.com/mpyw/injectlogin/internal/logger"
)

// Severity of a diagnostic.
type Severity int

// Severities, lowest first.
const (
	Info Severity = iota
	Warning
	Error
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is one observational message. Diagnostics never change
// control flow.
type Diagnostic struct {
	Severity Severity
	Message  string
	// Pos locates the declaration the message is about, if any.
	Pos token.Position
}

// String formats the diagnostic as "file:line:col: severity: message".
func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
	}

	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Collector accumulates diagnostics in emission order.
// Attached loggers receive each diagnostic as it is added.
type Collector struct {
	list []Diagnostic
	log  *zap.SugaredLogger
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// LogTo mirrors every subsequent diagnostic to l.
func (c *Collector) LogTo(l *zap.SugaredLogger) *Collector {
	c.log = l
	return c
}

// Add records d.
func (c *Collector) Add(d Diagnostic) {
	c.list = append(c.list, d)

	if c.log == nil {
		return
	}

	fields := []any{logger.FieldSeverity, d.Severity.String()}
	if d.Pos.IsValid() {
		fields = append(fields, logger.FieldFile, d.Pos.Filename, logger.FieldLine, d.Pos.Line)
	}

	switch d.Severity {
	case Info:
		c.log.Infow(d.Message, fields...)
	case Warning:
		c.log.Warnw(d.Message, fields...)
	default:
		c.log.Errorw(d.Message, fields...)
	}
}

// Infof records an informational diagnostic.
func (c *Collector) Infof(pos token.Position, format string, args ...any) {
	c.Add(Diagnostic{Severity: Info, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Warnf records a warning.
func (c *Collector) Warnf(pos token.Position, format string, args ...any) {
	c.Add(Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Errorf records an error diagnostic.
func (c *Collector) Errorf(pos token.Position, format string, args ...any) {
	c.Add(Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// List returns a copy of the collected diagnostics.
func (c *Collector) List() []Diagnostic {
	return append([]Diagnostic(nil), c.list...)
}

// Filter returns the diagnostics in list with severity s.
func Filter(list []Diagnostic, s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range list {
		if d.Severity == s {
			out = append(out, d)
		}
	}

	return out
}
