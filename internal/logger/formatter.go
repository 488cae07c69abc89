package logger

import (
	"fmt"
)

// timestampLayout is the fixed timestamp format used by line formatters.
const timestampLayout = "2006-01-02 15:04:05"

// Formatter is a pure rendering function from an event to its
// serialized textual form, one line per event including the trailing
// newline. Formatters are stateless and safe to share across sinks.
type Formatter interface {
	Format(e *Event) ([]byte, error)
}

// LineFormatter renders events as single human-readable lines:
//
//	2025-08-31 10:15:02 | INFO     | database | Executing query: ...
//
// With IncludeLine set, the logger name carries the call-site line
// number (database:142), which the file sinks use for diagnostics.
// Structured context is intentionally not rendered; these lines are
// for human scanning.
type LineFormatter struct {
	IncludeLine bool
}

func (f *LineFormatter) Format(e *Event) ([]byte, error) {
	name := e.Logger
	if f.IncludeLine {
		name = fmt.Sprintf("%s:%d", e.Logger, e.Source.Line)
	}
	line := fmt.Sprintf("%s | %-8s | %s | %s\n",
		e.Timestamp.Format(timestampLayout), e.Severity, name, e.Message)
	return []byte(line), nil
}
