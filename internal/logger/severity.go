package logger

import (
	"fmt"
	"strings"
)

// Severity represents log severity levels, totally ordered from
// SeverityDebug (lowest) to SeverityCritical (highest).
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

// severityNames maps each severity to its canonical upper-case name.
var severityNames = map[Severity]string{
	SeverityDebug:    "DEBUG",
	SeverityInfo:     "INFO",
	SeverityWarning:  "WARNING",
	SeverityError:    "ERROR",
	SeverityCritical: "CRITICAL",
}

// String returns the canonical upper-case name of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// ParseSeverity converts a level name to a Severity. Matching is
// case-insensitive; "warn" is accepted as an alias for WARNING.
// Unknown names are rejected with an error rather than silently
// downgraded to a default level.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return SeverityDebug, nil
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityDebug, fmt.Errorf("unknown log level %q", name)
	}
}
