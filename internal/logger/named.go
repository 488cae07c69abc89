package logger

// NamedLogger is a lightweight handle bound to a stable name (for
// example "database" or "api"). It is stateless beyond the bound name
// and delegates every emission to its router.
type NamedLogger struct {
	name   string
	router *Router
}

// Name returns the logger's bound name.
func (l *NamedLogger) Name() string {
	return l.name
}

// Debug emits a DEBUG event.
func (l *NamedLogger) Debug(message string, opts ...Option) {
	l.log(SeverityDebug, message, opts...)
}

// Info emits an INFO event.
func (l *NamedLogger) Info(message string, opts ...Option) {
	l.log(SeverityInfo, message, opts...)
}

// Warning emits a WARNING event.
func (l *NamedLogger) Warning(message string, opts ...Option) {
	l.log(SeverityWarning, message, opts...)
}

// Error emits an ERROR event.
func (l *NamedLogger) Error(message string, opts ...Option) {
	l.log(SeverityError, message, opts...)
}

// Critical emits a CRITICAL event.
func (l *NamedLogger) Critical(message string, opts ...Option) {
	l.log(SeverityCritical, message, opts...)
}

// Log emits an event with the level given by name. Unknown level names
// are rejected with an error; nothing is emitted.
func (l *NamedLogger) Log(level, message string, opts ...Option) error {
	severity, err := ParseSeverity(level)
	if err != nil {
		return err
	}
	l.log(severity, message, opts...)
	return nil
}

func (l *NamedLogger) log(severity Severity, message string, opts ...Option) {
	l.router.emitSkip(l.name, severity, message, 3, opts...)
}
