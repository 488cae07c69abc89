// Package logger provides a process-wide structured logging facility:
// a single configuration point that fans every log event out to
// multiple independently-formatted, independently-rotated sinks.
//
// A Router owns four sinks wired at initialization:
//
//   - console: human-readable lines, INFO and above, no rotation
//   - {app}.log: human-readable lines with call-site line numbers,
//     DEBUG and above, rotated at 10 MB keeping 5 backups
//   - {app}_structured.json: line-delimited JSON, INFO and above,
//     rotated at 10 MB keeping 5 backups
//   - {app}_errors.log: human-readable lines, ERROR and above,
//     rotated at 5 MB keeping 3 backups
//
// Call sites obtain named loggers from the router and attach context
// (user id, request id, free-form structured payload) per event:
//
//	router, err := logger.Initialize("myapp", "logs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer router.Close()
//
//	appLog := router.GetLogger("application")
//	appLog.Info("Application started")
//	appLog.Error("Save failed",
//	    logger.WithError(err),
//	    logger.WithUserID("user-123"))
//
// Specialized domain loggers (DatabaseLogger, APILogger,
// SecurityLogger) assemble messages and structured payloads from typed
// arguments and emit through named loggers bound to fixed names.
//
// Logging calls are fire-and-forget: per-write I/O failures are
// isolated to the offending sink and never propagate to the caller.
// Only configuration-time failures surface, from Initialize.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Default rotation policy, per sink kind.
const (
	defaultFileMaxBytes    = 10 * 1024 * 1024
	defaultFileBackups     = 5
	defaultErrFileMaxBytes = 5 * 1024 * 1024
	defaultErrFileBackups  = 3
)

// Default configuration surface.
const (
	DefaultAppName = "loghub"
	DefaultLogDir  = "logs"
)

// ConsoleSinkConfig configures the console sink.
type ConsoleSinkConfig struct {
	Level  string    // minimum severity name, default "info"
	Writer io.Writer // destination stream, default os.Stdout
}

// FileSinkConfig configures one rotating file sink. For MaxBytes and
// BackupCount, zero means the sink's default; a negative value disables
// rotation (respectively keeps no rotated generations).
type FileSinkConfig struct {
	Level       string
	MaxBytes    int64
	BackupCount int
}

// Config is the full router configuration. The zero value is usable:
// applyConfigDefaults fills in the standard severity routing and
// rotation tables.
type Config struct {
	AppName string
	LogDir  string

	Console    ConsoleSinkConfig
	PlainFile  FileSinkConfig
	Structured FileSinkConfig
	ErrorFile  FileSinkConfig
}

// applyConfigDefaults fills unset fields with the standard routing and
// rotation policy so a zero or partial Config behaves sensibly.
func applyConfigDefaults(cfg *Config) {
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}
	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir
	}
	if cfg.Console.Level == "" {
		cfg.Console.Level = "info"
	}
	if cfg.Console.Writer == nil {
		cfg.Console.Writer = os.Stdout
	}
	if cfg.PlainFile.Level == "" {
		cfg.PlainFile.Level = "debug"
	}
	if cfg.PlainFile.MaxBytes == 0 {
		cfg.PlainFile.MaxBytes = defaultFileMaxBytes
	}
	if cfg.PlainFile.BackupCount == 0 {
		cfg.PlainFile.BackupCount = defaultFileBackups
	}
	if cfg.Structured.Level == "" {
		cfg.Structured.Level = "info"
	}
	if cfg.Structured.MaxBytes == 0 {
		cfg.Structured.MaxBytes = defaultFileMaxBytes
	}
	if cfg.Structured.BackupCount == 0 {
		cfg.Structured.BackupCount = defaultFileBackups
	}
	if cfg.ErrorFile.Level == "" {
		cfg.ErrorFile.Level = "error"
	}
	if cfg.ErrorFile.MaxBytes == 0 {
		cfg.ErrorFile.MaxBytes = defaultErrFileMaxBytes
	}
	if cfg.ErrorFile.BackupCount == 0 {
		cfg.ErrorFile.BackupCount = defaultErrFileBackups
	}
}

// Router owns the set of sinks and forwards every event from every
// named logger to each sink whose severity filter passes. Fan-out is
// independent per sink: a failure writing to one sink never prevents
// delivery to the others.
type Router struct {
	mu      sync.RWMutex
	appName string
	logDir  string
	sinks   []*Sink
	console *Sink
}

// NewRouter creates a router and installs its sinks from cfg. A nil
// cfg gets the full default configuration.
func NewRouter(cfg *Config) (*Router, error) {
	r := &Router{}
	if err := r.Initialize(cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// Initialize ensures the log directory exists and resets the sink set
// to exactly four sinks wired to filenames derived from the app name.
// It is idempotent: calling it again closes and replaces the prior
// sinks rather than accumulating handlers or leaking descriptors. A
// failure leaves the router's previous sinks untouched.
func (r *Router) Initialize(cfg *Config) error {
	resolved := Config{}
	if cfg != nil {
		resolved = *cfg
	}
	applyConfigDefaults(&resolved)

	sinks, console, err := buildSinks(&resolved)
	if err != nil {
		return err
	}

	r.mu.Lock()
	old := r.sinks
	r.appName = resolved.AppName
	r.logDir = resolved.LogDir
	r.sinks = sinks
	r.console = console
	r.mu.Unlock()

	for _, s := range old {
		_ = s.Close()
	}
	return nil
}

// buildSinks constructs the four standard sinks. On partial failure the
// already-opened writers are closed so initialization never leaks.
func buildSinks(cfg *Config) (sinks []*Sink, console *Sink, err error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory %s: %w", cfg.LogDir, err)
	}

	closeOnError := func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}

	consoleLevel, err := ParseSeverity(cfg.Console.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("console sink: %w", err)
	}
	console = NewSink("console", consoleLevel, &LineFormatter{}, cfg.Console.Writer)
	sinks = append(sinks, console)

	fileSinks := []struct {
		name      string
		filename  string
		cfg       FileSinkConfig
		formatter Formatter
	}{
		{"file", cfg.AppName + ".log", cfg.PlainFile, &LineFormatter{IncludeLine: true}},
		{"structured", cfg.AppName + "_structured.json", cfg.Structured, &JSONFormatter{}},
		{"errors", cfg.AppName + "_errors.log", cfg.ErrorFile, &LineFormatter{IncludeLine: true}},
	}

	for _, fs := range fileSinks {
		level, err := ParseSeverity(fs.cfg.Level)
		if err != nil {
			closeOnError()
			return nil, nil, fmt.Errorf("%s sink: %w", fs.name, err)
		}
		path := filepath.Join(cfg.LogDir, fs.filename)
		writer, err := NewRotatingFileWriter(path, fs.cfg.MaxBytes, fs.cfg.BackupCount)
		if err != nil {
			closeOnError()
			return nil, nil, fmt.Errorf("failed to open %s sink: %w", fs.name, err)
		}
		sinks = append(sinks, newFileSink(fs.name, level, fs.formatter, writer))
	}

	return sinks, console, nil
}

// AppName returns the application name the router was initialized with.
func (r *Router) AppName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.appName
}

// LogDir returns the configured log directory.
func (r *Router) LogDir() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logDir
}

// Sinks returns a snapshot of the installed sinks.
func (r *Router) Sinks() []*Sink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Sink, len(r.sinks))
	copy(out, r.sinks)
	return out
}

// GetLogger returns a logging handle bound to name. The same name
// always yields a handle bound to the same underlying identity.
func (r *Router) GetLogger(name string) *NamedLogger {
	return &NamedLogger{name: name, router: r}
}

// Emit constructs an event and forwards it to every sink whose filter
// passes. It never returns an error: per-sink write failures are
// contained and reported once through the console sink while it stays
// healthy.
func (r *Router) Emit(name string, severity Severity, message string, opts ...Option) {
	r.emitSkip(name, severity, message, 2, opts...)
}

// LogWithContext emits through a named logger with the level given by
// name, mirroring the generic string-level entry point. Unknown level
// names are rejected with an error rather than downgraded.
func (r *Router) LogWithContext(loggerName, level, message string, opts ...Option) error {
	severity, err := ParseSeverity(level)
	if err != nil {
		return err
	}
	r.emitSkip(loggerName, severity, message, 2, opts...)
	return nil
}

// emitSkip is the single emission path. callerSkip counts stack frames
// between newEvent's caller and the original call site, for best-effort
// source location capture.
func (r *Router) emitSkip(name string, severity Severity, message string, callerSkip int, opts ...Option) {
	e := newEvent(name, severity, message, callerSkip, opts...)

	r.mu.RLock()
	sinks := r.sinks
	console := r.console
	r.mu.RUnlock()

	for _, s := range sinks {
		if err := s.emit(&e); err != nil {
			r.reportSinkFailure(s, console, err)
		} else {
			s.degraded.Store(false)
		}
	}
}

// reportSinkFailure records a failed write once per transition to
// unhealthy, through the console sink when it is not the one failing.
func (r *Router) reportSinkFailure(failed, console *Sink, err error) {
	if !failed.degraded.CompareAndSwap(false, true) {
		return
	}
	if console == nil || console == failed {
		return
	}
	notice := newEvent("logging", SeverityWarning,
		fmt.Sprintf("sink %s write failed, events dropped: %v", failed.Name(), err), 2)
	_ = console.emit(&notice)
}

// Flush pushes buffered writes on every sink through to the OS.
func (r *Router) Flush() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, s := range r.sinks {
		if err := s.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush sink %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close flushes and closes every sink. The router must not be used for
// emission afterwards.
func (r *Router) Close() error {
	r.mu.Lock()
	sinks := r.sinks
	r.sinks = nil
	r.console = nil
	r.mu.Unlock()

	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close sink %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
