package logger

import (
	"sync"
)

// Package-level router state. Initialization is expected to happen once
// at startup; if called concurrently, a single winner installs the
// sinks and later calls replace them atomically.
var (
	globalMu     sync.Mutex
	globalRouter *Router
)

// Initialize builds a router for the given application name and log
// directory, installs it as the process-wide router and returns it.
// Calling it again closes the previous router's sinks and replaces
// them; it never accumulates handlers. Configuration failures (cannot
// create the directory or open a destination file) are returned and
// leave the previous router in place.
func Initialize(appName, logDir string) (*Router, error) {
	return InitializeConfig(&Config{AppName: appName, LogDir: logDir})
}

// InitializeConfig is Initialize with full sink configuration.
func InitializeConfig(cfg *Config) (*Router, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	router, err := NewRouter(cfg)
	if err != nil {
		return nil, err
	}

	if globalRouter != nil {
		_ = globalRouter.Close()
	}
	globalRouter = router
	return router, nil
}

// SetGlobal installs r as the process-wide router. Intended for tests
// and for applications that construct their router explicitly.
func SetGlobal(r *Router) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalRouter = r
}

// Global returns the process-wide router. If Initialize has not been
// called it falls back to a console-only router so call sites without
// an injected router still log.
func Global() *Router {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalRouter != nil {
		return globalRouter
	}

	cfg := Config{}
	applyConfigDefaults(&cfg)
	consoleLevel, _ := ParseSeverity(cfg.Console.Level)
	globalRouter = &Router{
		appName: cfg.AppName,
		logDir:  cfg.LogDir,
	}
	console := NewSink("console", consoleLevel, &LineFormatter{}, cfg.Console.Writer)
	globalRouter.sinks = []*Sink{console}
	globalRouter.console = console

	return globalRouter
}
