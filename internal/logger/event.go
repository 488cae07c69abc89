package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SourceLocation identifies the call site that emitted an event.
// It is captured on a best-effort basis; zero values mean the caller
// could not be resolved.
type SourceLocation struct {
	Module   string
	Function string
	Line     int
}

// ExceptionInfo carries a captured error: its concrete type name, its
// message and a rendered stack trace.
type ExceptionInfo struct {
	Kind    string
	Message string
	Stack   string
}

// Context is the optional structured metadata attached to an event by
// the call site. Presence is explicit: a nil pointer or nil map means
// the field was not supplied and must not appear in structured output.
// An empty string supplied through WithUserID is still present.
type Context struct {
	UserID    *string
	RequestID *string
	ExtraData map[string]any
}

// Event is the immutable record produced at a call site. Once created
// it is only read; concurrent emission never mutates a prior event.
type Event struct {
	Timestamp time.Time
	Severity  Severity
	Logger    string
	Message   string
	Source    SourceLocation
	Exception *ExceptionInfo
	Context   Context
}

// Option attaches contextual metadata to an event at emission time.
type Option func(*Event)

// WithUserID attaches a user identifier to the event context.
func WithUserID(id string) Option {
	return func(e *Event) {
		e.Context.UserID = &id
	}
}

// WithRequestID attaches a request identifier to the event context.
func WithRequestID(id string) Option {
	return func(e *Event) {
		e.Context.RequestID = &id
	}
}

// WithExtraData attaches a free-form structured payload to the event
// context. The map is carried as-is; non-serializable values degrade to
// their string representation when rendered by the structured formatter.
func WithExtraData(data map[string]any) Option {
	return func(e *Event) {
		e.Context.ExtraData = data
	}
}

// WithError captures err as the event's exception info, including a
// stack trace. A nil err leaves the event unchanged.
func WithError(err error) Option {
	return func(e *Event) {
		if err == nil {
			return
		}
		e.Exception = captureException(err)
	}
}

// newEvent builds an event for the given logger name, severity and
// message, stamping it with the current time and the caller's source
// location. callerSkip counts stack frames above newEvent itself.
func newEvent(name string, severity Severity, message string, callerSkip int, opts ...Option) Event {
	e := Event{
		Timestamp: time.Now(),
		Severity:  severity,
		Logger:    name,
		Message:   message,
		Source:    captureSource(callerSkip + 1),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// captureSource resolves the call site skip frames above the caller.
func captureSource(skip int) SourceLocation {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return SourceLocation{}
	}

	loc := SourceLocation{
		Module: strings.TrimSuffix(filepath.Base(file), ".go"),
		Line:   line,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		loc.Function = name
	}
	return loc
}

// stackTracer is implemented by errors created or wrapped by pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// captureException renders err into exception info. Errors that already
// carry a pkg/errors stack keep their original capture point; plain
// errors are stamped with the stack of the logging call.
func captureException(err error) *ExceptionInfo {
	info := &ExceptionInfo{
		Kind:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	var tracer stackTracer
	if !errors.As(err, &tracer) {
		err = errors.WithStack(err)
	}
	info.Stack = fmt.Sprintf("%+v", err)

	return info
}

// render produces the exception text used by the structured formatter:
// the error type and message followed by the stack trace.
func (x *ExceptionInfo) render() string {
	return x.Kind + ": " + x.Message + "\n" + x.Stack
}
