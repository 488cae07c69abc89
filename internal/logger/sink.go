package logger

import (
	"io"
	"sync"
	"sync/atomic"
)

// Sink is an independent output destination: a minimum-severity filter,
// a fixed formatter and a writer. Events below the sink's threshold are
// dropped at the sink, not globally. Each sink serializes its own
// writes; distinct sinks never contend with each other.
type Sink struct {
	name        string
	minSeverity Severity
	formatter   Formatter

	mu     sync.Mutex
	writer io.Writer
	closer io.Closer

	// degraded tracks whether the last write failed, so the router
	// reports a failing sink once per transition to unhealthy.
	degraded atomic.Bool
}

// NewSink creates a sink writing formatted events at or above min to w.
// The sink does not take ownership of w; use newFileSink for writers
// the sink should close.
func NewSink(name string, min Severity, f Formatter, w io.Writer) *Sink {
	return &Sink{
		name:        name,
		minSeverity: min,
		formatter:   f,
		writer:      w,
	}
}

// newFileSink creates a sink that owns a rotating file writer and
// closes it when the sink is closed.
func newFileSink(name string, min Severity, f Formatter, w *RotatingFileWriter) *Sink {
	return &Sink{
		name:        name,
		minSeverity: min,
		formatter:   f,
		writer:      w,
		closer:      w,
	}
}

// Name returns the sink's identity, used in failure reporting.
func (s *Sink) Name() string {
	return s.name
}

// MinSeverity returns the sink's severity threshold.
func (s *Sink) MinSeverity() Severity {
	return s.minSeverity
}

// emit filters, formats and writes one event. The format-and-write
// sequence is a critical section so concurrent emissions cannot
// interleave bytes within this sink's output.
func (s *Sink) emit(e *Event) error {
	if e.Severity < s.minSeverity {
		return nil
	}

	line, err := s.formatter.Format(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.writer.Write(line)
	return err
}

// Flush forwards to the underlying writer when it buffers.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.writer.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close releases the underlying writer if it owns a resource. Console
// sinks wrap process-wide streams and have nothing to close.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
