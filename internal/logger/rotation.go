package logger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// logFilePermissions restricts log files to the owning user.
const logFilePermissions = 0o600

// defaultBufferSize is the bufio buffer for file writes (32KB batches
// well without excessive memory).
const defaultBufferSize = 32 * 1024

// defaultFlushInterval is how often buffered writes are flushed to the
// OS in the background.
const defaultFlushInterval = 5 * time.Second

// RotatingFileWriter is a size-bounded, append-only log file writer.
// When appending would push the active file past maxBytes, the current
// file is rolled into backup generations (name.1 is the newest, name.N
// the oldest; the oldest is deleted once backupCount is exceeded) and a
// fresh active file is opened. The write that triggered the rotation
// lands in the new file, so no event is ever lost to a roll.
//
// Writes are buffered and periodically flushed by a background
// goroutine; each Write is a single critical section covering both the
// rotation decision and the append, so concurrent writers can never
// interleave bytes or rotate twice.
type RotatingFileWriter struct {
	mu            sync.Mutex
	path          string
	maxBytes      int64
	backupCount   int
	file          *os.File
	writer        *bufio.Writer
	size          int64
	bufferSize    int
	stopFlush     chan struct{}
	flushDone     chan struct{}
	flushTicker   *time.Ticker
	flushDisabled bool
	closed        bool
}

// RotatingWriterOption configures a RotatingFileWriter.
type RotatingWriterOption func(*RotatingFileWriter)

// WithBufferSize sets the write buffer size.
func WithBufferSize(size int) RotatingWriterOption {
	return func(w *RotatingFileWriter) {
		if size > 0 {
			w.bufferSize = size
		}
	}
}

// WithFlushInterval sets the auto-flush interval. Pass 0 to disable
// background flushing.
func WithFlushInterval(interval time.Duration) RotatingWriterOption {
	return func(w *RotatingFileWriter) {
		if w.flushTicker != nil {
			w.flushTicker.Stop()
			w.flushTicker = nil
		}
		if interval > 0 {
			w.flushTicker = time.NewTicker(interval)
			w.flushDisabled = false
		} else {
			w.flushDisabled = true
		}
	}
}

// NewRotatingFileWriter opens path for appending and starts the
// auto-flush goroutine. maxBytes <= 0 disables rotation entirely;
// backupCount 0 means rotation truncates in place without keeping
// generations.
func NewRotatingFileWriter(path string, maxBytes int64, backupCount int, opts ...RotatingWriterOption) (*RotatingFileWriter, error) {
	w := &RotatingFileWriter{
		path:        path,
		maxBytes:    maxBytes,
		backupCount: backupCount,
		bufferSize:  defaultBufferSize,
		stopFlush:   make(chan struct{}),
		flushDone:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	// Resume size accounting from whatever is already on disk.
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat log file %s: %w", path, err)
	}

	w.file = file
	w.size = info.Size()
	w.writer = bufio.NewWriterSize(file, w.bufferSize)

	if w.flushTicker == nil && !w.flushDisabled {
		w.flushTicker = time.NewTicker(defaultFlushInterval)
	}
	if w.flushTicker != nil {
		go w.autoFlushLoop()
	} else {
		close(w.flushDone)
	}

	return w, nil
}

// autoFlushLoop periodically flushes buffered writes to the OS.
func (w *RotatingFileWriter) autoFlushLoop() {
	defer close(w.flushDone)

	for {
		select {
		case <-w.stopFlush:
			return
		case <-w.flushTicker.C:
			// Flush errors surface on the next Write.
			_ = w.Flush()
		}
	}
}

// Write appends p to the active file, rotating first if the append
// would exceed the size bound. Thread-safe.
func (w *RotatingFileWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return 0, errors.New("writer is closed")
	}

	if w.needsRotationLocked(len(p)) {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}

	n, err = w.writer.Write(p)
	w.size += int64(n)
	return n, err
}

// needsRotationLocked reports whether appending size more bytes would
// exceed the configured bound. Caller must hold the lock.
func (w *RotatingFileWriter) needsRotationLocked(size int) bool {
	return w.maxBytes > 0 && w.size+int64(size) > w.maxBytes
}

// rotateLocked rolls the active file into the backup chain and opens a
// fresh one. Caller must hold the lock.
func (w *RotatingFileWriter) rotateLocked() error {
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush before rotation: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close before rotation: %w", err)
	}

	if w.backupCount > 0 {
		// Drop the oldest generation, then shift the rest up one slot.
		oldest := fmt.Sprintf("%s.%d", w.path, w.backupCount)
		if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", oldest, err)
		}
		for i := w.backupCount - 1; i >= 1; i-- {
			src := fmt.Sprintf("%s.%d", w.path, i)
			dst := fmt.Sprintf("%s.%d", w.path, i+1)
			if err := os.Rename(src, dst); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to rotate %s: %w", src, err)
			}
		}
		if err := os.Rename(w.path, w.path+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate %s: %w", w.path, err)
		}
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to reopen log file %s: %w", w.path, err)
	}

	w.file = file
	w.size = 0
	w.writer.Reset(file)
	return nil
}

// Flush writes buffered data through to the OS. Thread-safe.
func (w *RotatingFileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *RotatingFileWriter) flushLocked() error {
	if w.writer == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	return nil
}

// syncLocked flushes and fsyncs. Caller must hold the lock.
func (w *RotatingFileWriter) syncLocked() error {
	if err := w.flushLocked(); err != nil {
		return err
	}
	if w.file != nil {
		if err := w.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync file: %w", err)
		}
	}
	return nil
}

// Close flushes, syncs and closes the underlying file, stopping the
// auto-flush goroutine. Close is idempotent.
func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}
	close(w.stopFlush)
	<-w.flushDone

	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	if err := w.syncLocked(); err != nil {
		errs = append(errs, err)
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close file: %w", err))
		}
		w.file = nil
	}
	w.writer = nil

	return errors.Join(errs...)
}

// FilePath returns the path of the active file.
func (w *RotatingFileWriter) FilePath() string {
	return w.path
}
