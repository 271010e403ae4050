// Package logger owns the GL log file: it truncates it at startup, writes the
// session header and hands out a zap logger whose error lines are mirrored to
// stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"hellotriangle/internal/writer"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const headerFormat = "GL_LOG_FILE log. local time %s\n\n"

// Archiver keeps a copy of the previous log before Reset truncates it.
type Archiver interface {
	Archive(src string) (bool, error)
}

// Reset creates or truncates the log file at path and writes the header
// line followed by a blank line. If archiver is non-nil the old contents are
// handed to it first; an archive failure is reported to warn (os.Stderr when
// nil) and does not stop the reset.
func Reset(path string, now time.Time, archiver Archiver, warn io.Writer) error {
	const op = "logger.Reset"

	if archiver != nil {
		if _, err := archiver.Archive(path); err != nil {
			if warn == nil {
				warn = os.Stderr
			}
			fmt.Fprintf(warn, "WARNING: previous log not archived: %s\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%s: could not open %s for writing: %w", op, path, err)
	}

	_, err = fmt.Fprintf(f, headerFormat, now.Format(time.ANSIC))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: write header: %w", op, err)
	}

	return nil
}

type Options struct {
	// Buffered batches file writes and flushes them on Close.
	Buffered bool
	// Stderr receives error-level lines; os.Stderr when nil.
	Stderr io.Writer
}

type Logger struct {
	zl  *zap.Logger
	rec *recorder

	buffered *zapcore.BufferedWriteSyncer
}

// New returns a Logger appending to the file at path. It does not touch the
// file until the first line is written.
func New(path string, opts Options) *Logger {
	rec := &recorder{ws: writer.NewAppendWriter(path)}

	var (
		fileWS   zapcore.WriteSyncer = rec
		buffered *zapcore.BufferedWriteSyncer
	)
	if opts.Buffered {
		buffered = &zapcore.BufferedWriteSyncer{WS: rec}
		fileWS = buffered
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(fileEncoderConfig()), fileWS, zap.DebugLevel),
		stderrCore(opts.Stderr),
	)

	return &Logger{zl: zap.New(core), rec: rec, buffered: buffered}
}

// NewStderr returns a Logger that only writes error lines to stderr. It is
// the fallback when the log file cannot be reset.
func NewStderr(w io.Writer) *Logger {
	return &Logger{zl: zap.New(stderrCore(w)), rec: &recorder{}}
}

func stderrCore(w io.Writer) zapcore.Core {
	if w == nil {
		w = os.Stderr
	}

	cfg := zapcore.EncoderConfig{
		MessageKey:  "msg",
		LevelKey:    "level",
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}

	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), zap.ErrorLevel)
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeTime:     zapcore.TimeEncoderOfLayout(time.TimeOnly),
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Log appends msg to the log file.
func (l *Logger) Log(msg string) error {
	l.zl.Info(msg)
	return l.rec.take()
}

// Error appends msg to the log file and writes it to stderr.
func (l *Logger) Error(msg string) error {
	l.zl.Error(msg)
	return l.rec.take()
}

func (l *Logger) Close() error {
	if l.buffered != nil {
		if err := l.buffered.Stop(); err != nil {
			return err
		}
	}

	// Syncing an unsyncable stderr is reported by some platforms; ignore it.
	_ = l.zl.Sync()

	return nil
}

// recorder remembers the last write error so Log and Error can return it.
type recorder struct {
	mu  sync.Mutex
	ws  zapcore.WriteSyncer
	err error
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.ws == nil {
		return len(p), nil
	}

	n, err := r.ws.Write(p)

	r.mu.Lock()
	if err != nil {
		r.err = err
	}
	r.mu.Unlock()

	return n, err
}

func (r *recorder) Sync() error {
	if r.ws == nil {
		return nil
	}
	return r.ws.Sync()
}

func (r *recorder) take() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.err
	r.err = nil
	return err
}
