// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Package log implements the ambient diagnostic channel used throughout
// tracecore. It is the only place the SDK writes operator-facing text: a
// small, pluggable, level-gated logger with throttled error reporting so a
// misbehaving exporter or carrier can't flood a host's logs.
package log

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Logger implements message logging for tracecore. It is the interface that
// should be implemented to provide an alternative logger for this package to
// use.
type Logger interface {
	// Log prints the given message.
	Log(msg string)
}

// DiscardLogger discards all logging messages.
type DiscardLogger struct{}

// Log implements Logger.
func (DiscardLogger) Log(msg string) {}

const prefixMsg = "tracecore"

// LoggerFile is the name of the file created via OpenFileAtPath.
const LoggerFile = "tracecore.log"

var (
	mu     sync.RWMutex
	logger Logger = &defaultLogger{l: log.New(os.Stderr, "", log.LstdFlags)}

	levelThreshold Level = LevelWarn

	filterMu sync.RWMutex
	filter   func(string) bool
)

// Level represents the current log level.
type Level int

const (
	// LevelWarn represents Warn, Error level log messages.
	LevelWarn Level = iota
	// LevelDebug represents Debug, Info, Warn and Error level log messages.
	LevelDebug
)

// UseLogger sets l as the logger for all tracer logs. It returns a function
// that can be used to restore the previous logger.
func UseLogger(l Logger) (undo func()) {
	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = old
		mu.Unlock()
	}
}

func getLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLevel sets the given lvl for logging.
func SetLevel(lvl Level) { levelThreshold = lvl }

// DebugEnabled returns true if debug log messages are enabled.
func DebugEnabled() bool { return levelThreshold >= LevelDebug }

// SetFilter installs f as a predicate that may suppress a formatted log
// line before it reaches the active Logger. A nil f disables filtering.
func SetFilter(f func(string) bool) {
	filterMu.Lock()
	filter = f
	filterMu.Unlock()
}

func suppressed(formatted string) bool {
	filterMu.RLock()
	f := filter
	filterMu.RUnlock()
	return f != nil && !f(formatted)
}

func formatLine(lvl, m string) string {
	return fmt.Sprintf("%s %s: %s", prefixMsg, lvl, m)
}

// Debug prints the given message if the debug log level is enabled.
func Debug(format string, a ...interface{}) {
	if !DebugEnabled() {
		return
	}
	m := fmt.Sprintf(format, a...)
	if suppressed(m) {
		return
	}
	getLogger().Log(formatLine("DEBUG", m))
}

// Info prints the given message if the debug log level is enabled.
func Info(format string, a ...interface{}) {
	if !DebugEnabled() {
		return
	}
	m := fmt.Sprintf(format, a...)
	if suppressed(m) {
		return
	}
	getLogger().Log(formatLine("INFO", m))
}

// Warn prints a warning message.
func Warn(format string, a ...interface{}) {
	m := fmt.Sprintf(format, a...)
	if suppressed(m) {
		return
	}
	getLogger().Log(formatLine("WARN", m))
}

// defaultErrorLimit specifies the maximum number of errors that will be
// grouped under a single suppressed-message summary before showing a "+"
// suffix instead of an exact count.
const defaultErrorLimit = 200

// errrate specifies the rate at which identically-formatted error messages
// are allowed to surface; repeats within the window are counted and folded
// into a single summary line. It is set through setLoggingRate, which
// takes a whole number of seconds.
var errrate = time.Minute

type errCount struct {
	msg string
	n   int
}

var (
	errMu  sync.Mutex
	errBuf = map[string]*errCount{}
)

// Error prints the given error message, throttling repeats of identically
// formatted messages to at most one per errrate window.
func Error(format string, a ...interface{}) {
	if errrate <= 0 {
		m := fmt.Sprintf(format, a...)
		if !suppressed(m) {
			getLogger().Log(formatLine("ERROR", m))
		}
		return
	}
	errMu.Lock()
	e, ok := errBuf[format]
	if !ok {
		e = &errCount{msg: fmt.Sprintf(format, a...)}
		errBuf[format] = e
		errMu.Unlock()
		time.AfterFunc(errrate, func() { flushKey(format) })
		return
	}
	if e.n < defaultErrorLimit {
		e.n++
	}
	errMu.Unlock()
}

func formatSuppressed(e *errCount) string {
	if e.n == 0 {
		return e.msg
	}
	n := strconv.Itoa(e.n)
	if e.n >= defaultErrorLimit {
		n = strconv.Itoa(defaultErrorLimit) + "+"
	}
	return fmt.Sprintf("%s, %s additional messages skipped", e.msg, n)
}

func flushKey(key string) {
	errMu.Lock()
	e, ok := errBuf[key]
	if ok {
		delete(errBuf, key)
	}
	errMu.Unlock()
	if !ok {
		return
	}
	if !suppressed(e.msg) {
		getLogger().Log(formatLine("ERROR", formatSuppressed(e)))
	}
}

// Flush forces the immediate emission of any pending throttled error
// messages, bypassing the errrate window. Callers that are about to exit
// (e.g. on Shutdown) should call this so nothing is lost to a pending timer.
func Flush() {
	errMu.Lock()
	keys := make([]string, 0, len(errBuf))
	for k := range errBuf {
		keys = append(keys, k)
	}
	errMu.Unlock()
	for _, k := range keys {
		flushKey(k)
	}
}

// setLoggingRate configures errrate from a string, falling back to the
// one-minute default on any unparseable or negative value.
func setLoggingRate(s string) {
	if s == "" {
		errrate = time.Minute
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		errrate = time.Minute
		return
	}
	errrate = time.Duration(n) * time.Second
}

// defaultLogger wraps the standard library logger.
type defaultLogger struct{ l *log.Logger }

func (d *defaultLogger) Log(m string) { d.l.Print(m) }

// RecordLogger records the messages sent to it, optionally filtering out
// lines containing any of the substrings passed to Ignore. It is meant for
// use in tests.
type RecordLogger struct {
	mu      sync.Mutex
	lines   []string
	ignored []string
}

var _ Logger = (*RecordLogger)(nil)

// Ignore adds substr to the set of substrings that cause a message to be
// dropped rather than recorded.
func (r *RecordLogger) Ignore(substr ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ignored = append(r.ignored, substr...)
}

// Log implements Logger.
func (r *RecordLogger) Log(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.ignored {
		if strings.Contains(m, s) {
			return
		}
	}
	r.lines = append(r.lines, m)
}

// Logs returns a copy of the recorded messages.
func (r *RecordLogger) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset clears both the recorded messages and the ignore list.
func (r *RecordLogger) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
	r.ignored = nil
}

// fileLogger writes log lines to a file on disk.
type fileLogger struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// OpenFileAtPath opens (creating if necessary) LoggerFile inside dir for
// appending, installs a Logger backed by it as the active logger, and
// returns that Logger.
func OpenFileAtPath(dir string) (*fileLogger, error) {
	fp := filepath.Join(dir, LoggerFile)
	f, err := os.OpenFile(fp, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	fl := &fileLogger{file: f}
	UseLogger(fl)
	return fl, nil
}

// Log implements Logger.
func (f *fileLogger) Log(m string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	fmt.Fprintln(f.file, m)
}

// Close closes the underlying file. It is safe to call concurrently and
// more than once.
func (f *fileLogger) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.file.Close()
	f.closed = true
}
