package errors

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	// LogLevelError logs only errors.
	LogLevelError LogLevel = iota
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn
	// LogLevelInfo logs info, warnings, and errors.
	LogLevelInfo
	// LogLevelDebug logs everything including debug messages.
	LogLevelDebug
)

// String returns the string representation of LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger provides leveled stderr logging with verbose mode support.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	level  LogLevel
}

var defaultLogger = &Logger{
	output: os.Stderr,
	level:  LogLevelWarn,
}

// SetVerbose switches the default logger between warn and debug level.
func SetVerbose(verbose bool) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	if verbose {
		defaultLogger.level = LogLevelDebug
	} else {
		defaultLogger.level = LogLevelWarn
	}
}

// SetOutput redirects the default logger, used by tests.
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.output = w
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level > l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.output, "[%s] %s %s\n",
		level.String(),
		time.Now().Format("15:04:05"),
		SanitizeErrorMessage(msg))
}

// Error logs an error-level message.
func Error(format string, args ...interface{}) {
	defaultLogger.log(LogLevelError, format, args...)
}

// Warn logs a warning-level message.
func Warn(format string, args ...interface{}) {
	defaultLogger.log(LogLevelWarn, format, args...)
}

// Info logs an info-level message.
func Info(format string, args ...interface{}) {
	defaultLogger.log(LogLevelInfo, format, args...)
}

// Debug logs a debug-level message.
func Debug(format string, args ...interface{}) {
	defaultLogger.log(LogLevelDebug, format, args...)
}

// LogAPIRequest logs an outbound generation request. Credentials are never
// passed to this function; only sizes and identifiers are recorded.
func LogAPIRequest(provider, endpoint, model string, promptLen int) {
	Debug("api request: provider=%s endpoint=%s model=%s prompt_bytes=%d",
		provider, endpoint, model, promptLen)
}

// LogAPIResponse logs the completion of a generation request.
func LogAPIResponse(provider string, status int, responseLen int, duration time.Duration) {
	Debug("api response: provider=%s status=%d response_bytes=%d duration=%s",
		provider, status, responseLen, duration)
}
