package httpclient

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Logger provides structured logging for outbound API calls.
type Logger interface {
	// LogRequest logs an outgoing API request (token redacted)
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse logs an API response with timing info
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError logs an API error
	LogError(ctx context.Context, err ErrorLog)
}

// RequestLog contains request information for logging.
type RequestLog struct {
	API       string
	Method    string
	Path      string
	Timestamp time.Time
	Token     string // Will be redacted to last 4 chars
}

// ResponseLog contains response information for logging.
type ResponseLog struct {
	API        string
	Method     string
	Path       string
	Timestamp  time.Time
	Duration   time.Duration
	StatusCode int
}

// ErrorLog contains error information for logging.
type ErrorLog struct {
	API        string
	Method     string
	Path       string
	Timestamp  time.Time
	Duration   time.Duration
	Error      error
	ErrorType  ErrorType
	StatusCode int
	Retryable  bool
}

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// DefaultLogger writes logs in structured format to stderr via the standard
// log package.
type DefaultLogger struct {
	level        LogLevel
	redactTokens bool
	format       LogFormat
}

// NewDefaultLogger creates a logger with the specified config.
func NewDefaultLogger(level LogLevel, format LogFormat, redactTokens bool) *DefaultLogger {
	return &DefaultLogger{
		level:        level,
		redactTokens: redactTokens,
		format:       format,
	}
}

// SetRedaction enables or disables token redaction.
func (l *DefaultLogger) SetRedaction(enabled bool) {
	l.redactTokens = enabled
}

// LogRequest logs an API request.
func (l *DefaultLogger) LogRequest(ctx context.Context, req RequestLog) {
	if l.level > LogLevelDebug {
		return
	}

	redacted := l.RedactToken(req.Token)

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"debug","type":"request","api":"%s","method":"%s","path":"%s","timestamp":"%s","token":"%s"}`,
			req.API, req.Method, req.Path, req.Timestamp.Format(time.RFC3339), redacted)
	} else {
		log.Printf("[DEBUG] %s: %s %s (token=%s)",
			req.API, req.Method, req.Path, redacted)
	}
}

// LogResponse logs an API response.
func (l *DefaultLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"info","type":"response","api":"%s","method":"%s","path":"%s","timestamp":"%s","duration_ms":%d,"status_code":%d}`,
			resp.API, resp.Method, resp.Path, resp.Timestamp.Format(time.RFC3339),
			resp.Duration.Milliseconds(), resp.StatusCode)
	} else {
		log.Printf("[INFO] %s: %s %s -> %d (duration=%.1fs)",
			resp.API, resp.Method, resp.Path, resp.StatusCode, resp.Duration.Seconds())
	}
}

// LogError logs an API error.
func (l *DefaultLogger) LogError(ctx context.Context, err ErrorLog) {
	if l.level > LogLevelError {
		return
	}

	retryableStr := "non-retryable"
	if err.Retryable {
		retryableStr = "retryable"
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"error","type":"error","api":"%s","method":"%s","path":"%s","timestamp":"%s","duration_ms":%d,"error":"%s","error_type":%d,"status_code":%d,"retryable":%t}`,
			err.API, err.Method, err.Path, err.Timestamp.Format(time.RFC3339),
			err.Duration.Milliseconds(), err.Error.Error(), err.ErrorType,
			err.StatusCode, err.Retryable)
	} else {
		log.Printf("[ERROR] %s: %s %s failed (status=%d, %s): %v",
			err.API, err.Method, err.Path, err.StatusCode, retryableStr, err.Error)
	}
}

// EventLogger logs free-form structured events outside the request/response
// cycle.
type EventLogger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

// LogInfo logs an informational event with structured fields.
func (l *DefaultLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelInfo {
		return
	}
	l.logEvent("info", "INFO", message, fields)
}

// LogWarning logs a warning event with structured fields.
func (l *DefaultLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelError {
		return
	}
	l.logEvent("warning", "WARN", message, fields)
}

func (l *DefaultLogger) logEvent(jsonLevel, humanLevel, message string, fields map[string]interface{}) {
	if l.format == LogFormatJSON {
		log.Printf(`{"level":"%s","type":"event","message":"%s","fields":%s}`,
			jsonLevel, message, formatFieldsJSON(fields))
		return
	}
	if len(fields) == 0 {
		log.Printf("[%s] %s", humanLevel, message)
		return
	}
	log.Printf("[%s] %s %s", humanLevel, message, formatFieldsHuman(fields))
}

func formatFieldsJSON(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return "{}"
	}
	keys := sortedKeys(fields)
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `"%s":"%v"`, k, fields[k])
	}
	sb.WriteString("}")
	return sb.String()
}

func formatFieldsHuman(fields map[string]interface{}) string {
	keys := sortedKeys(fields)
	var sb strings.Builder
	sb.WriteString("(")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, fields[k])
	}
	sb.WriteString(")")
	return sb.String()
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RedactToken shows only the last 4 characters of an API token with explicit
// redaction markers.
func (l *DefaultLogger) RedactToken(token string) string {
	if !l.redactTokens {
		return token
	}
	if len(token) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", token[len(token)-4:])
}
