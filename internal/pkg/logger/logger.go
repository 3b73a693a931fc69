// Package logger provides structured JSON logging with redaction of
// customer PII and secrets. Contact submissions are logged rather than
// persisted, so the log stream is the system of record for them: every
// handler and service should log through this package, never raw emails
// or tokens through the stdlib log.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// Logger emits structured JSON log lines.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	redact bool
}

var defaultLogger = &Logger{out: os.Stderr, level: INFO, redact: true}

// SetLevel sets the minimum level for the default logger.
func SetLevel(l Level) { defaultLogger.level = l }

// SetRedact enables or disables PII/secret redaction for the default logger.
// Redaction is on by default; only disable it in local development.
func SetRedact(r bool) { defaultLogger.redact = r }

// SetOutput redirects the default logger, primarily for tests.
func SetOutput(w io.Writer) { defaultLogger.out = w }

// Debug emits a DEBUG-level entry with key/value fields.
func Debug(msg string, fields ...any) { defaultLogger.log(DEBUG, msg, fields...) }

// Info emits an INFO-level entry with key/value fields.
func Info(msg string, fields ...any) { defaultLogger.log(INFO, msg, fields...) }

// Warn emits a WARN-level entry with key/value fields.
func Warn(msg string, fields ...any) { defaultLogger.log(WARN, msg, fields...) }

// Error emits an ERROR-level entry with key/value fields.
func Error(msg string, fields ...any) { defaultLogger.log(ERROR, msg, fields...) }

func (l *Logger) log(level Level, msg string, fields ...any) {
	if level < l.level {
		return
	}

	entry := map[string]any{
		"time":  time.Now().UTC().Format(time.RFC3339),
		"level": levelNames[level],
		"msg":   msg,
	}

	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		val := fmt.Sprintf("%v", fields[i+1])
		if l.redact {
			val = redactValue(key, val)
		}
		entry[key] = val
	}

	data, _ := json.Marshal(entry)
	l.mu.Lock()
	fmt.Fprintln(l.out, string(data))
	l.mu.Unlock()
}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// secretKeys are field names whose values are never logged in full:
// captcha tokens, payment source tokens, API credentials.
var secretKeys = []string{"token", "secret", "source_id", "api_key", "authorization"}

func redactValue(key, val string) string {
	lower := strings.ToLower(key)
	for _, sk := range secretKeys {
		if strings.Contains(lower, sk) {
			return RedactToken(val)
		}
	}
	if strings.Contains(lower, "email") {
		return RedactEmail(val)
	}
	// Catch emails embedded in free-text fields (e.g. contact messages).
	return emailRegex.ReplaceAllStringFunc(val, RedactEmail)
}
