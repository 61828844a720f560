// internal/platform/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const redactedValue = "[REDACTED]"

// Key fragments whose values never reach the log output.
var sensitiveKeyParts = []string{"secret", "private", "seed", "password", "passphrase", "authorization"}

var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the global logger on stdout. Production writes JSON lines,
// anything else writes the coloured console format.
func Init(env string, debug bool) {
	configure(env, debug, os.Stdout, true)
}

// InitWithWriter is Init with a caller supplied writer. Console output is
// never coloured.
func InitWithWriter(env string, debug bool, w io.Writer) {
	configure(env, debug, w, false)
}

func configure(env string, debug bool, w io.Writer, color bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := w
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !color}
	}
	Log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func Debug(msg string, keyValues ...interface{}) {
	withFields(Log.Debug(), keyValues).Msg(msg)
}

func Info(msg string, keyValues ...interface{}) {
	withFields(Log.Info(), keyValues).Msg(msg)
}

func Warn(msg string, keyValues ...interface{}) {
	withFields(Log.Warn(), keyValues).Msg(msg)
}

func Error(msg string, err error, keyValues ...interface{}) {
	withFields(Log.Error().Err(err), keyValues).Msg(msg)
}

func Fatal(msg string, err error, keyValues ...interface{}) {
	withFields(Log.Fatal().Err(err), keyValues).Msg(msg)
}

// Redact returns keyValues with sensitive values replaced. A dangling key
// without value is kept as-is.
func Redact(keyValues ...interface{}) []interface{} {
	if len(keyValues) == 0 {
		return nil
	}
	out := make([]interface{}, 0, len(keyValues))
	for i := 0; i < len(keyValues); i++ {
		key, ok := keyValues[i].(string)
		if !ok || i+1 >= len(keyValues) {
			out = append(out, keyValues[i])
			continue
		}
		value := keyValues[i+1]
		i++
		if isSensitiveKey(key) {
			out = append(out, key, redactedValue)
			continue
		}
		out = append(out, key, value)
	}
	return out
}

func withFields(e *zerolog.Event, keyValues []interface{}) *zerolog.Event {
	if e == nil {
		return e
	}
	kv := Redact(keyValues...)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			e = e.Str("EXTRA_VALUE_AT_END", key)
			break
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, part := range sensitiveKeyParts {
		if strings.Contains(k, part) {
			return true
		}
	}
	return false
}
