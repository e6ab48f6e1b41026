package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// NopLogger discards everything. Library callers that do not care about
// logging pass it where a Logger is required.
type NopLogger struct{}

func (NopLogger) Debug(string, string, map[string]interface{})   {}
func (NopLogger) Info(string, string, map[string]interface{})    {}
func (NopLogger) Warning(string, string, map[string]interface{}) {}
func (NopLogger) Error(string, error, map[string]interface{})    {}

// ParseLevel maps debug, info, warn and error to zerolog levels. An empty
// string means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
