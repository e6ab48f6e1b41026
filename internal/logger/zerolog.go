package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

// NewConsoleLogger writes human-readable lines to stderr so stdout stays
// free for command output.
func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Info().Str("component", component), fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	withFields(z.logger.Error().Str("component", component).Err(err), fields).Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Warn().Str("component", component), fields).Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Debug().Str("component", component), fields).Msg(message)
}

func withFields(event *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}
