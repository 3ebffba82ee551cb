package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerolog wraps a zerolog logger writing to the given writer.
func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

// NewFromEnv builds the process logger from environment toggles:
// CHROMA_JSON_LOGS=true selects raw JSON output, CHROMA_DEBUG=true
// lowers the level to debug. Defaults to console output at info.
func NewFromEnv() *ZerologAdapter {
	level := zerolog.InfoLevel
	if os.Getenv("CHROMA_DEBUG") == "true" {
		level = zerolog.DebugLevel
	}

	if os.Getenv("CHROMA_JSON_LOGS") == "true" {
		return NewZerolog(os.Stdout, level)
	}
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stdout}, level)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	event := z.logger.Debug().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	event := z.logger.Info().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	event := z.logger.Warn().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	event := z.logger.Error().Str("component", component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("operation failed")
}
