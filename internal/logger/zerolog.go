package logger

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ZerologAdapter wraps a zerolog.Logger with the component/message/fields
// shape the engine and pipeline log through. runID, once set via WithRun,
// is attached to every event this adapter emits, so log lines from
// concurrent batch runs can be told apart.
type ZerologAdapter struct {
	logger zerolog.Logger
	runID  string
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}
	return NewZerolog(consoleWriter, level)
}

// WithRun returns an adapter that stamps run_id on every event it emits
// from here on, so a batch processing many pages concurrently can
// attribute each log line to the despeckle invocation that produced it.
// The underlying zerolog.Logger is shared, not re-derived, since the
// run ID is applied per event rather than baked into the logger's
// context.
func (z *ZerologAdapter) WithRun(runID uuid.UUID) *ZerologAdapter {
	return &ZerologAdapter{logger: z.logger, runID: runID.String()}
}

// NewRunID generates a fresh run identifier for one despeckle invocation.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// tag stamps component, and run_id when this adapter carries one, onto
// every event every level method below emits.
func (z *ZerologAdapter) tag(event *zerolog.Event, component string) *zerolog.Event {
	event = event.Str("component", component)
	if z.runID != "" {
		event = event.Str("run_id", z.runID)
	}
	return event
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	event := z.tag(z.logger.Info(), component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	event := z.tag(z.logger.Error(), component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	event := z.tag(z.logger.Warn(), component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	event := z.tag(z.logger.Debug(), component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}
