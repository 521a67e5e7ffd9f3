package observability

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/delve/internal/config"
)

// SessionStartedMessage is the first line written to every event log.
const SessionStartedMessage = "=== Game session started ==="

// eventTimeLayout renders as "[2006-01-02 15:04:05]".
const eventTimeLayout = "[2006-01-02 15:04:05]"

// EventLog appends timestamped, human-readable game events to a file.
// Write failures are discarded; logging never interrupts the game.
type EventLog struct {
	logger *zap.Logger
	closer io.Closer
}

// NewEventLog opens cfg.Path in append mode and writes the session banner.
//
// Precondition: cfg.Path must be non-empty.
// Postcondition: Returns an EventLog that has already logged SessionStartedMessage,
// or a non-nil error if the file cannot be opened.
func NewEventLog(cfg config.EventLogConfig) (*EventLog, error) {
	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log %q: %w", cfg.Path, err)
	}
	el := NewEventLogWriter(zapcore.AddSync(f))
	el.closer = f
	return el, nil
}

// NewEventLogWriter builds an EventLog over an arbitrary sink.
// opts are applied to the underlying zap.Logger; tests use zap.WithClock.
//
// Postcondition: SessionStartedMessage has been written to ws.
func NewEventLogWriter(ws zapcore.WriteSyncer, opts ...zap.Option) *EventLog {
	encCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(eventTimeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, zapcore.InfoLevel)
	opts = append([]zap.Option{zap.ErrorOutput(zapcore.AddSync(io.Discard))}, opts...)

	el := &EventLog{logger: zap.New(core, opts...)}
	el.Log(SessionStartedMessage)
	return el
}

// NewNopEventLog returns an EventLog that discards every event.
func NewNopEventLog() *EventLog {
	return &EventLog{logger: zap.NewNop()}
}

// Log records one event line.
func (e *EventLog) Log(message string) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Info(message)
}

// Close flushes and closes the underlying file, if any.
func (e *EventLog) Close() error {
	if e == nil || e.logger == nil {
		return nil
	}
	_ = e.logger.Sync()
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}
