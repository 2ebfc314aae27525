package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// TelemetryStatus classifies how a command run ended.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	TelemetryStatusFailed  TelemetryStatus = "failed"
	// TelemetryStatusContextError covers cancellation and deadlines.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one finished command run.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked after every run in place of the default log line.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs the outcome of every run, with its duration, on logger.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logger
		if info.Fields != nil {
			entry = logging.WithFields(entry, info.Fields)
		}
		logOutcome(entry, info.Status, info.Error, "duration_ms", info.Duration.Milliseconds())
	}
}

// logOutcome writes command.execute.<status>; failures log at error level.
func logOutcome(logger interfaces.Logger, status TelemetryStatus, err error, args ...any) {
	event := "command.execute." + string(status)
	if status == TelemetryStatusSuccess {
		logger.Info(event, args...)
		return
	}
	logger.Error(event, append(args, "error", err)...)
}
