package adapters

import (
	"github.com/rs/zerolog"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

// LogObserverAdapter forwards check events to a zerolog logger.
type LogObserverAdapter struct {
	Logger zerolog.Logger
}

func NewLogObserverAdapter(logger zerolog.Logger) LogObserverAdapter {
	return LogObserverAdapter{Logger: logger}
}

func (a LogObserverAdapter) Observe(event types.CheckEvent) {
	var entry *zerolog.Event
	switch event.Level {
	case types.EventLevelDebug:
		entry = a.Logger.Debug()
	case types.EventLevelWarn:
		entry = a.Logger.Warn()
	case types.EventLevelError:
		entry = a.Logger.Error()
	default:
		entry = a.Logger.Info()
	}
	if event.Package != "" {
		entry = entry.Str("package", event.Package)
	}
	entry.Msg(event.Message)
}

var _ ports.ObserverPort = LogObserverAdapter{}
