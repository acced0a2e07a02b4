package core

import (
	"python-versions/internal/ports"
	"python-versions/internal/types"
)

// RecordingObserver keeps every event in memory.
type RecordingObserver struct {
	Events []types.CheckEvent
}

func (o *RecordingObserver) Observe(event types.CheckEvent) {
	o.Events = append(o.Events, event)
}

func observe(observer ports.ObserverPort, level types.EventLevel, pkg string, message string) {
	if observer == nil {
		return
	}
	observer.Observe(types.CheckEvent{Level: level, Package: pkg, Message: message})
}

var _ ports.ObserverPort = (*RecordingObserver)(nil)
