package form

import "log"

// EventSink receives analytics events from the machine. Implementations
// forward to whatever tracking layer the page uses; the machine never
// touches ambient global state.
type EventSink interface {
	Record(event string, attrs map[string]string)
}

// LogSink writes events to the standard logger.
type LogSink struct{}

func (LogSink) Record(event string, attrs map[string]string) {
	log.Printf("event %s %v", event, attrs)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(string, map[string]string) {}
