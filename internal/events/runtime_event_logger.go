package events

import (
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func logRuntimeEvent(name string, event ChatEvent) {
	var e *zerolog.Event
	switch event.Type {
	case EventChunk:
		e = zlog.Trace().Int("bytes", len(event.Content))
	case EventError:
		e = zlog.Error()
	case EventWarn:
		e = zlog.Warn()
	default:
		e = zlog.Info()
	}
	for k, v := range event.Metadata {
		e = e.Str(k, v)
	}
	e.Str("component", "events").
		Str("event", name).
		Str("id", event.ID).
		Int64("session_id", event.SessionID).
		Str("generation_id", event.GenerationID).
		Msg(event.Message)
}
