package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit is a no-op until EnableRuntimeEmitter or SetCustomEmitter is called.
var Emit = func(ctx context.Context, name string, evt ChatEvent) {}

func scope(ctx context.Context, evt ChatEvent) ChatEvent {
	if evt.SessionID == 0 {
		evt.SessionID = SessionFromContext(ctx)
	}
	if evt.GenerationID == "" {
		evt.GenerationID = GenerationFromContext(ctx)
	}
	return evt
}

// EnableRuntimeEmitter forwards events to the Wails frontend. ctx passed to
// Emit must descend from the Wails startup context.
func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt ChatEvent) {
		evt = scope(ctx, evt)
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt ChatEvent)) {
	if f == nil {
		Emit = func(context.Context, string, ChatEvent) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt ChatEvent) {
		f(ctx, name, scope(ctx, evt))
	}
}
