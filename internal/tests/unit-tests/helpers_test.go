package unit_tests

import (
	"context"
	"sync"
	"testing"

	"ollamachat/internal/events"
)

// eventRecorder captures emitted events for the duration of a test.
type eventRecorder struct {
	mu     sync.Mutex
	names  []string
	chunks chan string
}

func recordEvents(t *testing.T) *eventRecorder {
	t.Helper()
	r := &eventRecorder{chunks: make(chan string, 64)}
	events.SetCustomEmitter(func(ctx context.Context, name string, evt events.ChatEvent) {
		r.mu.Lock()
		r.names = append(r.names, name)
		r.mu.Unlock()
		if name == events.ChatChunk {
			select {
			case r.chunks <- evt.Content:
			default:
			}
		}
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })
	return r
}

func (r *eventRecorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}
