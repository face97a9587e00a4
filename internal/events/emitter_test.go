package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCustomEmitter_ScopesFromContext(t *testing.T) {
	var gotName string
	var got ChatEvent
	SetCustomEmitter(func(ctx context.Context, name string, evt ChatEvent) {
		gotName = name
		got = evt
	})
	t.Cleanup(func() { SetCustomEmitter(nil) })

	ctx := WithGeneration(WithSession(context.Background(), 7), "gen-1")
	Emit(ctx, ChatChunk, NewChunk("hello"))

	assert.Equal(t, ChatChunk, gotName)
	assert.Equal(t, EventChunk, got.Type)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, int64(7), got.SessionID)
	assert.Equal(t, "gen-1", got.GenerationID)
	require.NotEmpty(t, got.ID)
}

func TestSetCustomEmitter_KeepsExplicitSession(t *testing.T) {
	var got ChatEvent
	SetCustomEmitter(func(ctx context.Context, name string, evt ChatEvent) { got = evt })
	t.Cleanup(func() { SetCustomEmitter(nil) })

	evt := NewSuccess("done")
	evt.SessionID = 3
	Emit(WithSession(context.Background(), 9), ChatDone, evt)
	assert.Equal(t, int64(3), got.SessionID)
}

func TestWithSession_IgnoresSentinel(t *testing.T) {
	ctx := WithSession(context.Background(), -1)
	assert.Equal(t, int64(0), SessionFromContext(ctx))
	assert.Equal(t, int64(0), SessionFromContext(nil))
}
