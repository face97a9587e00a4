package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"ollamachat/internal/models"
)

var ErrGenerationInProgress = errors.New("a generation is already in progress")

// GenerationState is the process-wide record of the selected conversation and
// the in-flight generation. It is shared by the chat and session services.
type GenerationState struct {
	mu               sync.Mutex
	running          bool
	currentSessionID int64
	generationID     string
	cancel           context.CancelFunc
}

func NewGenerationState() *GenerationState {
	return &GenerationState{currentSessionID: models.NoSession}
}

func (s *GenerationState) CurrentSessionID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSessionID
}

func (s *GenerationState) SetCurrentSessionID(id int64) {
	s.mu.Lock()
	s.currentSessionID = id
	s.mu.Unlock()
}

// ClearSessionIf resets the selection only when it still points at id.
func (s *GenerationState) ClearSessionIf(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentSessionID != id {
		return false
	}
	s.currentSessionID = models.NoSession
	return true
}

func (s *GenerationState) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// begin marks a generation as running and installs its cancel handle.
func (s *GenerationState) begin(cancel context.CancelFunc) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return "", ErrGenerationInProgress
	}
	s.running = true
	s.generationID = uuid.NewString()
	s.cancel = cancel
	return s.generationID, nil
}

// finish clears the running flag unless another generation has since taken over.
func (s *GenerationState) finish(generationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generationID != generationID {
		return
	}
	s.running = false
	s.generationID = ""
	s.cancel = nil
}

// Abort signals the in-flight generation, if any, and always clears the
// running flag and handle. It reports whether a handle was signalled.
func (s *GenerationState) Abort() bool {
	s.mu.Lock()
	cancel := s.cancel
	s.running = false
	s.generationID = ""
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	return true
}
