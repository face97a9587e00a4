package services

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"ollamachat/internal/events"
	"ollamachat/internal/models"
	"ollamachat/internal/repositories"
)

type ChatSessionService interface {
	Startup(ctx context.Context)
	LoadChatSessions() ([]models.ChatSession, error)
	UpdateChatSessionName(id int64, name string) error
	DeleteChatSession(id int64) error
}

type chatSessionService struct {
	sessions repositories.ChatSessionRepository
	state    *GenerationState
	context  context.Context
}

func NewChatSessionService(sessions repositories.ChatSessionRepository, state *GenerationState) ChatSessionService {
	return &chatSessionService{sessions: sessions, state: state}
}

func (s *chatSessionService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *chatSessionService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

// LoadChatSessions returns all conversations, newest first.
func (s *chatSessionService) LoadChatSessions() ([]models.ChatSession, error) {
	sessions, err := s.sessions.List(s.ctx())
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	return sessions, nil
}

type renameInput struct {
	Name string `validate:"required,max=255"`
}

func (s *chatSessionService) UpdateChatSessionName(id int64, name string) error {
	in := renameInput{Name: strings.TrimSpace(name)}
	if err := validate.Struct(in); err != nil {
		return validationError(err)
	}
	if err := s.sessions.Rename(s.ctx(), id, in.Name); err != nil {
		return err
	}
	events.Emit(events.WithSession(s.ctx(), id), events.SessionsChanged, events.NewInfo("session renamed"))
	return nil
}

// DeleteChatSession removes the conversation and its messages. The current
// selection is cleared when it pointed at id.
func (s *chatSessionService) DeleteChatSession(id int64) error {
	if err := s.sessions.Delete(s.ctx(), id); err != nil {
		return err
	}
	if s.state.ClearSessionIf(id) {
		zlog.Debug().Str("component", "sessions").Int64("session_id", id).Msg("cleared current session after delete")
	}
	events.Emit(events.WithSession(s.ctx(), id), events.SessionsChanged, events.NewInfo("session deleted"))
	return nil
}
