package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"ollamachat/internal/events"
	"ollamachat/internal/llm/ollama"
	"ollamachat/internal/models"
	"ollamachat/internal/repositories"
)

// CancellationMarker is appended to the reply when a generation is aborted.
const CancellationMarker = "\n\nCancelled\n"

// ModelClient is the subset of the model server API the services rely on.
type ModelClient interface {
	ListModels(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, model, prompt string) (*schema.StreamReader[ollama.Fragment], error)
	Chat(ctx context.Context, model string, messages []*schema.Message) (*schema.StreamReader[ollama.Fragment], error)
}

type ChatService interface {
	Startup(ctx context.Context)
	GenerateChat(prompt, model string) (string, error)
	AbortGeneration() error
	IsGenerating() bool
	GetCurrentSession() (*models.CurrentSession, error)
	SetCurrentSession(id int64) error
	ClearCurrentSession() error
	LoadChatHistory() ([]models.ChatMessage, error)
}

type chatService struct {
	client   ModelClient
	sessions repositories.ChatSessionRepository
	messages repositories.ChatMessageRepository
	state    *GenerationState
	context  context.Context
}

func NewChatService(
	client ModelClient,
	sessions repositories.ChatSessionRepository,
	messages repositories.ChatMessageRepository,
	state *GenerationState,
) ChatService {
	return &chatService{
		client:   client,
		sessions: sessions,
		messages: messages,
		state:    state,
	}
}

func (s *chatService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *chatService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

// GenerateChat sends prompt to model within the current conversation, creating
// one first when none is selected. The reply is streamed to the UI as events
// and returned once complete or aborted.
func (s *chatService) GenerateChat(prompt, model string) (string, error) {
	base := s.ctx()
	genCtx, cancel := context.WithCancel(base)
	defer cancel()

	generationID, err := s.state.begin(cancel)
	if err != nil {
		return "", err
	}
	defer s.state.finish(generationID)

	genCtx = events.WithGeneration(genCtx, generationID)
	logger := zlog.With().
		Str("component", "chat").
		Str("generation_id", generationID).
		Str("model", model).
		Logger()

	sessionID := s.state.CurrentSessionID()
	if !models.IsValidSessionID(sessionID) {
		// an abort must not lose the prompt, so the session is always resolved
		sessionID, err = s.startSession(context.WithoutCancel(genCtx), prompt, model)
		if err != nil {
			return "", s.fail(genCtx, logger, err)
		}
		s.state.SetCurrentSessionID(sessionID)
	}
	genCtx = events.WithSession(genCtx, sessionID)
	// storage must outlive an abort
	storeCtx := context.WithoutCancel(genCtx)

	if _, err := s.messages.Append(storeCtx, sessionID, models.RoleUser, prompt); err != nil {
		return "", s.fail(genCtx, logger, fmt.Errorf("failed to save user message: %w", err))
	}
	events.Emit(storeCtx, events.ChatStart, events.NewInfo("generation started"))

	history, err := s.messages.ListBySession(storeCtx, sessionID)
	if err != nil {
		return "", s.fail(genCtx, logger, fmt.Errorf("failed to load chat history: %w", err))
	}

	var (
		text      string
		cancelled bool
		callErr   error
	)
	var stream *schema.StreamReader[ollama.Fragment]
	err = genCtx.Err()
	if err == nil {
		stream, err = s.client.Chat(genCtx, model, toSchemaMessages(history))
	}
	switch {
	case err == nil:
		text, cancelled, callErr = s.consume(genCtx, stream)
	case genCtx.Err() != nil:
		text, cancelled = CancellationMarker, true
	default:
		callErr = wrapCallError(err)
	}

	if _, err := s.messages.Append(storeCtx, sessionID, models.RoleAssistant, text); err != nil {
		return "", s.fail(storeCtx, logger, fmt.Errorf("failed to save assistant message: %w", err))
	}
	if callErr != nil {
		return "", s.fail(storeCtx, logger, callErr)
	}

	if cancelled {
		logger.Info().Int64("session_id", sessionID).Msg("generation cancelled")
		events.Emit(storeCtx, events.ChatCancelled, events.NewWarn("generation cancelled"))
	} else {
		logger.Info().Int64("session_id", sessionID).Int("chars", len(text)).Msg("generation finished")
		events.Emit(storeCtx, events.ChatDone, events.NewSuccess("generation finished"))
	}
	return text, nil
}

// startSession asks the model for a title and resolves it to a session id.
func (s *chatService) startSession(ctx context.Context, prompt, model string) (int64, error) {
	stream, err := s.client.Generate(ctx, model, ollama.TitlePrompt(prompt))
	if err != nil {
		return 0, fmt.Errorf("failed to generate session title: %w", err)
	}
	raw, err := ollama.CollectText(stream)
	if err != nil {
		return 0, fmt.Errorf("failed to generate session title: %w", err)
	}

	title := ollama.SessionTitle(model, raw)
	id, err := s.sessions.GetOrCreateByTitle(ctx, title)
	if err != nil {
		return 0, fmt.Errorf("failed to create or retrieve session: %w", err)
	}
	events.Emit(ctx, events.SessionsChanged, events.NewInfo(title))
	return id, nil
}

// consume accumulates fragments until the stream ends or ctx is cancelled.
// On cancellation the marker is appended and the stream is closed.
func (s *chatService) consume(ctx context.Context, stream *schema.StreamReader[ollama.Fragment]) (string, bool, error) {
	defer stream.Close()

	frags := make(chan ollama.Fragment)
	errc := make(chan error, 1)
	go func() {
		defer close(frags)
		for {
			frag, err := stream.Recv()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errc <- err
				}
				return
			}
			select {
			case frags <- frag:
			case <-ctx.Done():
				return
			}
			if frag.Done {
				return
			}
		}
	}()

	emitCtx := context.WithoutCancel(ctx)
	var sb strings.Builder
	completed := false
	for {
		select {
		case <-ctx.Done():
			sb.WriteString(CancellationMarker)
			return sb.String(), true, nil
		case frag, ok := <-frags:
			if !ok {
				select {
				case err := <-errc:
					if ctx.Err() != nil {
						sb.WriteString(CancellationMarker)
						return sb.String(), true, nil
					}
					return sb.String(), false, fmt.Errorf("failed to make API call: %w", err)
				default:
				}
				// a stream torn down by cancellation ends without a done fragment
				if !completed && ctx.Err() != nil {
					sb.WriteString(CancellationMarker)
					return sb.String(), true, nil
				}
				return sb.String(), false, nil
			}
			completed = completed || frag.Done
			if frag.Content != "" {
				sb.WriteString(frag.Content)
				events.Emit(emitCtx, events.ChatChunk, events.NewChunk(frag.Content))
			}
		}
	}
}

func (s *chatService) fail(ctx context.Context, logger zerolog.Logger, err error) error {
	logger.Error().Err(err).Msg("generation failed")
	events.Emit(context.WithoutCancel(ctx), events.ChatError, events.NewError(err.Error()))
	return err
}

func wrapCallError(err error) error {
	var statusErr *ollama.StatusError
	if errors.As(err, &statusErr) {
		return statusErr
	}
	return fmt.Errorf("failed to make API call: %w", err)
}

func toSchemaMessages(history []models.ChatMessage) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case models.RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		default:
			out = append(out, schema.UserMessage(m.Content))
		}
	}
	return out
}

// AbortGeneration cancels the in-flight generation. It is safe to call when idle.
func (s *chatService) AbortGeneration() error {
	if s.state.Abort() {
		zlog.Info().Str("component", "chat").Msg("generation abort requested")
	}
	return nil
}

func (s *chatService) IsGenerating() bool {
	return s.state.IsRunning()
}

func (s *chatService) GetCurrentSession() (*models.CurrentSession, error) {
	id := s.state.CurrentSessionID()
	if !models.IsValidSessionID(id) {
		return &models.CurrentSession{ID: models.NoSession}, nil
	}
	session, err := s.sessions.FindByID(s.ctx(), id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &models.CurrentSession{ID: id}, nil
	}
	return &models.CurrentSession{ID: session.ID, Title: session.Title}, nil
}

func (s *chatService) SetCurrentSession(id int64) error {
	s.state.SetCurrentSessionID(id)
	return nil
}

func (s *chatService) ClearCurrentSession() error {
	s.state.SetCurrentSessionID(models.NoSession)
	return nil
}

func (s *chatService) LoadChatHistory() ([]models.ChatMessage, error) {
	return s.messages.ListBySession(s.ctx(), s.state.CurrentSessionID())
}
