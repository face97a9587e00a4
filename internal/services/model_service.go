package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	zlog "github.com/rs/zerolog/log"

	"ollamachat/internal/models"
	"ollamachat/internal/repositories"
)

type ModelService interface {
	Startup(ctx context.Context)
	LoadModels() ([]string, error)
	GetSelectedModel() (string, error)
	SaveSelectedModel(name string) error
}

type modelService struct {
	client  ModelClient
	config  repositories.AppConfigRepository
	context context.Context

	mu     sync.RWMutex
	models []string
}

func NewModelService(client ModelClient, config repositories.AppConfigRepository) ModelService {
	return &modelService{client: client, config: config}
}

func (s *modelService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *modelService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

// LoadModels lists the models installed on the server.
func (s *modelService) LoadModels() ([]string, error) {
	names, err := s.client.ListModels(s.ctx())
	if err != nil {
		zlog.Warn().Err(err).Str("component", "models").Msg("listing models failed")
		return nil, err
	}

	s.mu.Lock()
	s.models = append(s.models[:0], names...)
	s.mu.Unlock()
	return names, nil
}

// GetSelectedModel returns the persisted model name, or the first known model
// when none was saved yet. Empty when neither exists.
func (s *modelService) GetSelectedModel() (string, error) {
	name, found, err := s.config.Get(s.ctx(), models.ConfigSelectedModel)
	if err != nil {
		return "", err
	}
	if found {
		return name, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.models) > 0 {
		return s.models[0], nil
	}
	return "", nil
}

func (s *modelService) SaveSelectedModel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("model name is required")
	}
	return s.config.Set(s.ctx(), models.ConfigSelectedModel, name)
}
