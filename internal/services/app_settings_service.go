package services

import (
	"context"
	"strconv"

	zlog "github.com/rs/zerolog/log"

	"ollamachat/internal/models"
	"ollamachat/internal/repositories"
)

// AppSettingsService persists shell preferences such as the window geometry.
type AppSettingsService interface {
	Startup(ctx context.Context)
	GetWindowGeometry() (models.WindowGeometry, error)
	SaveWindowGeometry(geometry models.WindowGeometry) error
}

type appSettingsService struct {
	config  repositories.AppConfigRepository
	context context.Context
}

func NewAppSettingsService(config repositories.AppConfigRepository) AppSettingsService {
	return &appSettingsService{config: config}
}

func (s *appSettingsService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *appSettingsService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

type geometryField struct {
	key      string
	dst      *int
	def      int
	fallback int
}

// GetWindowGeometry reads each coordinate independently. Missing keys take the
// default value and unparsable ones take the fallback value.
func (s *appSettingsService) GetWindowGeometry() (models.WindowGeometry, error) {
	var g models.WindowGeometry
	fields := []geometryField{
		{models.ConfigWindowX, &g.X, models.DefaultWindowGeometry.X, models.FallbackWindowGeometry.X},
		{models.ConfigWindowY, &g.Y, models.DefaultWindowGeometry.Y, models.FallbackWindowGeometry.Y},
		{models.ConfigWindowWidth, &g.Width, models.DefaultWindowGeometry.Width, models.FallbackWindowGeometry.Width},
		{models.ConfigWindowHeight, &g.Height, models.DefaultWindowGeometry.Height, models.FallbackWindowGeometry.Height},
	}
	for _, f := range fields {
		raw, found, err := s.config.Get(s.ctx(), f.key)
		if err != nil {
			return models.DefaultWindowGeometry, err
		}
		if !found {
			*f.dst = f.def
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			zlog.Warn().Str("key", f.key).Str("value", raw).Msg("invalid stored window geometry, using fallback")
			*f.dst = f.fallback
			continue
		}
		*f.dst = v
	}
	return g, nil
}

func (s *appSettingsService) SaveWindowGeometry(geometry models.WindowGeometry) error {
	if err := validate.Struct(geometry); err != nil {
		return validationError(err)
	}
	values := []struct {
		key string
		v   int
	}{
		{models.ConfigWindowX, geometry.X},
		{models.ConfigWindowY, geometry.Y},
		{models.ConfigWindowWidth, geometry.Width},
		{models.ConfigWindowHeight, geometry.Height},
	}
	for _, kv := range values {
		if err := s.config.Set(s.ctx(), kv.key, strconv.Itoa(kv.v)); err != nil {
			return err
		}
	}
	return nil
}
