package logging

import (
	"github.com/rs/zerolog"
)

// WailsLogger forwards desktop shell log lines to zerolog.
// It satisfies the logger interface expected by the shell options.
type WailsLogger struct {
	logger zerolog.Logger
}

func NewWailsLogger(base zerolog.Logger) *WailsLogger {
	return &WailsLogger{logger: base.With().Str("component", "wails").Logger()}
}

func (l *WailsLogger) Print(message string) {
	l.logger.Log().Msg(message)
}

func (l *WailsLogger) Trace(message string) {
	l.logger.Trace().Msg(message)
}

func (l *WailsLogger) Debug(message string) {
	l.logger.Debug().Msg(message)
}

func (l *WailsLogger) Info(message string) {
	l.logger.Info().Msg(message)
}

func (l *WailsLogger) Warning(message string) {
	l.logger.Warn().Msg(message)
}

func (l *WailsLogger) Error(message string) {
	l.logger.Error().Msg(message)
}

func (l *WailsLogger) Fatal(message string) {
	l.logger.Fatal().Msg(message)
}
