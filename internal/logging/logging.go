// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	logMaxAge       = 7 * 24 * time.Hour
	logRotationTime = 24 * time.Hour
)

type Options struct {
	Level string
	// Format is "console" or "json".
	Format string
	// File, when set, receives JSON logs in addition to stderr. The file is
	// rotated daily with the date inserted before its extension.
	File string
}

// Setup installs the global logger. The returned closer releases the log file, if any.
func Setup(opts Options) (func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var console io.Writer = os.Stderr
	if !strings.EqualFold(opts.Format, "json") {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}

	closer := func() error { return nil }
	out := console
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rl, err := rotatelogs.New(
			rotationPattern(opts.File),
			rotatelogs.WithMaxAge(logMaxAge),
			rotatelogs.WithRotationTime(logRotationTime),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = zerolog.MultiLevelWriter(console, rl)
		closer = rl.Close
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

// rotationPattern turns logs/app.log into logs/app.%Y%m%d.log.
func rotationPattern(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + ".%Y%m%d" + ext
}

// ParseLevel maps a level name to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// SetLevel changes the global level at runtime. Invalid names leave it unchanged.
func SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	if level != zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
		log.Info().Str("level", level.String()).Msg("log level changed")
	}
	return nil
}
