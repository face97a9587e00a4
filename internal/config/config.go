package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Ollama   OllamaConfig   `mapstructure:"ollama"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type OllamaConfig struct {
	Host string `mapstructure:"host"`
	// UseKeyringToken sends the token stored in the OS keychain as a bearer token.
	UseKeyringToken bool `mapstructure:"use_keyring_token"`
}

type DatabaseConfig struct {
	// Path is empty to use the build's default location.
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from an optional config file and the environment.
// OLLAMACHAT_CONFIG overrides the config file location.
func Load() (*Config, error) {
	cfg, _, err := load()
	return cfg, err
}

// Watch loads the configuration like Load and, when a config file is in use,
// calls onChange with the re-read values every time the file changes.
func Watch(onChange func(*Config)) (*Config, error) {
	cfg, v, err := load()
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" || onChange == nil {
		return cfg, nil
	}
	if _, err := os.Stat(v.ConfigFileUsed()); err != nil {
		return cfg, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		var next Config
		if err := v.Unmarshal(&next); err != nil {
			zlog.Warn().Err(err).Str("file", e.Name).Msg("ignoring invalid configuration change")
			return
		}
		zlog.Info().Str("file", e.Name).Msg("configuration reloaded")
		onChange(&next)
	})
	v.WatchConfig()
	return cfg, nil
}

func load() (*Config, *viper.Viper, error) {
	v := viper.New()

	configPath := os.Getenv("OLLAMACHAT_CONFIG")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "ollamachat"))
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configPath != "" && os.IsNotExist(err)) {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.use_keyring_token", false)

	v.SetDefault("database.path", "")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("ollama.host", "OLLAMA_HOST")
	_ = v.BindEnv("ollama.use_keyring_token", "OLLAMACHAT_USE_KEYRING_TOKEN")
	_ = v.BindEnv("database.path", "OLLAMACHAT_DB_PATH")
	_ = v.BindEnv("database.log_level", "OLLAMACHAT_DB_LOG_LEVEL")
	_ = v.BindEnv("logging.level", "OLLAMACHAT_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "OLLAMACHAT_LOG_FORMAT")
	_ = v.BindEnv("logging.file", "OLLAMACHAT_LOG_FILE")
}
