package main

import (
	"context"
	"embed"

	zlog "github.com/rs/zerolog/log"
	"github.com/wailsapp/wails/v2"
	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"

	"ollamachat/internal/config"
	"ollamachat/internal/database"
	"ollamachat/internal/events"
	"ollamachat/internal/llm/ollama"
	"ollamachat/internal/logging"
	"ollamachat/internal/models"
	"ollamachat/internal/services"
	"ollamachat/internal/utils"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	loadedEnv, envErr := utils.LoadEnv()

	cfg, err := config.Watch(func(next *config.Config) {
		if err := logging.SetLevel(next.Logging.Level); err != nil {
			zlog.Warn().Err(err).Msg("keeping current log level")
		}
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	format := cfg.Logging.Format
	if !database.IsDevelopment() && format == "console" && cfg.Logging.File == "" {
		format = "json"
	}
	logClose, err := logging.Setup(logging.Options{
		Level:  cfg.Logging.Level,
		Format: format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to set up logging")
	}
	if envErr != nil {
		zlog.Warn().Err(envErr).Msg("failed to load .env")
	}
	zlog.Debug().Strs("files", loadedEnv).Msg("environment loaded")

	db, err := database.Init(database.Config{
		Path:     cfg.Database.Path,
		LogLevel: database.ParseLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to open database")
	}

	keyringService := services.NewKeyringService()
	clientCfg := ollama.Config{BaseURL: cfg.Ollama.Host}
	if cfg.Ollama.UseKeyringToken {
		clientCfg.Token = keyringService.GetServerToken
	}
	client := ollama.NewClient(clientCfg)
	zlog.Info().Str("host", client.BaseURL()).Msg("using model server")

	svc := services.NewServices(db, client, keyringService)

	geometry, err := svc.AppSettings.GetWindowGeometry()
	if err != nil {
		zlog.Warn().Err(err).Msg("failed to load window geometry, using defaults")
		geometry = models.DefaultWindowGeometry
	}

	app := NewApp(svc, geometry)
	app.logClose = logClose
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	events.EnableRuntimeEmitter()

	err = wails.Run(&options.App{
		Title:  "Ollama Chat",
		Width:  geometry.Width,
		Height: geometry.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Ollama Chat",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		Logger:           logging.NewWailsLogger(zlog.Logger),
		LogLevel:         wailslogger.TRACE,
		OnStartup: func(ctx context.Context) {
			svc.Chat.Startup(ctx)
			svc.Sessions.Startup(ctx)
			svc.Models.Startup(ctx)
			svc.AppSettings.Startup(ctx)
			app.startup(ctx)
		},
		OnBeforeClose: app.beforeClose,
		OnShutdown:    app.shutdown,
		Bind: []interface{}{
			app,
			svc.Chat,
			svc.Sessions,
			svc.Models,
			svc.AppSettings,
			svc.Keyring,
		},
	})

	if err != nil {
		zlog.Error().Err(err).Msg("application exited with error")
	}
}
