package main

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"ollamachat/internal/models"
	"ollamachat/internal/services"
)

const geometryPollInterval = time.Second

// window abstracts the shell calls used to read and restore the main window.
type window interface {
	Position(ctx context.Context) (x, y int)
	Size(ctx context.Context) (width, height int)
	SetPosition(ctx context.Context, x, y int)
	Minimised(ctx context.Context) bool
}

type runtimeWindow struct{}

func (runtimeWindow) Position(ctx context.Context) (int, int) { return runtime.WindowGetPosition(ctx) }
func (runtimeWindow) Size(ctx context.Context) (int, int)     { return runtime.WindowGetSize(ctx) }
func (runtimeWindow) SetPosition(ctx context.Context, x, y int) {
	runtime.WindowSetPosition(ctx, x, y)
}
func (runtimeWindow) Minimised(ctx context.Context) bool { return runtime.WindowIsMinimised(ctx) }

// App owns the shell lifecycle: window geometry and resource cleanup.
type App struct {
	ctx      context.Context
	services *services.Services
	window   window
	dbClose  func() error
	logClose func() error

	geomMu      sync.Mutex
	geometry    models.WindowGeometry
	geomRunning bool
	geomCancel  context.CancelFunc
}

func NewApp(svc *services.Services, geometry models.WindowGeometry) *App {
	return &App{
		services: svc,
		window:   runtimeWindow{},
		geometry: geometry,
	}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	a.geomMu.Lock()
	g := a.geometry
	a.geomMu.Unlock()
	a.window.SetPosition(ctx, g.X, g.Y)

	a.startGeometryWatcher()
}

// beforeClose persists the final geometry. Returning false lets the window close.
func (a *App) beforeClose(ctx context.Context) bool {
	a.saveGeometry(ctx)
	return false
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.geomMu.Lock()
	cancel := a.geomCancel
	a.geomMu.Unlock()
	if cancel != nil {
		cancel()
	}

	if a.services != nil && a.services.State.Abort() {
		zlog.Info().Msg("aborted in-flight generation on shutdown")
	}

	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			zlog.Error().Err(err).Msg("failed to close database")
		} else {
			zlog.Info().Msg("database closed")
		}
		a.dbClose = nil
	}
	if a.logClose != nil {
		_ = a.logClose()
		a.logClose = nil
	}
}

// GetWindowGeometry returns the stored window position and size.
func (a *App) GetWindowGeometry() (models.WindowGeometry, error) {
	return a.services.AppSettings.GetWindowGeometry()
}

// startGeometryWatcher polls the window and saves geometry whenever it changes.
// It no-ops if a watcher is already running.
func (a *App) startGeometryWatcher() {
	a.geomMu.Lock()
	if a.geomRunning {
		a.geomMu.Unlock()
		return
	}
	a.geomRunning = true
	ctx, cancel := context.WithCancel(a.ctx)
	a.geomCancel = cancel
	a.geomMu.Unlock()

	go func() {
		defer func() {
			a.geomMu.Lock()
			a.geomRunning = false
			a.geomCancel = nil
			a.geomMu.Unlock()
		}()

		ticker := time.NewTicker(geometryPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.saveGeometry(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// saveGeometry reads the current window geometry and stores it when it differs
// from the last saved value. Minimised windows are skipped.
func (a *App) saveGeometry(ctx context.Context) bool {
	if a.window.Minimised(ctx) {
		return false
	}
	var g models.WindowGeometry
	g.X, g.Y = a.window.Position(ctx)
	g.Width, g.Height = a.window.Size(ctx)

	a.geomMu.Lock()
	changed := g != a.geometry
	a.geomMu.Unlock()
	if !changed {
		return false
	}

	if err := a.services.AppSettings.SaveWindowGeometry(g); err != nil {
		zlog.Warn().Err(err).Interface("geometry", g).Msg("failed to save window geometry")
		return false
	}
	a.geomMu.Lock()
	a.geometry = g
	a.geomMu.Unlock()
	return true
}
