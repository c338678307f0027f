// Package app wires the application together: configuration, knowledge
// base, prayer schedule, generator, and composer.
package app

import (
	"context"
	"time"

	"github.com/masjidlabs/minbar/internal/answer"
	"github.com/masjidlabs/minbar/internal/config"
	"github.com/masjidlabs/minbar/internal/diag"
	"github.com/masjidlabs/minbar/internal/kb"
	"github.com/masjidlabs/minbar/internal/log"
	"github.com/masjidlabs/minbar/internal/schedule"
)

// App is the application container.
type App struct {
	Config   *config.Config
	Logger   log.Logger
	KB       *kb.Store
	Schedule *schedule.Store
	Composer *answer.Composer
	Errors   *diag.Recorder

	watcher *kb.Watcher
}

// Setup initializes every component.
//
// Load-time failures (missing or unreadable kb/schedule files) are
// recorded and logged but never fatal: the bot still serves, degraded
// to "no context" / "no deterministic match". Only a broken generator
// client configuration is surfaced the same way — demo mode takes over.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	errors := &diag.Recorder{}

	kbStore := kb.NewStore(cfg.KBGlob, logger.With("component", "kb"))
	if err := kbStore.Load(); err != nil {
		errors.Record("startup", err)
		logger.Warn("knowledge base load failed, retrieval disabled", "error", err)
	}

	schedStore := schedule.NewStore(cfg.ScheduleFile, logger.With("component", "schedule"))
	if err := schedStore.Load(); err != nil {
		errors.Record("startup", err)
		logger.Warn("schedule load failed, deterministic lookups disabled", "error", err)
	}

	var generator answer.Generator
	if cfg.Configured() {
		g, err := answer.NewGemini(ctx, answer.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.ModelName,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     time.Duration(cfg.GenerateTimeout) * time.Second,
		}, logger.With("component", "generator"))
		if err != nil {
			errors.Record("startup", err)
			logger.Warn("generator init failed, falling back to demo mode", "error", err)
		} else {
			generator = g
		}
	} else {
		logger.Info("no GEMINI_API_KEY configured, running in demo mode")
	}

	composer := answer.New(kbStore, schedStore, generator,
		cfg.DefaultYear, logger.With("component", "composer"), errors)

	a := &App{
		Config:   cfg,
		Logger:   logger,
		KB:       kbStore,
		Schedule: schedStore,
		Composer: composer,
		Errors:   errors,
	}

	if cfg.Watch {
		w, err := kb.NewWatcher(kbStore, logger.With("component", "watcher"))
		if err != nil {
			errors.Record("startup", err)
			logger.Warn("kb watcher init failed, hot reload disabled", "error", err)
		} else {
			w.Start(ctx)
			a.watcher = w
		}
	}

	return a, nil
}

// Close releases background resources.
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
