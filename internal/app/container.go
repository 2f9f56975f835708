// Package app wires application services with infrastructure adapters.
package app

import (
	"context"

	"github.com/doeshing/ghask/internal/application/query"
	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/infrastructure/cache"
	"github.com/doeshing/ghask/internal/infrastructure/config"
	"github.com/doeshing/ghask/internal/infrastructure/github"
	"github.com/doeshing/ghask/internal/infrastructure/history"
	"github.com/doeshing/ghask/internal/infrastructure/llm"
	"github.com/doeshing/ghask/internal/pkg/logger"
	"github.com/doeshing/ghask/internal/ports"
)

// Container holds the dependency graph for the CLI.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	QueryService *query.Service
	HistoryStore ports.HistoryRepository
	CacheStore   ports.CacheRepository
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph. The renderer and the
// parameter prompter are terminal-bound and attached later by the CLI layer
// via AttachUI.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)
	historyStore := history.NewSQLiteStore()

	var cacheStore ports.CacheRepository
	if cfg.Cache.Enabled {
		cacheStore = cache.NewFileCache(cfg.Cache)
	}

	timeout := cfg.Preferences.QueryTimeout()
	completions := llm.NewClient(cfg.LLM, timeout)
	host := github.NewClient(cfg.GitHub, timeout)

	queryService := &query.Service{
		ConfigProvider: cfgLoader,
		Classifier:     &query.Classifier{Provider: completions, Cache: cacheStore, Logger: log},
		Completer:      &query.Completer{Logger: log},
		Dispatcher:     query.NewDispatcher(host, nil, log),
		Narrator:       &query.Narrator{Provider: completions, Logger: log},
		History:        historyStore,
		Logger:         log,
		Session:        domain.NewSessionWithCap(cfg.Preferences.SessionCap),
	}

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		QueryService: queryService,
		HistoryStore: historyStore,
		CacheStore:   cacheStore,
		Logger:       log,
	}, nil
}

// AttachUI completes the wiring with the terminal-bound renderer and
// prompter.
func (c *Container) AttachUI(renderer ports.Renderer, prompter ports.ParameterPrompter) {
	c.QueryService.Renderer = renderer
	c.QueryService.Dispatcher.Renderer = renderer
	c.QueryService.Completer.Renderer = renderer
	c.QueryService.Completer.Prompter = prompter
}
