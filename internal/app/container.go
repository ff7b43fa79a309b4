package app

import (
	"context"

	"github.com/doeshing/synora-ui/internal/application/action"
	"github.com/doeshing/synora-ui/internal/application/command"
	"github.com/doeshing/synora-ui/internal/application/console"
	"github.com/doeshing/synora-ui/internal/application/doctor"
	"github.com/doeshing/synora-ui/internal/application/history"
	"github.com/doeshing/synora-ui/internal/application/search"
	"github.com/doeshing/synora-ui/internal/application/settings"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/infrastructure/config"
	"github.com/doeshing/synora-ui/internal/infrastructure/httpapi"
	"github.com/doeshing/synora-ui/internal/infrastructure/kvstore"
	"github.com/doeshing/synora-ui/internal/infrastructure/locale"
	"github.com/doeshing/synora-ui/internal/pkg/logger"
	"github.com/doeshing/synora-ui/internal/ports"
)

// Options tweaks container construction.
type Options struct {
	Verbose bool
	// ConfigPath overrides the config file location.
	ConfigPath string
	// Ephemeral keeps all state in memory for this process.
	Ephemeral bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Store          ports.KeyValueStore
	Locale         *locale.Provider
	Boundary       *httpapi.Client
	Builder        command.Builder
	HistoryStore   *history.Store
	Settings       *settings.Service
	SearchClient   *search.Client
	Executor       *action.Executor
	DoctorService  *doctor.Service
	Console        *console.Console
}

// BuildContainer constructs the dependency graph. The console is created by
// Attach once the terminal adapters are known.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.GetLogLevel(), opts.Verbose)

	var store ports.KeyValueStore
	if opts.Ephemeral {
		store = kvstore.NewMemory()
	} else {
		store, err = kvstore.Open(cfg, log)
		if err != nil {
			return nil, err
		}
	}

	loc, err := locale.New(cfg.GetDefaultLanguage())
	if err != nil {
		return nil, err
	}

	boundary := httpapi.NewClient(cfg, log)
	builder := command.NewBuilder(cfg.GetBinary())
	settingsService := &settings.Service{KV: store, Logger: log, DefaultLanguage: cfg.GetDefaultLanguage()}
	loc.Use(settingsService.Language())

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Store:          store,
		Locale:         loc,
		Boundary:       boundary,
		Builder:        builder,
		HistoryStore:   history.NewStore(store, log),
		Settings:       settingsService,
		SearchClient:   &search.Client{Boundary: boundary, Locale: loc, Logger: log},
		Executor:       &action.Executor{Boundary: boundary, Builder: builder, Locale: loc, Logger: log},
		DoctorService:  &doctor.Service{ConfigProvider: cfgLoader, Store: store, Boundary: boundary},
	}, nil
}

// Attach installs the interactive adapters and builds the console.
func (c *Container) Attach(prompter ports.ConfirmationPrompter, clipboard ports.Clipboard) *console.Console {
	c.Executor.Prompter = prompter
	c.DoctorService.Clipboard = clipboard
	c.Console = console.New(console.Deps{
		Search:    c.SearchClient,
		Executor:  c.Executor,
		History:   c.HistoryStore,
		Settings:  c.Settings,
		Clipboard: clipboard,
		KV:        c.Store,
		Builder:   c.Builder,
		Locale:    c.Locale,
		Logger:    c.Logger,
	})
	return c.Console
}

// Close releases the store if it holds resources.
func (c *Container) Close() error {
	if closer, ok := c.Store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
