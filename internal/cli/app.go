package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/agentx-labs/addonctl/internal/command"
	"github.com/agentx-labs/addonctl/internal/config"
	"github.com/agentx-labs/addonctl/internal/registry"
	"github.com/agentx-labs/addonctl/internal/store"
	"github.com/agentx-labs/addonctl/internal/workflow"
)

// app wires the add-on services for one process.
type app struct {
	settings config.Settings
	logger   *slog.Logger
	store    *store.Store
	repo     *registry.Repository
	service  *workflow.Service
	commands *command.Registry
}

// newLogger returns a text logger on w. verbose forces debug level.
func newLogger(w io.Writer, level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func catalogSources(dirs []string) []registry.Source {
	sources := make([]registry.Source, 0, len(dirs))
	for i, dir := range dirs {
		name := "catalog"
		if i > 0 {
			name = fmt.Sprintf("catalog-%d", i+1)
		}
		sources = append(sources, registry.Source{Name: name, BasePath: dir})
	}
	return sources
}

func newApp(settings config.Settings, logger *slog.Logger) (*app, error) {
	st, err := store.Open(settings.StateFile, settings.InstalledDir, logger.With("component", "store"))
	if err != nil {
		return nil, fmt.Errorf("opening add-on state: %w", err)
	}

	repo := registry.New(registry.Options{
		Sources:      catalogSources(settings.CatalogDirs),
		CachePath:    settings.CachePath,
		InstalledDir: settings.InstalledDir,
		Registrar:    st,
		Logger:       logger.With("component", "registry"),
	})

	svc := workflow.New(st, repo, workflow.Options{
		Locale:     settings.Locale,
		MaxResults: settings.MaxResults,
		Logger:     logger.With("component", "workflow"),
	})

	commands := command.NewRegistry()
	if err := svc.Register(commands); err != nil {
		return nil, err
	}

	return &app{
		settings: settings,
		logger:   logger,
		store:    st,
		repo:     repo,
		service:  svc,
		commands: commands,
	}, nil
}
