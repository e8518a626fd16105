package workflow

import (
	"log/slog"
	"sync"

	"github.com/agentx-labs/addonctl/internal/addon"
	"golang.org/x/text/language"
)

// DefaultMaxResults is how many candidates an install search asks for.
const DefaultMaxResults = 4

// Options tune a Service.
type Options struct {
	// Locale orders add-on names in list output. Defaults to English.
	Locale language.Tag
	// MaxResults caps repository search results. Defaults to DefaultMaxResults.
	MaxResults int
	Logger     *slog.Logger
}

// Service runs the addon commands against a manager and a repository.
type Service struct {
	manager    addon.Manager
	repo       addon.Repository
	sessions   *Sessions
	locale     language.Tag
	maxResults int
	logger     *slog.Logger

	// installMu makes starting a session and its search one step, so an
	// older search cannot reach the repository after a newer one.
	installMu sync.Mutex
}

// New creates a Service.
func New(manager addon.Manager, repo addon.Repository, opts Options) *Service {
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		manager:    manager,
		repo:       repo,
		sessions:   NewSessions(repo, opts.Logger),
		locale:     opts.Locale,
		maxResults: opts.MaxResults,
		logger:     opts.Logger,
	}
}

// Sessions exposes the search session registry.
func (s *Service) Sessions() *Sessions { return s.sessions }
