package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/agentx-labs/addonctl/internal/addon"
)

// Options configure a Repository.
type Options struct {
	Sources []Source
	// CachePath is where the discovery index is cached. Empty disables it.
	CachePath string
	// InstalledDir receives installed add-on payloads.
	InstalledDir string
	Registrar    Registrar
	Logger       *slog.Logger
}

// Repository searches the catalog for extensions. At most one search runs at
// a time; starting a new one supersedes the previous search, which then
// reports nothing.
type Repository struct {
	opts   Options
	logger *slog.Logger
	// discover is DiscoverCached; tests replace it.
	discover func([]Source, string, *slog.Logger) ([]Entry, error)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc

	// placeMu serializes choosing a payload directory, moving the payload
	// there and recording it.
	placeMu sync.Mutex

	// life parents every install; Close cancels it and waits for installs.
	life     context.Context
	shutdown context.CancelFunc
	installs sync.WaitGroup
}

var _ addon.Repository = (*Repository)(nil)

// New creates a Repository.
func New(opts Options) *Repository {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	life, shutdown := context.WithCancel(context.Background())
	return &Repository{
		opts:     opts,
		logger:   logger,
		discover: DiscoverCached,
		life:     life,
		shutdown: shutdown,
	}
}

// Close cancels the running search and every running install, then waits
// for the installs to report back and remove their staging directories.
// Installs started after Close are cancelled at once.
func (r *Repository) Close() {
	r.CancelSearch()
	r.shutdown()
	r.installs.Wait()
}

// IsSearching reports whether a search has been started and has not yet
// reported back or been cancelled.
func (r *Repository) IsSearching() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// CancelSearch stops the running search, if any. Its callback is not called.
func (r *Repository) CancelSearch() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
		r.logger.Debug("catalog search cancelled", "generation", r.gen)
	}
}

// SearchAddons looks for extensions matching query on a background goroutine
// and reports the best maxResults of them to cb.
func (r *Repository) SearchAddons(query string, maxResults int, cb addon.SearchCallback) {
	ctx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	r.cancel = cancel
	r.mu.Unlock()

	go func() {
		defer cancel()
		results, total, err := r.search(ctx, query, maxResults)

		r.mu.Lock()
		current := r.gen == gen && ctx.Err() == nil
		if current {
			r.cancel = nil
		}
		r.mu.Unlock()

		if !current {
			return
		}
		if err != nil {
			r.logger.Warn("catalog search failed", "query", query, "error", err)
			cb.SearchFailed()
			return
		}
		r.logger.Debug("catalog search done", "query", query, "results", len(results), "total", total)
		cb.SearchSucceeded(results, total)
	}()
}

func (r *Repository) search(ctx context.Context, query string, maxResults int) ([]addon.SearchResult, int, error) {
	entries, err := r.discover(r.opts.Sources, r.opts.CachePath, r.logger)
	if err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	ranked := Rank(query, entries, addon.Extension)
	total := len(ranked)
	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	results := make([]addon.SearchResult, 0, len(ranked))
	for _, e := range ranked {
		results = append(results, addon.SearchResult{
			Name:    e.Name,
			Version: e.Version,
			Install: r.newHandle(e),
		})
	}
	return results, total, nil
}
