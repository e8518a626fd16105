package workflow

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/deferred"
	"github.com/agentx-labs/addonctl/internal/namematch"
	"github.com/google/uuid"
)

// ErrSearchInProgress is returned by Begin when a search is running and the
// caller did not ask to replace it.
var ErrSearchInProgress = errors.New("another add-on search is in progress")

// Session is one in-flight repository search.
type Session struct {
	ID     string
	Query  namematch.Query
	result *deferred.Result[string]

	// finished is guarded by Sessions.mu.
	finished bool
}

// Result returns the pending result the session resolves.
func (s *Session) Result() *deferred.Result[string] { return s.result }

// Sessions tracks the single active search. A session ends exactly once:
// either its search reports back (Finish) or a forced Begin cancels it.
type Sessions struct {
	mu     sync.Mutex
	repo   addon.Repository
	active *Session
	logger *slog.Logger
}

// NewSessions creates a registry guarding searches on repo.
func NewSessions(repo addon.Repository, logger *slog.Logger) *Sessions {
	return &Sessions{repo: repo, logger: logger}
}

// Active returns the running session, or nil.
func (s *Sessions) Active() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Begin registers a new session for query. If a search is already running,
// Begin fails with ErrSearchInProgress unless force is set, in which case the
// running search is cancelled and its session resolved as cancelled.
func (s *Sessions) Begin(query namematch.Query, result *deferred.Result[string], force bool) (*Session, error) {
	s.mu.Lock()
	busy := s.active != nil || s.repo.IsSearching()
	if busy && !force {
		s.mu.Unlock()
		return nil, ErrSearchInProgress
	}
	prev := s.active
	if prev != nil {
		prev.finished = true
	}
	sess := &Session{ID: uuid.NewString(), Query: query, result: result}
	s.active = sess
	s.mu.Unlock()

	if busy {
		s.repo.CancelSearch()
		if prev != nil {
			s.logger.Debug("search cancelled", "session", prev.ID, "query", prev.Query.Raw(), "replaced_by", sess.ID)
			prev.result.MustResolve(searchCancelledMessage(prev.Query.Raw()))
		} else {
			s.logger.Debug("foreign search cancelled", "replaced_by", sess.ID)
		}
	}
	s.logger.Debug("search started", "session", sess.ID, "query", query.Raw())
	return sess, nil
}

// Finish ends sess. It returns false if sess had already ended, which means
// the repository reported back for a search that was cancelled.
func (s *Sessions) Finish(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.finished {
		return false
	}
	sess.finished = true
	if s.active == sess {
		s.active = nil
	}
	return true
}
