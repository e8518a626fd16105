package workflow

import (
	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/deferred"
	"github.com/agentx-labs/addonctl/internal/namematch"
)

// Install searches the repository for name and installs the first result
// that matches it. When nothing matches it reports an installed add-on of
// the same name, or suggests the first search result, or gives up.
//
// If another search is running and force is false, Install answers
// immediately with instructions for forcing the install.
func (s *Service) Install(name string, force bool) deferred.Outcome {
	s.installMu.Lock()
	defer s.installMu.Unlock()

	q := namematch.NewQuery(name)
	res := deferred.New[string]()

	sess, err := s.sessions.Begin(q, res, force)
	if err != nil {
		s.logger.Debug("install refused", "query", name, "error", err)
		return deferred.Immediate(busyMessage(name))
	}

	s.repo.SearchAddons(name, s.maxResults, &searchCallback{svc: s, session: sess})
	return deferred.Pending(res)
}

type searchCallback struct {
	svc     *Service
	session *Session
}

func (c *searchCallback) SearchSucceeded(results []addon.SearchResult, total int) {
	if !c.svc.sessions.Finish(c.session) {
		c.svc.logger.Debug("stale search results dropped", "session", c.session.ID)
		return
	}
	q := c.session.Query
	res := c.session.result
	c.svc.logger.Debug("search succeeded", "session", c.session.ID, "results", len(results), "total", total)

	if total != 0 {
		if match, ok := namematch.First(q, results, func(r addon.SearchResult) string { return r.Name }); ok {
			c.svc.beginInstall(match, res)
			return
		}
	}

	var suggestion *addon.SearchResult
	if total != 0 && len(results) > 0 {
		suggestion = &results[0]
	}
	c.svc.suggest(q, suggestion, res)
}

func (c *searchCallback) SearchFailed() {
	if !c.svc.sessions.Finish(c.session) {
		c.svc.logger.Debug("stale search failure dropped", "session", c.session.ID)
		return
	}
	c.svc.logger.Debug("search failed", "session", c.session.ID)
	c.session.result.MustResolve(searchFailedMessage)
}

// suggest resolves res after a search found nothing matching q: an installed
// extension matching q wins over suggesting the first search result.
func (s *Service) suggest(q namematch.Query, suggestion *addon.SearchResult, res *deferred.Result[string]) {
	s.manager.AddonsByCategory(addon.Extension, func(entities []addon.Entity, err error) {
		if err != nil {
			s.logger.Warn("checking installed add-ons failed", "error", err)
		}
		if installed, ok := namematch.First(q, entities, addon.Entity.Name); ok {
			res.MustResolve(alreadyInstalledMessage(installed))
			return
		}
		if suggestion != nil {
			res.MustResolve(suggestionMessage(suggestion.Name))
			return
		}
		res.MustResolve(couldNotFindMessage)
	})
}

func (s *Service) beginInstall(match addon.SearchResult, res *deferred.Result[string]) {
	if match.Install == nil {
		res.MustResolve(installUnavailable)
		return
	}
	res.SetProgress(downloadingProgress(match.Name + " " + match.Version))
	match.Install.AddListener(&installListener{svc: s, name: match.Name, result: res})
	match.Install.Install()
}

// installListener resolves the install command from the terminal hooks of
// the handle and reports the rest as progress.
type installListener struct {
	addon.NopInstallListener
	svc    *Service
	name   string
	result *deferred.Result[string]
}

func (l *installListener) OnDownloadProgress(_ addon.InstallHandle, done, total int64) {
	if total > 0 {
		l.result.SetProgress(downloadAtProgress(done, total))
	}
}

func (l *installListener) OnDownloadCancelled(h addon.InstallHandle) {
	l.svc.logger.Debug("download cancelled", "install", h.ID())
	l.result.MustResolve(installCancelledMessage(l.name))
}

func (l *installListener) OnDownloadFailed(h addon.InstallHandle, err error) {
	l.svc.logger.Debug("download failed", "install", h.ID(), "error", err)
	l.result.MustResolve(installFailedMessage(l.name, err))
}

func (l *installListener) OnInstallStarted(addon.InstallHandle) {
	l.result.SetProgress(installingProgress(l.name))
}

func (l *installListener) OnInstallEnded(h addon.InstallHandle, installed addon.Entity) {
	l.svc.logger.Debug("install ended", "install", h.ID(), "name", installed.Name(), "version", installed.Version())
	l.result.MustResolve(installedMessage(installed))
}

func (l *installListener) OnInstallCancelled(h addon.InstallHandle) {
	l.svc.logger.Debug("install cancelled", "install", h.ID())
	l.result.MustResolve(installCancelledMessage(l.name))
}

func (l *installListener) OnInstallFailed(h addon.InstallHandle, err error) {
	l.svc.logger.Debug("install failed", "install", h.ID(), "error", err)
	l.result.MustResolve(installFailedMessage(l.name, err))
}
