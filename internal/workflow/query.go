package workflow

import (
	"slices"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/deferred"
	"github.com/agentx-labs/addonctl/internal/markup"
	"github.com/agentx-labs/addonctl/internal/namematch"
	"golang.org/x/text/collate"
)

// List reports the installed add-ons of the category named by typeName,
// enabled ones first, each group sorted by name. An empty typeName lists
// extensions and adds a hint about the other categories.
func (s *Service) List(typeName string) deferred.Outcome {
	category := addon.Extension
	explicit := typeName != ""
	if explicit {
		c, ok := addon.ParseCategory(typeName)
		if !ok {
			return deferred.Immediate(unknownTypeMessage(typeName))
		}
		category = c
	}

	res := deferred.New[string]()
	s.manager.AddonsByCategory(category, func(entities []addon.Entity, err error) {
		if err != nil {
			s.logger.Warn("listing add-ons failed", "category", category, "error", err)
			res.MustResolve(readFailedMessage(err))
			return
		}
		msg := listHeading(category) + s.renderList(entities)
		if !explicit {
			msg += listHint()
		}
		res.MustResolve(msg)
	})
	return deferred.Pending(res)
}

func (s *Service) renderList(entities []addon.Entity) string {
	var enabled, disabled []addon.Entity
	for _, e := range entities {
		if e.Disabled() {
			disabled = append(disabled, e)
		} else {
			enabled = append(enabled, e)
		}
	}

	// Collators are not safe for concurrent use; build one per listing.
	c := collate.New(s.locale)
	byName := func(a, b addon.Entity) int {
		return c.CompareString(a.Name(), b.Name())
	}
	slices.SortStableFunc(enabled, byName)
	slices.SortStableFunc(disabled, byName)

	items := make([]string, 0, len(entities))
	for _, e := range enabled {
		items = append(items, listEntry(e))
	}
	for _, e := range disabled {
		items = append(items, listEntry(e))
	}
	return markup.OrderedList(items...)
}

// Enable turns on the first installed extension matching name.
func (s *Service) Enable(name string) deferred.Outcome {
	return s.withInstalled(name, func(res *deferred.Result[string], e addon.Entity) {
		if e == nil {
			res.MustResolve(notFoundMessage)
			return
		}
		if err := e.SetDisabled(false); err != nil {
			res.MustResolve(actionFailedMessage("enable", e, err))
			return
		}
		s.logger.Debug("add-on enabled", "name", e.Name())
		res.MustResolve(enabledMessage(e))
	})
}

// Disable turns off the first installed extension matching name.
func (s *Service) Disable(name string) deferred.Outcome {
	return s.withInstalled(name, func(res *deferred.Result[string], e addon.Entity) {
		if e == nil {
			res.MustResolve(couldNotFindMessage)
			return
		}
		if err := e.SetDisabled(true); err != nil {
			res.MustResolve(actionFailedMessage("disable", e, err))
			return
		}
		s.logger.Debug("add-on disabled", "name", e.Name())
		res.MustResolve(disabledMessage(e))
	})
}

// Uninstall removes the first installed extension matching name.
func (s *Service) Uninstall(name string) deferred.Outcome {
	return s.withInstalled(name, func(res *deferred.Result[string], e addon.Entity) {
		if e == nil {
			res.MustResolve(notFoundMessage)
			return
		}
		if err := e.Uninstall(); err != nil {
			res.MustResolve(actionFailedMessage("uninstall", e, err))
			return
		}
		s.logger.Debug("add-on uninstalled", "name", e.Name())
		res.MustResolve(uninstalledMessage(e))
	})
}

// withInstalled fetches installed extensions and hands the first one that
// matches name (or nil) to fn, which must resolve res.
func (s *Service) withInstalled(name string, fn func(res *deferred.Result[string], e addon.Entity)) deferred.Outcome {
	q := namematch.NewQuery(name)
	res := deferred.New[string]()
	s.manager.AddonsByCategory(addon.Extension, func(entities []addon.Entity, err error) {
		if err != nil {
			s.logger.Warn("listing add-ons failed", "category", addon.Extension, "error", err)
			res.MustResolve(readFailedMessage(err))
			return
		}
		e, _ := namematch.First(q, entities, addon.Entity.Name)
		fn(res, e)
	})
	return deferred.Pending(res)
}
