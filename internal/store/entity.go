package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/addonctl/internal/addon"
)

// entity is a snapshot of a record; its mutators write through to the store.
type entity struct {
	store *Store
	rec   Record
}

func (e *entity) Name() string             { return e.rec.Name }
func (e *entity) Version() string          { return e.rec.Version }
func (e *entity) Category() addon.Category { return e.rec.Category }
func (e *entity) Disabled() bool           { return e.rec.Disabled }

func (e *entity) SetDisabled(disabled bool) error {
	rec, err := e.store.update(e.rec, func(r *Record) bool {
		r.Disabled = disabled
		return true
	})
	if err != nil {
		return err
	}
	e.rec = rec
	e.store.logger.Debug("add-on state changed", "name", rec.Name, "disabled", disabled)
	return nil
}

// Uninstall drops the record and removes its payload directory.
func (e *entity) Uninstall() error {
	rec, err := e.store.update(e.rec, func(*Record) bool { return false })
	if err != nil {
		return err
	}
	if rec.Path == "" {
		return nil
	}
	if err := e.store.removePayload(rec.Path); err != nil {
		return err
	}
	e.store.logger.Debug("add-on payload removed", "name", rec.Name, "path", rec.Path)
	return nil
}

// removePayload deletes an installed add-on directory. Paths outside the
// installed directory are refused.
func (s *Store) removePayload(path string) error {
	dir := path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.installedDir, dir)
	}
	rel, err := filepath.Rel(s.installedDir, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s: outside %s", dir, s.installedDir)
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}
