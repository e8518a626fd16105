package registry

import (
	"path/filepath"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/store"
)

// Source is a catalog root to search for add-ons.
type Source struct {
	Name     string // e.g., "catalog", "mirror"
	BasePath string // absolute path to the source root
}

// Entry is an add-on found in a source, with its manifest metadata.
type Entry struct {
	Name        string         `json:"name"`
	Category    addon.Category `json:"category"`
	Version     string         `json:"version"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Source      string         `json:"source"`
	Dir         string         `json:"dir"`  // absolute path to the add-on directory
	Path        string         `json:"path"` // Dir relative to the source root, slash separated
}

// installPath is where e is installed, relative to the installed directory.
// It mirrors the catalog layout, so it starts with the category directory.
func (e Entry) installPath() string {
	if e.Path != "" {
		return filepath.FromSlash(e.Path)
	}
	return filepath.Join(e.Category.Plural(), filepath.Base(e.Dir))
}

// Registrar records completed installs. *store.Store satisfies it.
type Registrar interface {
	// PayloadPath returns the directory, relative to the installed
	// directory, that the named add-on may occupy given the one it asks for.
	PayloadPath(name string, c addon.Category, want string) (string, error)
	Register(store.Record) (addon.Entity, error)
}
