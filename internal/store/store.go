package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentx-labs/addonctl/internal/addon"
	"go.yaml.in/yaml/v3"
)

// ErrNotInstalled is returned when an operation targets a record that is
// no longer in the state file.
var ErrNotInstalled = errors.New("add-on is not installed")

// Record is one installed add-on as persisted in the state file.
type Record struct {
	Name     string         `yaml:"name"`
	Version  string         `yaml:"version"`
	Category addon.Category `yaml:"category"`
	Path     string         `yaml:"path,omitempty"`
	Disabled bool           `yaml:"disabled,omitempty"`
}

type stateFile struct {
	Addons []Record `yaml:"addons"`
}

// Store is a file-backed addon.Manager. Every operation reads the state file
// afresh, so several processes sharing a file see each other's changes.
type Store struct {
	mu           sync.Mutex
	path         string
	installedDir string
	logger       *slog.Logger
}

// Open returns a store persisting to path. Payload directories removed on
// uninstall must live under installedDir. The state file need not exist yet.
func Open(path, installedDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{path: path, installedDir: installedDir, logger: logger}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// AddonsByCategory delivers the installed add-ons of category c to fn on a
// separate goroutine.
func (s *Store) AddonsByCategory(c addon.Category, fn func([]addon.Entity, error)) {
	go func() {
		records, err := s.Records(c)
		if err != nil {
			fn(nil, err)
			return
		}
		entities := make([]addon.Entity, 0, len(records))
		for _, r := range records {
			entities = append(entities, &entity{store: s, rec: r})
		}
		fn(entities, nil)
	}()
}

// Records returns the persisted records of category c in file order.
func (s *Store) Records(c addon.Category) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, r := range state.Addons {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out, nil
}

// Register records a completed install, replacing any record with the same
// name and category, and returns the installed entity.
func (s *Store) Register(rec Record) (addon.Entity, error) {
	if rec.Name == "" {
		return nil, fmt.Errorf("registering add-on: empty name")
	}
	if _, ok := addon.ParseCategory(string(rec.Category)); !ok {
		return nil, fmt.Errorf("registering %s: unknown category %q", rec.Name, rec.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, r := range state.Addons {
		if r.Name == rec.Name && r.Category == rec.Category {
			state.Addons[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		state.Addons = append(state.Addons, rec)
	}
	if err := s.save(state); err != nil {
		return nil, err
	}
	s.logger.Debug("add-on registered", "name", rec.Name, "version", rec.Version, "category", rec.Category, "replaced", replaced)
	return &entity{store: s, rec: rec}, nil
}

// PayloadPath returns the directory, relative to the installed directory,
// for the payload of the add-on name in category c. A reinstall keeps the
// recorded directory. Otherwise want is used, with a -2, -3, ... suffix
// while another installed add-on owns it.
func (s *Store) PayloadPath(name string, c addon.Category, want string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return "", err
	}
	owned := make(map[string]bool, len(state.Addons))
	for _, r := range state.Addons {
		if r.Path == "" {
			continue
		}
		if r.Name == name && r.Category == c {
			return r.Path, nil
		}
		owned[filepath.Clean(r.Path)] = true
	}

	base := filepath.Clean(want)
	path := base
	for i := 2; owned[path]; i++ {
		path = fmt.Sprintf("%s-%d", base, i)
	}
	return path, nil
}

// update applies fn to the record matching rec and saves the result. fn
// returns false to drop the record.
func (s *Store) update(rec Record, fn func(*Record) bool) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return Record{}, err
	}
	for i := range state.Addons {
		r := &state.Addons[i]
		if r.Name != rec.Name || r.Category != rec.Category {
			continue
		}
		updated := *r
		if fn(r) {
			updated = *r
		} else {
			state.Addons = append(state.Addons[:i], state.Addons[i+1:]...)
		}
		if err := s.save(state); err != nil {
			return Record{}, err
		}
		return updated, nil
	}
	return Record{}, fmt.Errorf("%s: %w", rec.Name, ErrNotInstalled)
}

// load reads the state file. A missing file is an empty state.
func (s *Store) load() (*stateFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &stateFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file %s: %w", s.path, err)
	}
	var state stateFile
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", s.path, err)
	}
	return &state, nil
}

// save replaces the state file atomically.
func (s *Store) save(state *stateFile) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating state directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".addons-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing state file %s: %w", s.path, err)
	}
	return nil
}
