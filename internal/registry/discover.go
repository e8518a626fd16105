package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/manifest"
)

// ErrNoSources is returned when none of the configured sources can be read.
var ErrNoSources = errors.New("no readable add-on catalog")

// Discover walks all sources and returns every add-on with a valid manifest.
// When several sources ship the same add-on (same category and name) the
// highest version wins; on equal versions the earlier source wins.
func Discover(sources []Source, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		result   []Entry
		index    = make(map[string]int)
		readable int
	)
	for _, src := range sources {
		entries, err := walkSource(src, logger)
		if err != nil {
			logger.Warn("skipping catalog source", "source", src.Name, "error", err)
			continue
		}
		readable++
		for _, e := range entries {
			key := string(e.Category) + "/" + e.Name
			i, seen := index[key]
			if !seen {
				index[key] = len(result)
				result = append(result, e)
				continue
			}
			if newer(e.Version, result[i].Version) {
				result[i] = e
			}
		}
	}

	if readable == 0 && len(sources) > 0 {
		return nil, ErrNoSources
	}
	return result, nil
}

// newer reports whether version a is greater than b. Unparseable versions
// never win.
func newer(a, b string) bool {
	va, err := semver.NewVersion(a)
	if err != nil {
		return false
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return true
	}
	return va.GreaterThan(vb)
}

// walkSource finds the manifests inside the category directories of a
// single source, at any nesting depth. Invalid manifests are logged and
// skipped.
func walkSource(source Source, logger *slog.Logger) ([]Entry, error) {
	info, err := os.Stat(source.BasePath)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", source.Name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s: %s is not a directory", source.Name, source.BasePath)
	}

	var result []Entry
	for _, cat := range addon.Categories() {
		catDir := filepath.Join(source.BasePath, cat.Plural())
		if _, err := os.Stat(catDir); err != nil {
			continue
		}

		err := filepath.WalkDir(catDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // skip inaccessible entries
			}
			if d.IsDir() || d.Name() != manifest.FileName {
				return nil
			}

			entry, ok := readEntry(path, cat, source, logger)
			if ok {
				result = append(result, entry)
			}
			// The rest of this add-on directory is payload.
			return filepath.SkipDir
		})
		if err != nil {
			continue
		}
	}

	return result, nil
}

func readEntry(path string, cat addon.Category, source Source, logger *slog.Logger) (Entry, bool) {
	check, err := manifest.ValidateFile(path)
	if err != nil {
		logger.Warn("unreadable manifest", "path", path, "error", err)
		return Entry{}, false
	}
	if !check.Valid {
		for _, issue := range check.Issues {
			logger.Warn("invalid manifest", "path", path, "field", issue.Path, "problem", issue.Message)
		}
		return Entry{}, false
	}

	m, err := manifest.Parse(path)
	if err != nil {
		logger.Warn("unreadable manifest", "path", path, "error", err)
		return Entry{}, false
	}
	if m.Type != cat {
		logger.Warn("manifest type does not match its directory", "path", path, "type", m.Type, "directory", cat.Plural())
		return Entry{}, false
	}

	dir := filepath.Dir(path)
	rel, err := filepath.Rel(source.BasePath, dir)
	if err != nil {
		logger.Warn("manifest outside its source", "path", path, "error", err)
		return Entry{}, false
	}

	return Entry{
		Name:        m.Name,
		Category:    m.Type,
		Version:     m.Version,
		Description: m.Description,
		Tags:        m.Tags,
		Source:      source.Name,
		Dir:         dir,
		Path:        filepath.ToSlash(rel),
	}, true
}
