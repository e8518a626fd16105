package registry

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/agentx-labs/addonctl/internal/addon"
)

// CachedIndex holds a cached set of discovered add-ons along with source
// modification times used for invalidation.
type CachedIndex struct {
	Entries    []Entry          `json:"entries"`
	SourceMods map[string]int64 `json:"source_mods"` // source name -> mtime unix nanos
	CachedAt   time.Time        `json:"cached_at"`
}

// DiscoverCached returns discovered add-ons, using the cache file at
// cachePath when it is still valid. Otherwise it rebuilds from sources and
// rewrites the cache. An empty cachePath disables caching.
func DiscoverCached(sources []Source, cachePath string, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cachePath == "" {
		return Discover(sources, logger)
	}

	cached, err := loadCache(cachePath)
	if err == nil && isCacheValid(cached, sources) {
		return cached.Entries, nil
	}

	entries, err := Discover(sources, logger)
	if err != nil {
		return nil, err
	}

	// Search still works without the cache.
	if err := writeCache(cachePath, entries, sources); err != nil {
		logger.Debug("writing catalog cache failed", "path", cachePath, "error", err)
	}
	return entries, nil
}

// loadCache reads and parses the cache file.
func loadCache(path string) (*CachedIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx CachedIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// isCacheValid checks whether the cached source mtimes still match the
// current directory mtimes. Any change (or missing source) invalidates.
func isCacheValid(cached *CachedIndex, sources []Source) bool {
	if cached == nil || len(cached.SourceMods) == 0 {
		return false
	}
	if len(cached.SourceMods) != len(sources) {
		return false
	}
	for _, src := range sources {
		cachedMtime, ok := cached.SourceMods[src.Name]
		if !ok {
			return false
		}
		if latestMtime(src.BasePath) != cachedMtime {
			return false
		}
	}
	return true
}

// latestMtime returns the latest modification time across the source
// directory, its category directories and their immediate children. New or
// removed add-ons show up here without a full walk; edits to a manifest
// deeper down do not.
func latestMtime(basePath string) int64 {
	var latest int64
	info, err := os.Stat(basePath)
	if err != nil {
		return 0
	}
	latest = max(latest, info.ModTime().UnixNano())

	for _, cat := range addon.Categories() {
		catDir := filepath.Join(basePath, cat.Plural())
		fi, err := os.Stat(catDir)
		if err != nil {
			continue
		}
		latest = max(latest, fi.ModTime().UnixNano())

		entries, err := os.ReadDir(catDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if si, err := os.Stat(filepath.Join(catDir, entry.Name())); err == nil {
				latest = max(latest, si.ModTime().UnixNano())
			}
		}
	}
	return latest
}

// writeCache serializes the discovered add-ons and source mtimes to disk.
func writeCache(path string, entries []Entry, sources []Source) error {
	mods := make(map[string]int64, len(sources))
	for _, src := range sources {
		mods[src.Name] = latestMtime(src.BasePath)
	}

	idx := CachedIndex{
		Entries:    entries,
		SourceMods: mods,
		CachedAt:   time.Now(),
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
