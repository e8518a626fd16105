package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/agentx-labs/addonctl/internal/branding"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyCatalogDir       = "catalog_dir"
	KeyInstalledDir     = "installed_dir"
	KeyStateFile        = "state_file"
	KeySearchMaxResults = "search_max_results"
	KeyLocale           = "locale"
	KeyLogLevel         = "log_level"
)

// Keys lists every configuration key.
func Keys() []string {
	return []string{KeyCatalogDir, KeyInstalledDir, KeyStateFile, KeySearchMaxResults, KeyLocale, KeyLogLevel}
}

// Settings is the typed view of the configuration.
type Settings struct {
	// CatalogDirs are the catalog roots, in priority order.
	CatalogDirs  []string
	InstalledDir string
	StateFile    string
	CachePath    string
	MaxResults   int
	Locale       language.Tag
	LogLevel     slog.Level
}

// Dir returns the path to the config directory (~/.addonctl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.addonctl/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	dir := Dir()
	viper.SetDefault(KeyCatalogDir, filepath.Join(dir, "catalog"))
	viper.SetDefault(KeyInstalledDir, filepath.Join(dir, "installed"))
	viper.SetDefault(KeyStateFile, filepath.Join(dir, "addons.yaml"))
	viper.SetDefault(KeySearchMaxResults, 4)
	viper.SetDefault(KeyLocale, "en")
	viper.SetDefault(KeyLogLevel, "warn")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := validate(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Current returns the loaded configuration as typed settings.
func Current() (Settings, error) {
	return current()
}

// validate checks value the way current parses key.
func validate(key, value string) error {
	switch key {
	case KeySearchMaxResults:
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number, got %q", key, value)
		}
	case KeyLocale:
		if _, err := language.Parse(value); err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
	case KeyLogLevel:
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
	}
	return nil
}

func current() (Settings, error) {
	s := Settings{
		CatalogDirs:  filepath.SplitList(viper.GetString(KeyCatalogDir)),
		InstalledDir: viper.GetString(KeyInstalledDir),
		StateFile:    viper.GetString(KeyStateFile),
		CachePath:    filepath.Join(Dir(), "catalog-cache.json"),
		MaxResults:   viper.GetInt(KeySearchMaxResults),
	}
	if s.MaxResults <= 0 {
		return Settings{}, fmt.Errorf("%s must be a positive number, got %q", KeySearchMaxResults, viper.GetString(KeySearchMaxResults))
	}

	tag, err := language.Parse(viper.GetString(KeyLocale))
	if err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", KeyLocale, err)
	}
	s.Locale = tag

	if err := s.LogLevel.UnmarshalText([]byte(viper.GetString(KeyLogLevel))); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", KeyLogLevel, err)
	}
	return s, nil
}
