//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentx-labs/addonctl/internal/deferred"
	"github.com/agentx-labs/addonctl/internal/markup"
	"github.com/agentx-labs/addonctl/internal/registry"
	"github.com/agentx-labs/addonctl/internal/store"
	"github.com/agentx-labs/addonctl/internal/testutil"
	"github.com/agentx-labs/addonctl/internal/workflow"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	CatalogDir   string // catalog root with <plural>/<addon>/addon.yaml
	MirrorDir    string // second catalog, searched after CatalogDir
	InstalledDir string // where add-on payloads get installed
	StateFile    string // installed add-on records
	Store        *store.Store
	Service      *workflow.Service
}

// setupTestEnv creates isolated directories, a catalog, and the services
// wired the way the CLI wires them.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		CatalogDir:   filepath.Join(root, "catalog"),
		MirrorDir:    filepath.Join(root, "mirror"),
		InstalledDir: filepath.Join(root, "installed"),
		StateFile:    filepath.Join(root, "addons.yaml"),
	}
	setupCatalog(t, env.CatalogDir)
	if err := os.MkdirAll(env.MirrorDir, 0755); err != nil {
		t.Fatal(err)
	}

	logger := testutil.NewTestLogger(t)
	st, err := store.Open(env.StateFile, env.InstalledDir, logger)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	repo := registry.New(registry.Options{
		Sources: []registry.Source{
			{Name: "catalog", BasePath: env.CatalogDir},
			{Name: "mirror", BasePath: env.MirrorDir},
		},
		CachePath:    filepath.Join(root, "cache.json"),
		InstalledDir: env.InstalledDir,
		Registrar:    st,
		Logger:       logger,
	})
	env.Store = st
	env.Service = workflow.New(st, repo, workflow.Options{Logger: logger})
	return env
}

// setupCatalog creates a synthetic catalog with add-ons of several types.
func setupCatalog(t *testing.T, catalogDir string) {
	t.Helper()

	writeAddon(t, catalogDir, "extensions/firebug", `name: Firebug
type: extension
version: "2.0.1"
description: Web development tools in the browser
tags: [debugger]
`)
	writeFile(t, filepath.Join(catalogDir, "extensions/firebug/firebug.js"), "export default {}\n")

	writeAddon(t, catalogDir, "extensions/adblock-plus", `name: Adblock Plus
type: extension
version: "3.1.0"
`)
	writeAddon(t, catalogDir, "extensions/foobar", `name: Foobar Extended
type: extension
version: "1.0.0"
description: Extends foo
`)
	writeAddon(t, catalogDir, "themes/midnight", `name: Midnight
type: theme
version: "1.0.0"
`)
}

func writeAddon(t *testing.T, base, rel, manifest string) {
	t.Helper()
	writeFile(t, filepath.Join(base, filepath.FromSlash(rel), "addon.yaml"), manifest)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// await returns the plain text an outcome resolves to.
func await(t *testing.T, out deferred.Outcome) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	msg, err := out.Wait(ctx)
	if err != nil {
		t.Fatalf("outcome never resolved: %v", err)
	}
	return markup.Plain().Render(msg)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}
