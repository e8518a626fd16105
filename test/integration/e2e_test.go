//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentx-labs/addonctl/internal/addon"
)

// TestFullFlowInstallManageUninstall exercises install, list, disable,
// enable and uninstall against real files.
func TestFullFlowInstallManageUninstall(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.Service

	if got := await(t, svc.Install("firebug", false)); got != "Firebug 2.0.1 has been installed." {
		t.Fatalf("install = %q", got)
	}
	assertFileExists(t, filepath.Join(env.InstalledDir, "extensions", "firebug", "firebug.js"))

	if got := await(t, svc.Install("adblock", false)); got != "Adblock Plus 3.1.0 has been installed." {
		t.Fatalf("install adblock = %q", got)
	}
	if got := await(t, svc.Disable("adblock plus")); got != "Adblock Plus 3.1.0 has been disabled." {
		t.Fatalf("disable = %q", got)
	}

	list := await(t, svc.List("extension"))
	want := "The following extensions are currently installed:\n" +
		"   1. Firebug\u20022.0.1\n" +
		"   2. Adblock Plus\u20023.1.0\n"
	if list != want {
		t.Fatalf("list = %q, want %q", list, want)
	}

	if got := await(t, svc.Enable("adblock")); got != "Adblock Plus 3.1.0 has been enabled." {
		t.Fatalf("enable = %q", got)
	}
	if got := await(t, svc.Uninstall("firebug")); got != "Firebug 2.0.1 has been uninstalled." {
		t.Fatalf("uninstall = %q", got)
	}
	assertFileNotExists(t, filepath.Join(env.InstalledDir, "extensions", "firebug"))

	recs, err := env.Store.Records(addon.Extension)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Name != "Adblock Plus" || recs[0].Disabled {
		t.Fatalf("records = %+v", recs)
	}
}

// TestFullFlowAlreadyInstalled verifies that an installed add-on that the
// catalog no longer offers is reported instead of a suggestion.
func TestFullFlowAlreadyInstalled(t *testing.T) {
	env := setupTestEnv(t)

	if got := await(t, env.Service.Install("foobar", false)); got != "Foobar Extended 1.0.0 has been installed." {
		t.Fatalf("install = %q", got)
	}
	if err := os.RemoveAll(filepath.Join(env.CatalogDir, "extensions", "foobar")); err != nil {
		t.Fatal(err)
	}
	now := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(filepath.Join(env.CatalogDir, "extensions"), now, now); err != nil {
		t.Fatal(err)
	}

	if got := await(t, env.Service.Install("foobar", false)); got != "Foobar Extended 1.0.0 is already installed." {
		t.Fatalf("install again = %q", got)
	}
}

// TestFullFlowSuggestion verifies that a near miss suggests the catalog name.
func TestFullFlowSuggestion(t *testing.T) {
	env := setupTestEnv(t)

	got := await(t, env.Service.Install("firebgu", false))
	if got != `Could not find the add-on. Perhaps you meant addon install Firebug.` {
		t.Fatalf("install = %q", got)
	}
}

// TestFullFlowMirrorNewerVersionWins verifies that the highest version across
// catalogs is installed and that reinstalling replaces the payload cleanly.
func TestFullFlowMirrorNewerVersionWins(t *testing.T) {
	env := setupTestEnv(t)

	if got := await(t, env.Service.Install("firebug", false)); !strings.Contains(got, "2.0.1") {
		t.Fatalf("install = %q", got)
	}
	rogue := filepath.Join(env.InstalledDir, "extensions", "firebug", "rogue.txt")
	writeFile(t, rogue, "rogue")

	writeAddon(t, env.MirrorDir, "extensions/firebug", "name: Firebug\ntype: extension\nversion: \"3.0.0\"\n")

	if got := await(t, env.Service.Install("firebug", false)); got != "Firebug 3.0.0 has been installed." {
		t.Fatalf("reinstall = %q", got)
	}
	assertFileNotExists(t, rogue)

	recs, _ := env.Store.Records(addon.Extension)
	if len(recs) != 1 || recs[0].Version != "3.0.0" {
		t.Fatalf("records = %+v", recs)
	}
}
