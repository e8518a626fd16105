package registry

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/testutil"
)

func findEntry(entries []Entry, name string) *Entry {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i]
		}
	}
	return nil
}

func TestDiscover_FindsCategoriesAndMetadata(t *testing.T) {
	base := testCatalog(t)
	entries, err := Discover([]Source{{Name: "catalog", BasePath: base}}, testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("Discover returned %d entries, want 4: %+v", len(entries), entries)
	}

	fb := findEntry(entries, "Firebug")
	if fb == nil {
		t.Fatal("Firebug not discovered")
	}
	if fb.Category != addon.Extension {
		t.Errorf("Category = %q, want %q", fb.Category, addon.Extension)
	}
	if fb.Version != "2.0.1" {
		t.Errorf("Version = %q, want %q", fb.Version, "2.0.1")
	}
	if fb.Description != "Web development tools" {
		t.Errorf("Description = %q", fb.Description)
	}
	if fb.Source != "catalog" {
		t.Errorf("Source = %q, want %q", fb.Source, "catalog")
	}
	if fb.Dir != filepath.Join(base, "extensions", "devtools", "firebug") {
		t.Errorf("Dir = %q", fb.Dir)
	}
	if fb.Path != "extensions/devtools/firebug" {
		t.Errorf("Path = %q, want %q", fb.Path, "extensions/devtools/firebug")
	}

	if m := findEntry(entries, "Midnight"); m == nil || m.Category != addon.Theme {
		t.Errorf("Midnight theme not discovered correctly: %+v", m)
	}
	if findEntry(entries, "Broken") != nil {
		t.Error("manifest with an invalid version was discovered")
	}
}

func TestDiscover_TypeMustMatchDirectory(t *testing.T) {
	base := t.TempDir()
	writeAddon(t, base, "themes/sneaky", extManifest("Sneaky", "1.0.0"))

	entries, err := Discover([]Source{{Name: "catalog", BasePath: base}}, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}

func TestDiscover_HighestVersionWins(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeAddon(t, a, "extensions/firebug", extManifest("Firebug", "1.9.0"))
	writeAddon(t, b, "extensions/firebug", extManifest("Firebug", "2.0.0"))
	writeAddon(t, a, "extensions/adblock", extManifest("Adblock", "3.0.0"))
	writeAddon(t, b, "extensions/adblock", extManifest("Adblock", "3.0.0"))

	entries, err := Discover([]Source{{Name: "a", BasePath: a}, {Name: "b", BasePath: b}}, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if fb := findEntry(entries, "Firebug"); fb.Version != "2.0.0" || fb.Source != "b" {
		t.Errorf("Firebug = %+v, want 2.0.0 from b", fb)
	}
	if ab := findEntry(entries, "Adblock"); ab.Source != "a" {
		t.Errorf("Adblock source = %q, want the earlier source on a tie", ab.Source)
	}
}

func TestDiscover_NoReadableSource(t *testing.T) {
	_, err := Discover([]Source{{Name: "gone", BasePath: filepath.Join(t.TempDir(), "missing")}}, nil)
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("Discover error = %v, want ErrNoSources", err)
	}
}

func TestDiscover_SkipsUnreadableSource(t *testing.T) {
	base := testCatalog(t)
	entries, err := Discover([]Source{
		{Name: "gone", BasePath: filepath.Join(t.TempDir(), "missing")},
		{Name: "catalog", BasePath: base},
	}, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("readable source ignored")
	}
}

func TestNewer(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2.0.0", "1.9.9", true},
		{"1.0", "1.0.0", false},
		{"1.0.0-beta", "1.0.0", false},
		{"junk", "1.0.0", false},
		{"1.0.0", "junk", true},
	}
	for _, tt := range tests {
		if got := newer(tt.a, tt.b); got != tt.want {
			t.Errorf("newer(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
