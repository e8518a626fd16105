package registry

import (
	"os"
	"path/filepath"
	"testing"
)

// writeAddon creates <base>/<rel>/addon.yaml with the given manifest body
// plus a payload file.
func writeAddon(t *testing.T, base, rel, manifestYAML string) string {
	t.Helper()
	dir := filepath.Join(base, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "addon.yaml"), []byte(manifestYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.js"), []byte("export default {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func extManifest(name, version string) string {
	return "name: " + name + "\ntype: extension\nversion: \"" + version + "\"\n"
}

// testCatalog builds a small catalog with extensions, a theme and one broken
// manifest.
func testCatalog(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	writeAddon(t, base, "extensions/devtools/firebug", extManifest("Firebug", "2.0.1")+"description: Web development tools\ntags: [debugger]\n")
	writeAddon(t, base, "extensions/adblock", extManifest("Adblock Plus", "3.1"))
	writeAddon(t, base, "extensions/foobar", extManifest("Foobar Extended", "1.0.0")+"description: Does foo things\n")
	writeAddon(t, base, "themes/midnight", "name: Midnight\ntype: theme\nversion: \"1.0.0\"\n")
	writeAddon(t, base, "extensions/broken", "name: Broken\ntype: extension\nversion: latest\n")
	return base
}
