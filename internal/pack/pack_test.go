package pack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelgruber/ctxkeep-go/internal/store"
)

func writePack(t *testing.T, manifest string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestReadManifest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		dir := writePack(t, "name: go-conventions\nversion: 1.2.0\ntopics:\n  - go\n", nil)
		m, err := ReadManifest(dir)
		if err != nil {
			t.Fatalf("ReadManifest() error = %v", err)
		}
		if m.Name != "go-conventions" || m.Version != "1.2.0" {
			t.Errorf("manifest = %+v", m)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		dir := writePack(t, "version: 1.0.0\n", nil)
		if _, err := ReadManifest(dir); err == nil {
			t.Error("ReadManifest() expected error for missing name")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadManifest(t.TempDir()); err == nil {
			t.Error("ReadManifest() expected error for missing manifest")
		}
	})
}

func TestIsGitSource(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"git@github.com:owner/pack.git", true},
		{"https://github.com/owner/pack", true},
		{"ssh://git@host/pack", true},
		{"owner/pack.git", true},
		{"./local/pack", false},
		{"/abs/path", false},
	}
	for _, tt := range tests {
		if got := IsGitSource(tt.source); got != tt.want {
			t.Errorf("IsGitSource(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestInstallLocalPack(t *testing.T) {
	st, err := store.Open(t.TempDir(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	dir := writePack(t,
		"name: team-conventions\nversion: 0.1.0\ntopics:\n  - conventions\nfiles:\n  - docs/style.md\n",
		map[string]string{
			"docs/style.md": "---\nagent: team\n---\n\n## Conventions\n\nErrors wrap with %w at layer boundaries.\n",
			"docs/extra.md": "## Ignored\n\nNot listed in the manifest.\n",
		})

	result, err := Install(st, dir, InstallOptions{Topics: []string{"pack"}}, nil)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if result.Manifest.Name != "team-conventions" {
		t.Errorf("manifest name = %q", result.Manifest.Name)
	}
	if result.Import.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1 (only listed files)", result.Import.FilesProcessed)
	}

	entries := st.ListEntries("team", nil)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	for _, topic := range []string{"conventions", "pack"} {
		if !entries[0].HasTopic(topic) {
			t.Errorf("entry missing topic %q: %v", topic, entries[0].Topics)
		}
	}

	t.Run("manifest listing a missing file fails", func(t *testing.T) {
		dir := writePack(t, "name: broken\nfiles:\n  - nope.md\n", nil)
		if _, err := Install(st, dir, InstallOptions{}, nil); err == nil {
			t.Error("Install() expected error for missing listed file")
		}
	})
}
