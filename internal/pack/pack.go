// Package pack installs context packs: directories of markdown context files
// described by a ctxpack.yaml manifest, fetched from a git remote or a local
// path. All entry writes go through the adapter and the store's normal add
// path, so a failed install never leaves partial state behind.
package pack

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/ctxkeep-go/internal/adapter"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
)

// ManifestName is the file a pack directory must contain.
const ManifestName = "ctxpack.yaml"

// Manifest describes a context pack.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Version     string   `yaml:"version"`
	Topics      []string `yaml:"topics"`
	// Files lists the context files to import, relative to the pack root.
	// Empty means every markdown file in the pack.
	Files []string `yaml:"files"`
}

// InstallOptions configures an install.
type InstallOptions struct {
	// Branch selects a branch for git sources.
	Branch string
	// Topics are added to every imported entry on top of the pack's own.
	Topics []string
	// Progress is forwarded to the adapter's import.
	Progress func(done, total int, file string)
}

// InstallResult reports what an install did.
type InstallResult struct {
	Manifest Manifest
	Import   *adapter.ImportResult
}

// Install fetches and imports a pack. Sources that look like git URLs are
// cloned shallowly into a temp dir; everything else is treated as a local
// directory.
func Install(st *store.Store, source string, opts InstallOptions, logger *slog.Logger) (*InstallResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir := source
	if IsGitSource(source) {
		tmp, cleanup, err := clone(source, opts.Branch, logger)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		dir = tmp
	}

	return installDir(st, dir, opts, logger)
}

// IsGitSource reports whether source should be fetched over git rather than
// read from the local filesystem.
func IsGitSource(source string) bool {
	return strings.HasPrefix(source, "git@") ||
		strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "ssh://") ||
		strings.HasSuffix(source, ".git")
}

// clone fetches source into a temp dir with --depth 1.
func clone(source, branch string, logger *slog.Logger) (dir string, cleanup func(), err error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", nil, fmt.Errorf("git is required to install remote packs: %w", err)
	}

	tmp, err := os.MkdirTemp("", "ctxpack-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(tmp) }

	args := []string{"clone", "--depth", "1"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, source, tmp)

	logger.Debug("cloning pack", "source", source, "branch", branch)
	cmd := exec.Command("git", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("clone %s: %w: %s", source, err, strings.TrimSpace(string(out)))
	}
	return tmp, cleanup, nil
}

// installDir reads the manifest and imports the listed files.
func installDir(st *store.Store, dir string, opts InstallOptions, logger *slog.Logger) (*InstallResult, error) {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	if len(manifest.Files) > 0 {
		files = make([]string, 0, len(manifest.Files))
		for _, f := range manifest.Files {
			path := filepath.Join(dir, filepath.FromSlash(f))
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("pack %s lists missing file %s: %w", manifest.Name, f, err)
			}
			files = append(files, path)
		}
	} else {
		files, err = adapter.CollectFiles(dir, true)
		if err != nil {
			return nil, err
		}
	}

	topics := append(append([]string{}, manifest.Topics...), opts.Topics...)
	result, err := adapter.ImportFiles(st, files, adapter.ImportOptions{
		Topics:   topics,
		Progress: opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pack installed",
		"name", manifest.Name,
		"version", manifest.Version,
		"files", result.FilesProcessed,
		"entries", result.EntriesAdded,
		"errors", len(result.Errors))
	return &InstallResult{Manifest: *manifest, Import: result}, nil
}

// ReadManifest loads and validates a pack manifest from dir.
func ReadManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read pack manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse pack manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("pack manifest missing name")
	}
	return &m, nil
}
