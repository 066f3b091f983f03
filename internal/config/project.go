package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// storageDirName is the per-project directory holding the persisted store.
const storageDirName = ".ctxkeep"

// ResolveDir determines the storage directory for the store.
// Priority: explicit argument > CTXKEEP_DIR > git toplevel > cwd.
// The directory is not created here; the store creates it on first write.
func ResolveDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir := os.Getenv("CTXKEEP_DIR"); dir != "" {
		return dir
	}
	if top := gitTopLevel(); top != "" {
		return filepath.Join(top, storageDirName)
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, storageDirName)
	}
	return storageDirName
}

// ProjectLabel names the current project for logs and the dashboard.
// Priority: git remote origin repo name > storage dir parent basename.
func ProjectLabel(dir string) string {
	if origin := gitOriginName(); origin != "" {
		return origin
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(filepath.Dir(abs))
	}
	return filepath.Base(dir)
}

// gitTopLevel returns the work tree root, or "" outside a git repository.
func gitTopLevel() string {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// gitOriginName extracts the repo name from the git remote origin URL.
// Handles: git@github.com:owner/repo.git, https://github.com/owner/repo.git
func gitOriginName() string {
	out, err := exec.Command("git", "config", "--get", "remote.origin.url").Output()
	if err != nil {
		return ""
	}
	return parseRepoName(strings.TrimSpace(string(out)))
}

// parseRepoName extracts the repo name from a git URL.
func parseRepoName(url string) string {
	if url == "" {
		return ""
	}

	url = strings.TrimSuffix(url, ".git")

	// SSH format: git@github.com:owner/repo
	if strings.HasPrefix(url, "git@") {
		parts := strings.Split(url, ":")
		if len(parts) == 2 {
			pathParts := strings.Split(parts[1], "/")
			if len(pathParts) > 0 {
				return pathParts[len(pathParts)-1]
			}
		}
	}

	// HTTPS format: https://github.com/owner/repo
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		parts := strings.Split(url, "/")
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	return ""
}
