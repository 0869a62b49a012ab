// Package gitrepo determines which GitHub repository a local checkout
// belongs to by reading the origin remote out of .git/config.
package gitrepo

import (
	"fmt"
	"path/filepath"
	"strings"

	ini "gopkg.in/ini.v1"
)

const originSection = `remote "origin"`

// Origin parses <repoPath>/.git/config and returns the owner and name
// of the origin remote. Both the SSH shorthand form
// (git@github.com:owner/repo.git) and URL forms
// (https://github.com/owner/repo.git, ssh://git@github.com/owner/repo)
// are accepted.
func Origin(repoPath string) (owner, repo string, err error) {
	configPath := filepath.Join(repoPath, ".git", "config")

	cfg, err := ini.Load(configPath)
	if err != nil {
		return "", "", fmt.Errorf("reading git config %s: %w", configPath, err)
	}

	section, err := cfg.GetSection(originSection)
	if err != nil {
		return "", "", fmt.Errorf("git config %s has no origin remote", configPath)
	}

	url := section.Key("url").String()
	if url == "" {
		return "", "", fmt.Errorf("git config %s: origin remote has no url", configPath)
	}

	owner, repo, err = parseRemoteURL(url)
	if err != nil {
		return "", "", fmt.Errorf("git config %s: %w", configPath, err)
	}
	return owner, repo, nil
}

// parseRemoteURL extracts owner/repo from a git remote URL. The last
// two path segments before an optional .git suffix name the repository.
func parseRemoteURL(url string) (owner, repo string, err error) {
	path := strings.TrimSuffix(url, ".git")
	path = strings.TrimSuffix(path, "/")

	if idx := strings.Index(path, "://"); idx >= 0 {
		// URL form: scheme://[user@]host/owner/repo
		path = path[idx+3:]
	} else if idx := strings.Index(path, ":"); idx >= 0 {
		// SSH shorthand: [user@]host:owner/repo
		path = strings.TrimPrefix(path[idx+1:], "/")
		return splitOwnerRepo(path, url)
	}

	return splitOwnerRepo(path, url)
}

func splitOwnerRepo(path, url string) (string, string, error) {
	segments := strings.Split(path, "/")
	if len(segments) < 2 {
		return "", "", fmt.Errorf("cannot determine owner/repo from remote url %q", url)
	}
	owner := segments[len(segments)-2]
	repo := segments[len(segments)-1]
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("cannot determine owner/repo from remote url %q", url)
	}
	return owner, repo, nil
}
