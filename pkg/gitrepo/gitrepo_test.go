package gitrepo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGitConfig(t *testing.T, content string) string {
	t.Helper()
	repoPath := t.TempDir()
	gitDir := filepath.Join(repoPath, ".git")
	if err := os.MkdirAll(gitDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return repoPath
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
	}{
		{
			name:      "ssh shorthand",
			url:       "git@github.com:acme/widgets.git",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "ssh shorthand without suffix",
			url:       "git@github.com:acme/widgets",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "https url",
			url:       "https://github.com/acme/widgets.git",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "ssh url",
			url:       "ssh://git@github.com/acme/widgets.git",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "hyphenated names",
			url:       "git@github.com:some-org/some-repo.git",
			wantOwner: "some-org",
			wantRepo:  "some-repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoPath := writeGitConfig(t, `[core]
	repositoryformatversion = 0
[remote "origin"]
	url = `+tt.url+`
	fetch = +refs/heads/*:refs/remotes/origin/*
`)
			owner, repo, err := Origin(repoPath)
			if err != nil {
				t.Fatalf("Origin() error = %v", err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("Origin() = %s/%s, want %s/%s", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestOrigin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantMsg string
	}{
		{
			name:    "no origin remote",
			config:  "[core]\n\trepositoryformatversion = 0\n",
			wantMsg: "no origin remote",
		},
		{
			name:    "origin without url",
			config:  "[remote \"origin\"]\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n",
			wantMsg: "no url",
		},
		{
			name:    "unparseable url",
			config:  "[remote \"origin\"]\n\turl = widgets\n",
			wantMsg: "cannot determine owner/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoPath := writeGitConfig(t, tt.config)
			_, _, err := Origin(repoPath)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Origin() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestOrigin_MissingConfig(t *testing.T) {
	_, _, err := Origin(t.TempDir())
	if err == nil {
		t.Error("Origin() on a non-repo directory succeeded, want error")
	}
}
