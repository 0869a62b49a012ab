// Package config resolves the credentials and local settings sqmerge
// needs before it talks to GitHub. Configuration is loaded once at
// process start and threaded through the pipeline as an immutable
// value; nothing in this package keeps global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEditor is used when neither the tool config nor $EDITOR
// names one.
const DefaultEditor = "vi"

// Config holds everything resolved at startup.
type Config struct {
	// User is the GitHub login performing the merge.
	User string

	// Token is the API token for User.
	Token string

	// Editor is the command line (before the scratch-file path is
	// appended) used by the acceptance loop.
	Editor string

	// EmailOverrides maps a GitHub login to a preferred email
	// address, consulted before the profile email when formatting
	// contacts.
	EmailOverrides map[string]string
}

// toolConfig is the on-disk shape of ~/.config/sqmerge/config.yaml.
type toolConfig struct {
	User           string            `yaml:"user"`
	Token          string            `yaml:"token"`
	Editor         string            `yaml:"editor"`
	EmailOverrides map[string]string `yaml:"email_overrides"`
}

// hubHost is one credential entry in hub's config file
// (~/.config/hub), which keys a list of accounts by API host.
type hubHost struct {
	User       string `yaml:"user"`
	OauthToken string `yaml:"oauth_token"`
}

// Load resolves configuration from the environment, the sqmerge config
// file, and hub's config file, in that order of priority. The order is
// binding: it decides which account performs the merge.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolving home directory: %w", err)
	}
	return load(os.Getenv,
		filepath.Join(home, ".config", "sqmerge", "config.yaml"),
		filepath.Join(home, ".config", "hub"))
}

func load(getenv func(string) string, toolPath, hubPath string) (Config, error) {
	cfg := Config{
		User:  getenv("GITHUB_USER"),
		Token: getenv("GITHUB_TOKEN"),
	}

	tool, err := readToolConfig(toolPath)
	if err != nil {
		return Config{}, err
	}
	if tool != nil {
		if cfg.User == "" {
			cfg.User = tool.User
		}
		if cfg.Token == "" {
			cfg.Token = tool.Token
		}
		cfg.Editor = tool.Editor
		cfg.EmailOverrides = tool.EmailOverrides
	}

	if cfg.User == "" || cfg.Token == "" {
		hubUser, hubToken, err := readHubConfig(hubPath)
		if err != nil {
			return Config{}, err
		}
		if cfg.User == "" {
			cfg.User = hubUser
		}
		if cfg.Token == "" {
			cfg.Token = hubToken
		}
	}

	if cfg.User == "" || cfg.Token == "" {
		return Config{}, fmt.Errorf("no GitHub credentials: set GITHUB_USER and GITHUB_TOKEN, or configure %s", toolPath)
	}

	if cfg.Editor == "" {
		cfg.Editor = getenv("EDITOR")
	}
	if cfg.Editor == "" {
		cfg.Editor = DefaultEditor
	}

	return cfg, nil
}

// readToolConfig loads the sqmerge config file. A missing file is not
// an error; an unparseable one is.
func readToolConfig(path string) (*toolConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var tool toolConfig
	if err := yaml.Unmarshal(data, &tool); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &tool, nil
}

// readHubConfig pulls the first github.com account out of hub's config
// file. A missing file yields empty credentials, not an error.
func readHubConfig(path string) (user, token string, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("reading hub config %s: %w", path, err)
	}

	var hosts map[string][]hubHost
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return "", "", fmt.Errorf("parsing hub config %s: %w", path, err)
	}

	for _, host := range hosts["github.com"] {
		if host.User != "" && host.OauthToken != "" {
			return host.User, host.OauthToken, nil
		}
	}
	return "", "", nil
}

// EditorCommand returns the editor argv with path appended, splitting
// any user-supplied arguments out of the configured command line.
func (c Config) EditorCommand(path string) []string {
	argv := strings.Fields(c.Editor)
	if len(argv) == 0 {
		argv = []string{DefaultEditor}
	}
	return append(argv, path)
}
