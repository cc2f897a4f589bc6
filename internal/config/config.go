package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/gw/internal/errs"
)

// EnvConfigPath overrides the location of the global settings file.
const EnvConfigPath = "GW_CONFIG"

// AuditSettings configures the optional audit log.
type AuditSettings struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Enabled reports whether an audit log file is configured.
func (a AuditSettings) Enabled() bool {
	return a.File != ""
}

// Settings holds the user-wide gw settings.
type Settings struct {
	MainWorktree        string        `toml:"main_worktree"`
	AllowAmbiguousNames bool          `toml:"allow_ambiguous_names"`
	FetchRemote         string        `toml:"fetch_remote"`
	Audit               AuditSettings `toml:"audit"`
}

// DefaultMainWorktree is the directory name of the main worktree.
const DefaultMainWorktree = "main"

// Default returns the default settings.
func Default() Settings {
	return Settings{
		MainWorktree: DefaultMainWorktree,
		Audit: AuditSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SettingsPath returns the path of the global settings file.
func SettingsPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gw", "config.toml"), nil
}

// Load reads the global settings.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads settings from path, falling back to defaults for a
// missing file or missing keys.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	s := Default()
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Default(), errs.Wrap(errs.KindConfigInvalid, err, "failed to parse %s", path)
	}
	if s.MainWorktree == "" {
		s.MainWorktree = DefaultMainWorktree
	}

	if err := s.validate(); err != nil {
		return Default(), errs.Wrap(errs.KindConfigInvalid, err, "invalid %s", path)
	}

	if s.Audit.File != "" {
		expanded, err := expandPath(s.Audit.File)
		if err != nil {
			return Default(), fmt.Errorf("expand audit.file: %w", err)
		}
		s.Audit.File = expanded
	}
	return s, nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

const defaultSettings = `# gw configuration

# Directory name of the main worktree. Every repository managed by gw keeps
# its worktrees as siblings of this directory.
# main_worktree = "main"

# Allow new branches whose names contain "__". Such names cannot be told
# apart from a "/" once turned into a directory name.
# allow_ambiguous_names = false

# Remote fetched by "gw clean" before comparing with upstreams.
# Empty fetches all remotes.
# fetch_remote = ""

# Optional JSON audit log of worktree mutations and hook results.
# [audit]
# file = "~/.local/state/gw/audit.log"
# max_size_mb = 10
# max_backups = 3
`

// Init writes a commented default settings file.
// Returns the path written to.
func Init(force bool) (string, error) {
	path, err := SettingsPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultSettings), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
