package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (s Settings) validate() error {
	if err := validateDirName(s.MainWorktree, "main_worktree"); err != nil {
		return err
	}
	if err := validatePath(s.Audit.File, "audit.file"); err != nil {
		return err
	}
	if s.Audit.MaxSizeMB < 0 {
		return fmt.Errorf("invalid audit.max_size_mb %d: must not be negative", s.Audit.MaxSizeMB)
	}
	if s.Audit.MaxBackups < 0 {
		return fmt.Errorf("invalid audit.max_backups %d: must not be negative", s.Audit.MaxBackups)
	}
	return nil
}

// validateDirName checks that name is usable as a single path segment.
func validateDirName(name, field string) error {
	if name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return fmt.Errorf("invalid %s %q: must be a single directory name", field, name)
	}
	return nil
}

// validatePath checks that the path is absolute or starts with ~.
func validatePath(path, field string) error {
	if path == "" || path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", field, path)
	}
	return nil
}

// validateEntries rejects blank entries in a list-valued key.
func validateEntries(values []string, field string) error {
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("invalid %s[%d]: must not be empty", field, i)
		}
	}
	return nil
}

// validateLinkPath checks that a link_files entry stays inside the worktree.
func validateLinkPath(p string, i int) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("invalid link_files[%d] %q: must be relative to the main worktree", i, p)
	}
	clean := filepath.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid link_files[%d] %q: must stay inside the worktree", i, p)
	}
	return nil
}
