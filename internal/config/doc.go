// Package config loads gw's two configuration files.
//
// # Repository config
//
// Each repository keeps a .gwconfig file in its main worktree, read fresh on
// every operation. Either a JSON object or a YAML mapping is accepted, with
// the same three optional keys:
//
//	link_files:      # symlinked from main into each new worktree
//	  - .env
//	scripts:         # run after creation, failures are warnings
//	  - npm install
//	delete_scripts:  # run before deletion, first failure aborts
//	  - make check-clean
//
// A missing file or key yields an empty list.
//
// # Global settings
//
// User-wide settings are read from ~/.config/gw/config.toml, or from the
// file named by GW_CONFIG:
//
//   - main_worktree: directory name of the main worktree (default "main")
//   - allow_ambiguous_names: accept new branch names containing "__"
//   - fetch_remote: remote fetched by clean (default: all)
//   - [audit]: optional rotating JSON audit log
package config
