package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage gw configuration.

Repository config: <root>/main/.gwconfig (JSON or YAML)
  link_files      files symlinked from main into new worktrees
  scripts         commands run in new worktrees, failures are warnings
  delete_scripts  commands run before removal, a failure aborts it

Global settings: ~/.config/gw/config.toml (override with GW_CONFIG)`,
		Example: `  gw config init           # create .gwconfig in the main worktree
  gw config init --global  # create the global settings file
  gw config show           # show the effective repository config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file",
		Args:  cobra.NoArgs,
		Long: `Create a commented .gwconfig in the main worktree, or with --global the
global settings file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			var (
				path string
				err  error
			)
			if global {
				path, err = config.Init(force)
			} else {
				var repo *git.Repo
				repo, err = git.Open(ctx, config.WorkDirFromContext(ctx), settingsFrom(ctx).MainWorktree)
				if err != nil {
					return err
				}
				path, err = config.InitRepo(repo.MainPath(), force)
			}
			if err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}
			l.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVar(&global, "global", false, "Create the global settings file instead")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		global     bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			if global {
				return toml.NewEncoder(out.Writer()).Encode(settingsFrom(ctx))
			}

			repo, err := git.Open(ctx, config.WorkDirFromContext(ctx), settingsFrom(ctx).MainWorktree)
			if err != nil {
				return err
			}
			cfg, err := config.LoadRepo(repo.MainPath())
			if err != nil {
				return err
			}

			if cfg.Path == "" {
				l.Printf("No %s in %s, using defaults\n", config.RepoConfigFileName, repo.MainPath())
			}
			for _, key := range cfg.Unknown {
				l.Printf("Warning: unknown key %q in %s\n", key, cfg.Path)
			}

			format := config.FormatYAML
			if jsonOutput {
				format = config.FormatJSON
			}
			data, err := cfg.Encode(format)
			if err != nil {
				return err
			}
			out.Print(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&global, "global", false, "Show global settings as TOML")
	return cmd
}
