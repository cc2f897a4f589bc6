package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/errs"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// noGitCheck lists commands that work without git installed.
var noGitCheck = map[string]bool{
	"completion":       true,
	"__complete":       true,
	"__completeNoDesc": true,
	"help":             true,
	"init":             true,
	"version":          true,
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		quiet      bool
		newBranch  bool
		base       string
		copyToClip bool
	)

	cmd := &cobra.Command{
		Use:   "gw [branch]",
		Short: "Flat sibling git worktree manager",
		Long: `gw keeps one worktree per branch as flat siblings of the main worktree:

  project/
    main/            main worktree, holds .gwconfig
    feature__login/  branch feature/login

'gw <branch>' switches to the worktree of a branch, adding one when the
branch exists but has no worktree yet. 'gw -b <branch>' creates a new branch.

Directory changes need the shell wrapper: eval "$(gw init bash)"`,
		Example: `  gw feature/login        # switch to (or add) the worktree of feature/login
  gw login                # substring match against existing worktrees
  gw -b fix/typo          # new branch and worktree from main's HEAD
  gw -b fix/typo --base v1.2.0`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTargets,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cmd.SetContext(log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet)))

			if noGitCheck[cmd.Name()] {
				return nil
			}
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if newBranch {
					return errs.New(errs.KindBranchNotFound, "branch name required: gw -b <branch>")
				}
				return cmd.Help()
			}
			if newBranch {
				return runCreate(cmd.Context(), args[0], base, copyToClip)
			}
			if base != "" {
				return errors.New("--base requires -b")
			}
			return runSwitch(cmd.Context(), args[0], copyToClip)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress diagnostic output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Flags().BoolVarP(&newBranch, "new-branch", "b", false, "Create a new branch")
	cmd.Flags().StringVar(&base, "base", "", "Start point for the new branch (default: HEAD of the main worktree)")
	cmd.Flags().BoolVar(&copyToClip, "copy", false, "Copy the worktree path to the clipboard")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(
		newSwitchCmd(),
		newNewCmd(),
		newDeleteCmd(),
		newCleanCmd(),
		newListCmd(),
		newInitCmd(),
		newConfigCmd(),
		newVersionCmd(),
		newRemoveWorktreesCmd(),
	)
	return cmd
}

// Execute runs gw and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gw: warning: %v\n", err)
		settings = config.Default()
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gw: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx = config.WithSettings(ctx, &settings)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = output.WithPrinter(ctx, os.Stdout)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gw: %s\n", errs.Format(err))
		cancel()
		os.Exit(1)
	}
}
