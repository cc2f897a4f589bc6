package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/resolve"
)

func newSwitchCmd() *cobra.Command {
	var copyToClip bool

	cmd := &cobra.Command{
		Use:     "switch <branch>",
		Aliases: []string{"sw"},
		Short:   "Switch to the worktree of a branch",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Switch to the worktree matching <branch>. Resolution order:

  1. a worktree whose branch is exactly <branch>
  2. an existing branch named <branch>, local before remote; its worktree
     is added when missing
  3. the first worktree whose branch contains <branch>

Without a match gw fails; create the branch with 'gw new <branch>'.
Same as 'gw <branch>'.`,
		Example: `  gw switch feature/login
  gw switch login --copy`,
		ValidArgsFunction: completeTargets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd.Context(), args[0], copyToClip)
		},
	}

	cmd.Flags().BoolVar(&copyToClip, "copy", false, "Copy the worktree path to the clipboard")
	return cmd
}

func newNewCmd() *cobra.Command {
	var (
		base       string
		copyToClip bool
	)

	cmd := &cobra.Command{
		Use:     "new <branch>",
		Short:   "Create a branch and its worktree",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Create <branch> and a worktree for it next to the main worktree.
Slashes in the branch name become "__" in the directory name.

When the worktree directory already exists it is reused as is. After
creation the link_files and scripts of .gwconfig are applied; failures
there are reported as warnings only. Same as 'gw -b <branch>'.`,
		Example: `  gw new feature/login            # project/feature__login
  gw new hotfix --base v1.2.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), args[0], base, copyToClip)
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Start point for the new branch (default: HEAD of the main worktree)")
	cmd.Flags().BoolVar(&copyToClip, "copy", false, "Copy the worktree path to the clipboard")
	return cmd
}

func runSwitch(ctx context.Context, input string, copyToClip bool) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.mgr.Switch(ctx, input)
	if err != nil {
		return err
	}
	if res.Match == resolve.SubstringWorktree {
		log.FromContext(ctx).Printf("Matched %s\n", res.Branch)
	}
	if copyToClip {
		copyPath(ctx, res.Path)
	}
	return emit(ctx, s, res.Payload())
}

func runCreate(ctx context.Context, branch, base string, copyToClip bool) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.mgr.Create(ctx, branch, base)
	if err != nil {
		return err
	}
	if copyToClip {
		copyPath(ctx, res.Path)
	}
	return emit(ctx, s, res.Payload())
}
